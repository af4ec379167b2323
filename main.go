package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gojob/blog-api-contract-tests/apitests"
	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/report"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}
	params.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	fmt.Println("Blog API contract tests")
	fmt.Printf("Target:  %s\n", cfg.BaseURL)
	fmt.Printf("Started: %s\n", time.Now().Format(report.TimestampFormat))
	fmt.Println()

	harness, err := framework.NewTestHarness(
		cfg.BaseURL,
		cfg.ProbePath,
		cfg.ProbeTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[ERROR]"), err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results, recorded := apitests.RunTestSuite(harness, cfg, params.filters.AsFilter, testLogger)

	rep := report.Summarize(recorded)
	fmt.Println()
	report.Print(os.Stdout, rep)

	if err := report.WriteJSON(cfg.ReportPath, recorded); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[ERROR]"), err)
		return 1
	}
	fmt.Printf("\nDetailed report written to %s\n", cfg.ReportPath)
	if cfg.XLSXPath != "" {
		if err := report.WriteXLSX(cfg.XLSXPath, rep); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[ERROR]"), err)
			return 1
		}
		fmt.Printf("Spreadsheet written to %s\n", cfg.XLSXPath)
	}

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() || !rep.OK() {
		return 1
	}
	return 0
}
