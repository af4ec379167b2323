package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
)

type commandParams struct {
	configPath      string
	baseURL         string
	reportPath      string
	xlsxPath        string
	transportErrors string
	filters         framework.RegexFilters
	debug           bool
	debugAll        bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML file with settings and test data")
	fs.StringVar(&c.baseURL, "url", "", "base URL of the API under test (default "+config.DefaultBaseURL+")")
	fs.StringVar(&c.reportPath, "output", "", "JSON report file (default "+config.DefaultReportPath+")")
	fs.StringVar(&c.xlsxPath, "xlsx", "", "also write the report as a spreadsheet to this file")
	fs.StringVar(&c.transportErrors, "transport-errors", "",
		`what to do with a request that gets no response: "record" it as failed, or "skip" it`)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run; start with the group name to select a nested test, e.g. ^posts/update$")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}

// apply overrides the configuration with the flags that were given.
func (c *commandParams) apply(cfg *config.Config) {
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.reportPath != "" {
		cfg.ReportPath = c.reportPath
	}
	if c.xlsxPath != "" {
		cfg.XLSXPath = c.xlsxPath
	}
	if c.transportErrors != "" {
		cfg.TransportErrors = config.TransportErrorPolicy(c.transportErrors)
	}
}
