package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DefaultJSONPath is where the JSON report is written unless configured otherwise.
const DefaultJSONPath = "api_test_report.json"

// MarshalResults encodes results as an indented JSON array. Non-ASCII text is written as
// UTF-8 rather than escaped, and an empty run produces "[]" rather than "null".
func MarshalResults(results []TestResult) ([]byte, error) {
	if results == nil {
		results = []TestResult{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes results to path, replacing any file that is already there.
func WriteJSON(path string, results []TestResult) error {
	data, err := MarshalResults(results)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) ([]TestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var results []TestResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return results, nil
}
