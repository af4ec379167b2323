package framework

import (
	"io"
	"strings"
	"time"
)

// TestHarness holds what the harness knows about the API under test.
type TestHarness struct {
	serviceBaseURL string
	serviceInfo    ServiceInfo
	logger         Logger
}

// NewTestHarness creates a TestHarness instance, and verifies that the API under test is
// responding by making a single request to the given probe path. If the request cannot be
// made within probeTimeout, or returns anything other than a 200 status, it returns an error
// and no tests should be run.
func NewTestHarness(
	serviceBaseURL string,
	probePath string,
	probeTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}

	h := &TestHarness{
		serviceBaseURL: strings.TrimSuffix(serviceBaseURL, "/"),
		logger:         debugLogger,
	}

	info, err := probeService(h.serviceBaseURL+probePath, probeTimeout, debugLogger, startupOutput)
	if err != nil {
		return nil, err
	}
	h.serviceInfo = info

	return h, nil
}

// ServiceBaseURL returns the base URL of the API under test, without a trailing slash.
func (h *TestHarness) ServiceBaseURL() string {
	return h.serviceBaseURL
}

// ServiceInfo returns what was learned from the startup probe.
func (h *TestHarness) ServiceInfo() ServiceInfo {
	return h.serviceInfo
}

func (h *TestHarness) Logger() Logger {
	return h.logger
}
