package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// ServiceInfo is what the startup probe saw.
type ServiceInfo struct {
	ProbeURL     string
	StatusCode   int
	Body         string
	ResponseTime time.Duration
}

func probeService(url string, timeout time.Duration, logger Logger, output io.Writer) (ServiceInfo, error) {
	fmt.Fprintf(output, "Checking that the API is reachable at %s\n", url)

	httpClient := &http.Client{Timeout: timeout}
	started := time.Now()
	logger.Printf("Probe request: GET %s (timeout %s)", url, timeout)
	resp, err := httpClient.Get(url)
	if err != nil {
		return ServiceInfo{}, fmt.Errorf("could not connect to the API at %s, make sure the server is running: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	info := ServiceInfo{
		ProbeURL:     url,
		StatusCode:   resp.StatusCode,
		ResponseTime: time.Since(started),
	}
	if data, err := io.ReadAll(resp.Body); err == nil {
		info.Body = string(data)
	}
	logger.Printf("Probe response: %d %s", resp.StatusCode, info.Body)

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("the API at %s is not available: probe returned status code %d", url, resp.StatusCode)
	}
	fmt.Fprintf(output, "[OK] API responded in %s\n", info.ResponseTime.Round(time.Millisecond))
	return info, nil
}
