package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Client sends requests to the API under test. It makes exactly one round trip per call;
// nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Request is a single request to the API, relative to the client's base URL.
type Request struct {
	Method   string
	Endpoint string        // path, optionally with a query string
	Payload  ldvalue.Value // ldvalue.Null() for no payload
	Shape    servicedef.PayloadShape
	Headers  http.Header // merged over the default headers
}

// Response is a normalized response. Body is never null: an empty response body is
// represented as an empty JSON object.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       ldvalue.Value
	Raw        []byte
	Curl       string
}

// New creates a client for the API at baseURL. Requests have no timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// DefaultHeaders returns the headers sent with every request unless the caller overrides them.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return h
}

// Send performs the request. A network-level failure is returned as a *TransportError; a
// response with a body that is not valid JSON is returned as a *MalformedBodyError, which
// still carries the status code.
func (c *Client) Send(r Request, logger framework.Logger) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	req, body, err := c.buildRequest(r)
	if err != nil {
		return nil, err
	}
	curl := CurlCommand(req.Method, req.URL.String(), req.Header, body)

	logger.Printf("Request: %s %s", req.Method, req.URL)
	if len(body) > 0 {
		logger.Printf("Request body: %s", string(body))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("Transport error: %s", err)
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Curl: curl, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("Transport error reading body: %s", err)
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Curl: curl, Err: err}
	}
	logger.Printf("Response: %d %s", resp.StatusCode, string(data))

	result := &Response{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Raw:        data,
		Curl:       curl,
	}
	result.Body, err = parseBody(data)
	if err != nil {
		result.Body = ldvalue.Null()
		return nil, &MalformedBodyError{Response: result, Err: err}
	}
	return result, nil
}

func (c *Client) buildRequest(r Request) (*http.Request, []byte, error) {
	method := strings.ToUpper(r.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, nil, fmt.Errorf("unsupported method %q", r.Method)
	}

	u, err := url.Parse(c.baseURL + r.Endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid endpoint %q: %w", r.Endpoint, err)
	}

	var body []byte
	if !r.Payload.IsNull() {
		switch r.Shape.Resolve(method) {
		case servicedef.QueryShape:
			q := u.Query()
			for _, key := range r.Payload.Keys() {
				q.Set(key, queryValue(r.Payload.GetByKey(key)))
			}
			u.RawQuery = q.Encode()
		default:
			if method != http.MethodDelete {
				if body, err = json.Marshal(r.Payload); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header = DefaultHeaders()
	for name, values := range r.Headers {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	return req, body, nil
}

func queryValue(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

func parseBody(data []byte) (ldvalue.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ldvalue.ObjectBuild().Build(), nil
	}
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return ldvalue.Null(), err
	}
	return v, nil
}
