package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	followRedirect     bool
	dismiss404         bool
	defaultHeaders     map[string]string
	defaultQueryParams map[string]string
	defaultContentType string
	backoff            *BackoffConfig
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	Dismiss404          bool
	DefaultHeaders      map[string]string
	DefaultQueryParams  map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	Backoff             *BackoffConfig
	Logger              HTTPLogger
	// Transport overrides the default pooled transport.
	Transport http.RoundTripper
}

// BackoffConfig controls retries of transport errors and retryable status codes.
type BackoffConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// RetryOn lists status codes worth retrying. Transport errors are always retried.
	RetryOn []int
}

// ResponseError is returned when the server answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			MaxIdleConns:        opts.MaxIdleConns,
			MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
			IdleConnTimeout:     opts.IdleConnTimeout,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		followRedirect:     opts.FollowRedirect,
		dismiss404:         opts.Dismiss404,
		defaultHeaders:     opts.DefaultHeaders,
		defaultQueryParams: opts.DefaultQueryParams,
		defaultContentType: opts.DefaultContentType,
		backoff:            opts.Backoff,
		logger:             opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doRequestWithBackoff runs doRequest and retries transport errors and retryable statuses
// according to the request backoff, falling back to the client default.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.backoff
	}

	maxRetries := 0
	if backoff != nil {
		maxRetries = backoff.MaxRetries
	}

	delay := time.Duration(0)
	if backoff != nil {
		delay = backoff.InitialDelay
	}

	for attempt := 0; ; attempt++ {
		start := time.Now()
		success, errResp, status, respBody, err := hc.doRequest(ctx, method, path, queryParams, successResp, errorResp)
		latency := time.Since(start).Milliseconds()

		if err == nil || attempt >= maxRetries || !backoff.shouldRetry(status, err) || ctx.Err() != nil {
			return success, errResp, status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, hc.buildURL(path), hc.defaultHeaders, "", status, respBody, latency, err, attempt+1, maxRetries)
		}

		select {
		case <-ctx.Done():
			return nil, nil, status, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if backoff.MaxDelay > 0 && delay > backoff.MaxDelay {
			delay = backoff.MaxDelay
		}
	}
}

// shouldRetry reports whether a failed attempt is worth repeating.
func (b *BackoffConfig) shouldRetry(status int, err error) bool {
	if b == nil {
		return false
	}
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	for _, code := range b.RetryOn {
		if code == status {
			return true
		}
	}
	return false
}

// doRequest sends a single HTTP request with the default headers and decodes the answer
// into successResp or errorResp. It returns the success response, error response, status
// code, raw response body and error if any.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams map[string]string, successResp any, errorResp any) (any, any, int, string, error) {
	requestURL := hc.buildURL(path)
	if query := hc.buildQueryString(queryParams); query != "" {
		requestURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, nil, 0, "", err
	}

	headers := hc.defaultHeaders
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	// The logged URL never carries the query string, which may hold credentials.
	logURL := hc.buildURL(path)
	if hc.logger != nil {
		hc.logger.LogRequest(method, logURL, headers, "")
	}

	start := time.Now()
	resp, err := hc.client.Do(req)
	if err != nil {
		if hc.logger != nil {
			hc.logger.LogResponseError(method, logURL, headers, "", 0, "", time.Since(start).Milliseconds(), err)
		}
		return nil, nil, 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, resp.StatusCode, "", err
	}
	latency := time.Since(start).Milliseconds()

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if hc.logger != nil {
			hc.logger.LogResponseSuccess(method, logURL, headers, "", resp.StatusCode, string(bodyBytes), latency)
		}
		if successResp != nil {
			if err := hc.unmarshalResponse(bodyBytes, respContentType, successResp); err != nil {
				return nil, nil, resp.StatusCode, string(bodyBytes), fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return successResp, nil, resp.StatusCode, string(bodyBytes), nil
	}

	if resp.StatusCode == http.StatusNotFound && hc.dismiss404 {
		return nil, nil, resp.StatusCode, string(bodyBytes), nil
	}

	respErr := &ResponseError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	if hc.logger != nil {
		hc.logger.LogResponseError(method, logURL, headers, "", resp.StatusCode, string(bodyBytes), latency, respErr)
	}

	if errorResp != nil {
		// A body that does not decode still leaves the status error intact.
		if err := hc.unmarshalResponse(bodyBytes, respContentType, errorResp); err != nil {
			return nil, nil, resp.StatusCode, string(bodyBytes), respErr
		}
	}

	return nil, errorResp, resp.StatusCode, string(bodyBytes), respErr
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString merges default and request query parameters and escapes them
func (hc *Client) buildQueryString(params map[string]string) string {
	if len(params) == 0 && len(hc.defaultQueryParams) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range hc.defaultQueryParams {
		values.Set(key, value)
	}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}
