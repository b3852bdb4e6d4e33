// Package http provides an HTTP-based implementation of raas.Client that
// forwards fetch requests to a RaaS endpoint.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/raas"
)

// DefaultTimeout is the default timeout for a round trip to the service.
// The service applies its own fetch timeout on top of this; see
// raas.FetchRequest.Timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements raas.Client at compile time.
var _ raas.Client = (*Client)(nil)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends fetch requests to a RaaS endpoint over HTTP.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	doer    Doer
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for requests to the service.
// Defaults to DefaultTimeout (30s) if not specified. Ignored when a Doer is
// supplied with WithDoer.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDoer sets the transport used to dispatch requests.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// NewClient creates a new HTTP-based Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		c.doer = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// Get asks the service to GET req.URL.
func (c *Client) Get(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.Execute(ctx, raas.MethodGet, req)
}

// Post asks the service to POST to req.URL.
func (c *Client) Post(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.Execute(ctx, raas.MethodPost, req)
}

// Execute validates req, sends it to the service in a single attempt and
// interprets the reply. Transport failures are returned wrapped and carry
// no raas error code.
func (c *Client) Execute(ctx context.Context, method raas.Method, req *raas.FetchRequest) (raas.Result, error) {
	hreq, err := NewRequest(ctx, method, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("raas %s: %w", method.Route(), err)
	}
	defer resp.Body.Close()

	return ReadResponse(resp)
}

// NewRequest validates req and builds the request to the service route for
// method. The request is always a POST; the target URL and the optional
// force and timeout parameters travel in the query string, after any query
// the endpoint already carries. A Host header replaces the request's host.
func NewRequest(ctx context.Context, method raas.Method, req *raas.FetchRequest) (*http.Request, error) {
	if err := req.Validate(method); err != nil {
		return nil, err
	}

	u, err := url.Parse(strings.TrimSpace(req.EndpointURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, raas.Errorf(raas.EINVALIDENDPOINT, "invalid endpoint url %q", req.EndpointURL)
	}
	q, err := endpointQuery(u)
	if err != nil {
		return nil, err
	}
	for key, values := range queryParams(req) {
		q[key] = values
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + method.Route()
	u.RawPath = ""
	u.RawQuery = q.Encode()

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for name, value := range req.Headers {
		if strings.EqualFold(name, "Host") {
			hreq.Host = value
			continue
		}
		hreq.Header.Set(name, value)
	}

	return hreq, nil
}

// endpointQuery returns the query already present on the endpoint. Keys the
// client sets itself may not appear there.
func endpointQuery(u *url.URL) (url.Values, error) {
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, raas.Errorf(raas.EINVALIDENDPOINT, "invalid endpoint query %q: %v", u.RawQuery, err)
	}
	for _, key := range []string{"url", "force", "timeout"} {
		if q.Has(key) {
			return nil, raas.Errorf(raas.EINVALIDENDPOINT, "endpoint url must not set the %q parameter", key)
		}
	}
	return q, nil
}

func queryParams(req *raas.FetchRequest) url.Values {
	q := url.Values{}
	q.Set("url", req.URL)
	if req.Force != "" {
		q.Set("force", req.Force)
	}
	if req.Timeout > 0 {
		q.Set("timeout", strconv.FormatFloat(req.Timeout.Seconds(), 'f', -1, 64))
	}
	return q
}

// ReadResponse maps a service reply to a Result or an *raas.Error.
// It does not close resp.Body.
func ReadResponse(resp *http.Response) (raas.Result, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch code := resp.StatusCode; {
	case code == http.StatusOK:
		var result raas.Result
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, raas.Errorf(raas.EMALFORMED, "decode response: %v", err)
		}
		if result == nil {
			return nil, raas.Errorf(raas.EMALFORMED, "response is not a JSON object")
		}
		return result, nil
	case code == http.StatusBadRequest:
		return nil, raas.Errorf(raas.EBADREQUEST, "%s", badRequestMessage(body))
	case code >= http.StatusInternalServerError:
		return nil, raas.Errorf(raas.EINTERNAL, "%s", statusText(code))
	default:
		return nil, raas.Errorf(raas.EUNEXPECTEDSTATUS, "%d", code)
	}
}

// statusText formats code with its reason phrase, e.g. "503 Service Unavailable".
func statusText(code int) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", code, http.StatusText(code)))
}

// badRequestMessage returns the error field of a 400 body. Bodies that are
// not JSON, or lack a string error field, are reported as-is.
func badRequestMessage(body []byte) string {
	var payload struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		return *payload.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(http.StatusBadRequest)
}
