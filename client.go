package raas

import (
	"context"
	"strings"
)

// Method is the logical HTTP method the service uses against the target URL.
// It selects the service route; the request to the service itself is
// always sent as POST.
type Method string

// Method constants supported by the service.
const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Valid reports whether the service supports m.
func (m Method) Valid() bool {
	return m == MethodGet || m == MethodPost
}

// Route returns the path segment of the service route for m.
func (m Method) Route() string {
	return strings.ToLower(string(m))
}

// Result is the JSON object returned by the service on success.
type Result map[string]any

// Client forwards fetch requests to a RaaS endpoint.
type Client interface {
	// Get asks the service to GET the target URL.
	Get(ctx context.Context, req *FetchRequest) (Result, error)

	// Post asks the service to POST to the target URL.
	Post(ctx context.Context, req *FetchRequest) (Result, error)

	// Execute validates req, sends it to the service route for method and
	// interprets the reply. Validation errors are returned before any
	// network I/O takes place.
	Execute(ctx context.Context, method Method, req *FetchRequest) (Result, error)
}
