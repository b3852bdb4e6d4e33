package raas

import (
	"strings"
	"time"
)

// FetchRequest describes a page to be fetched through the service.
type FetchRequest struct {
	// URL of the page to fetch. Must start with http:// or https://.
	URL string `json:"url"`

	// EndpointURL is the base address of the RaaS service.
	EndpointURL string `json:"endpointUrl"`

	// Headers are forwarded to the service verbatim.
	Headers map[string]string `json:"headers,omitempty"`

	// Force overrides the service's detection logic, e.g. the response encoding.
	Force string `json:"force,omitempty"`

	// Timeout the service should apply to the fetch. Zero or negative
	// values are not sent, so the service default applies.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Validate returns an error if the request cannot be sent to the service
// using method. Checks run in a fixed order and the first failure is
// reported: target URL, then endpoint URL, then method.
func (r *FetchRequest) Validate(method Method) error {
	if r == nil || strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALIDURL, "url required")
	}
	if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return Errorf(EINVALIDURL, "url must start with http:// or https://: %q", r.URL)
	}
	if strings.TrimSpace(r.EndpointURL) == "" {
		return Errorf(EINVALIDENDPOINT, "endpoint url required")
	}
	if !method.Valid() {
		return Errorf(EINVALIDMETHOD, "unsupported method %q", string(method))
	}
	return nil
}
