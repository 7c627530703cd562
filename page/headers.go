package page

import (
	"mime"
	"net/http"
)

// HttpRequestHeaders holds HTTP request headers. Lookups are
// case-insensitive; a name may carry multiple values in order.
type HttpRequestHeaders map[string][]string

// HttpResponseHeaders holds HTTP response headers. Lookups are
// case-insensitive; a name may carry multiple values in order.
type HttpResponseHeaders map[string][]string

// Get returns the first value for name, or "".
func (h HttpRequestHeaders) Get(name string) string {
	return http.Header(h).Get(name)
}

// Values returns all values for name in order.
func (h HttpRequestHeaders) Values(name string) []string {
	return http.Header(h).Values(name)
}

// Set replaces any existing values for name.
func (h HttpRequestHeaders) Set(name, value string) {
	http.Header(h).Set(name, value)
}

// Add appends a value for name.
func (h HttpRequestHeaders) Add(name, value string) {
	http.Header(h).Add(name, value)
}

// Get returns the first value for name, or "".
func (h HttpResponseHeaders) Get(name string) string {
	return http.Header(h).Get(name)
}

// Values returns all values for name in order.
func (h HttpResponseHeaders) Values(name string) []string {
	return http.Header(h).Values(name)
}

// Set replaces any existing values for name.
func (h HttpResponseHeaders) Set(name, value string) {
	http.Header(h).Set(name, value)
}

// Add appends a value for name.
func (h HttpResponseHeaders) Add(name, value string) {
	http.Header(h).Add(name, value)
}

// DeclaredEncoding returns the charset named by the Content-Type header,
// or "" if the header is absent or carries no charset.
func (h HttpResponseHeaders) DeclaredEncoding() string {
	ct := h.Get("Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}
