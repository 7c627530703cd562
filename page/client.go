package page

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/textproto"
	"sort"
)

// ErrNoSavedResponse is returned by HttpClient when no saved response
// matches the request.
var ErrNoSavedResponse = errors.New("page: no saved response for request")

// SavedResponse pairs a request with the response that answered it.
type SavedResponse struct {
	Request  *HttpRequest
	Response *HttpResponse
}

// HttpClient replays previously saved responses. It performs no network
// I/O: a request is answered by the saved response whose request
// fingerprint matches, which makes page objects that fetch additional
// pages reproducible from serialized fixtures.
type HttpClient struct {
	saved []SavedResponse
}

// NewHttpClient returns a client that replays the given responses.
func NewHttpClient(saved ...SavedResponse) *HttpClient {
	return &HttpClient{saved: saved}
}

// SavedResponses returns the saved request/response pairs in order.
func (c *HttpClient) SavedResponses() []SavedResponse {
	return c.saved
}

// Get answers a GET request for url from the saved responses.
func (c *HttpClient) Get(url RequestUrl) (*HttpResponse, error) {
	return c.Request(NewHttpRequest(url))
}

// Request answers req from the saved responses, matching by request
// fingerprint.
func (c *HttpClient) Request(req *HttpRequest) (*HttpResponse, error) {
	fp := Fingerprint(req)
	for _, s := range c.saved {
		if Fingerprint(s.Request) == fp {
			return s.Response, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNoSavedResponse, req.Method, req.Url)
}

// Fingerprint returns a stable identity for a request: a sha1 digest over
// the method, URL, sorted headers and body.
func Fingerprint(req *HttpRequest) string {
	h := sha1.New()
	h.Write([]byte(req.Method))
	h.Write([]byte{'\n'})
	h.Write([]byte(req.Url))
	h.Write([]byte{'\n'})

	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range req.Headers[name] {
			fmt.Fprintf(h, "%s:%s\n", textproto.CanonicalMIMEHeaderKey(name), value)
		}
	}
	h.Write([]byte{'\n'})
	h.Write(req.Body)
	return hex.EncodeToString(h.Sum(nil))
}
