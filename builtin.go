package scrapekit

import "github.com/scrapekit/scrapekit/page"

// registerBuiltins installs the codecs every registry starts with. User
// registrations for the same types replace these; the last registration
// wins.
func registerBuiltins(r *Registry) {
	Register(r, serializeRequestURL, deserializeRequestURL)
	Register(r, serializeResponseURL, deserializeResponseURL)
	Register(r, serializeHTTPResponseBody, deserializeHTTPResponseBody)
	Register(r, serializeHTTPResponse, deserializeHTTPResponse)
	Register(r, serializeHTTPRequest, deserializeHTTPRequest)

	// The client codec nests request/response leaves, so it serializes
	// through the registry it is registered on.
	Register(r,
		func(c *page.HttpClient) (LeafData, error) { return serializeHTTPClient(r, c) },
		func(data LeafData) (*page.HttpClient, error) { return deserializeHTTPClient(r, data) },
	)
}
