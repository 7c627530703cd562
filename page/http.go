package page

import (
	"fmt"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// HttpRequest represents a generic HTTP request.
type HttpRequest struct {
	Url     RequestUrl
	Method  string
	Headers HttpRequestHeaders
	Body    HttpRequestBody
}

// NewHttpRequest returns a GET request for url with empty headers and body.
func NewHttpRequest(url RequestUrl) *HttpRequest {
	return &HttpRequest{
		Url:     url,
		Method:  "GET",
		Headers: HttpRequestHeaders{},
	}
}

// Join resolves ref against the request URL.
func (r *HttpRequest) Join(ref string) (RequestUrl, error) {
	return r.Url.Join(ref)
}

// HttpResponse is the contents of a response downloaded directly by an HTTP
// client. Url should be the URL of the response after all redirects, not the
// URL of the request.
//
// Status 0 means the status is not known (e.g. the response was loaded from
// a local file), and Encoding "" means no encoding was declared; both states
// are preserved exactly across serialization and differ from any concrete
// value.
type HttpResponse struct {
	Url      ResponseUrl
	Body     HttpResponseBody
	Status   int
	Headers  HttpResponseHeaders
	Encoding string
}

// NewHttpResponse returns a response for url with the given body, unknown
// status, empty headers and no declared encoding.
func NewHttpResponse(url ResponseUrl, body HttpResponseBody) *HttpResponse {
	return &HttpResponse{
		Url:     url,
		Body:    body,
		Headers: HttpResponseHeaders{},
	}
}

// EffectiveEncoding resolves the encoding of the body: the declared
// Encoding if set, then the Content-Type header charset, then detection
// over the body bytes (byte order mark, meta tags, content sniffing).
func (r *HttpResponse) EffectiveEncoding() string {
	if r.Encoding != "" {
		return r.Encoding
	}
	if enc := r.Headers.DeclaredEncoding(); enc != "" {
		return enc
	}
	_, name, _ := charset.DetermineEncoding(r.Body, r.Headers.Get("Content-Type"))
	return name
}

// Text returns the body decoded to a string using the effective encoding.
func (r *HttpResponse) Text() (string, error) {
	name := r.EffectiveEncoding()
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("resolve encoding %q: %w", name, err)
	}
	decoded, err := enc.NewDecoder().Bytes(r.Body)
	if err != nil {
		return "", fmt.Errorf("decode body as %q: %w", name, err)
	}
	return string(decoded), nil
}

// JSON decodes the body as a JSON document into v.
func (r *HttpResponse) JSON(v any) error {
	return r.Body.JSON(v)
}

// Join resolves ref against the response URL.
func (r *HttpResponse) Join(ref string) (RequestUrl, error) {
	return r.Url.Join(ref)
}
