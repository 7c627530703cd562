package page

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HttpRequestBody holds a raw HTTP request body.
type HttpRequestBody []byte

// HttpResponseBody holds a raw HTTP response body.
type HttpResponseBody []byte

// Renderable reports whether the body looks like markup a browser would
// render. The result decides the body file extension when a response is
// serialized: "body.html" for markup, a generic extension otherwise.
func (b HttpResponseBody) Renderable() bool {
	ct := http.DetectContentType(b)
	return strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "text/xml") ||
		strings.HasPrefix(ct, "application/xml")
}

// JSON decodes the body as a JSON document into v.
func (b HttpResponseBody) JSON(v any) error {
	return json.Unmarshal(b, v)
}
