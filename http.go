package scrapekit

import (
	"fmt"
	"strings"

	"github.com/scrapekit/scrapekit/page"
)

// Leaf format tags for HTTP values. The body extension depends on the
// body: "body.html" for renderable markup, "body.data" otherwise.
const (
	bodyKeyPrefix   = "body."
	htmlBodyKey     = "body.html"
	genericBodyKey  = "body.data"
	responseMetaKey = "other.json"
	requestMetaKey  = "info.json"
	requestBodyKey  = "body.txt"
	htmlKey         = "html"
)

// responseMeta is the other.json payload of a serialized HttpResponse.
// Status and Encoding are pointers so that "not provided" serializes as
// null, distinct from any concrete value.
type responseMeta struct {
	URL      string              `json:"url"`
	Status   *int                `json:"status"`
	Headers  map[string][]string `json:"headers"`
	Encoding *string             `json:"encoding"`
}

func serializeHTTPResponse(o *page.HttpResponse) (LeafData, error) {
	meta := responseMeta{
		URL:     o.Url.String(),
		Headers: o.Headers,
	}
	if o.Status != 0 {
		status := o.Status
		meta.Status = &status
	}
	if o.Encoding != "" {
		encoding := o.Encoding
		meta.Encoding = &encoding
	}
	metaBytes, err := serializeJSON(meta)
	if err != nil {
		return nil, fmt.Errorf("serialize HttpResponse metadata: %w", err)
	}

	bodyKey := htmlBodyKey
	if !o.Body.Renderable() {
		bodyKey = genericBodyKey
	}
	return LeafData{
		bodyKey:         o.Body,
		responseMetaKey: metaBytes[jsonKey],
	}, nil
}

func deserializeHTTPResponse(data LeafData) (*page.HttpResponse, error) {
	var body page.HttpResponseBody
	found := false
	for key, b := range data {
		if strings.HasPrefix(key, bodyKeyPrefix) {
			body, found = b, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("HttpResponse leaf: no %q entry", bodyKeyPrefix+"*")
	}

	var meta responseMeta
	v, err := deserializeJSON(typeFor[responseMeta](), LeafData{jsonKey: data[responseMetaKey]})
	if err != nil {
		return nil, fmt.Errorf("HttpResponse leaf: decode %s: %w", responseMetaKey, err)
	}
	meta = v.(responseMeta)

	resp := &page.HttpResponse{
		Url:     page.ResponseUrl(meta.URL),
		Body:    body,
		Headers: meta.Headers,
	}
	if meta.Status != nil {
		resp.Status = *meta.Status
	}
	if meta.Encoding != nil {
		resp.Encoding = *meta.Encoding
	}
	return resp, nil
}

// requestMeta is the info.json payload of a serialized HttpRequest.
type requestMeta struct {
	URL     string              `json:"url"`
	Method  string              `json:"method"`
	Headers map[string][]string `json:"headers"`
}

func serializeHTTPRequest(o *page.HttpRequest) (LeafData, error) {
	meta := requestMeta{
		URL:     o.Url.String(),
		Method:  o.Method,
		Headers: o.Headers,
	}
	metaBytes, err := serializeJSON(meta)
	if err != nil {
		return nil, fmt.Errorf("serialize HttpRequest metadata: %w", err)
	}
	result := LeafData{requestMetaKey: metaBytes[jsonKey]}
	if len(o.Body) > 0 {
		result[requestBodyKey] = o.Body
	}
	return result, nil
}

func deserializeHTTPRequest(data LeafData) (*page.HttpRequest, error) {
	v, err := deserializeJSON(typeFor[requestMeta](), LeafData{jsonKey: data[requestMetaKey]})
	if err != nil {
		return nil, fmt.Errorf("HttpRequest leaf: decode %s: %w", requestMetaKey, err)
	}
	meta := v.(requestMeta)
	return &page.HttpRequest{
		Url:     page.RequestUrl(meta.URL),
		Method:  meta.Method,
		Headers: meta.Headers,
		Body:    page.HttpRequestBody(data[requestBodyKey]),
	}, nil
}

func serializeHTTPResponseBody(o page.HttpResponseBody) (LeafData, error) {
	return LeafData{htmlKey: o}, nil
}

func deserializeHTTPResponseBody(data LeafData) (page.HttpResponseBody, error) {
	b, ok := data[htmlKey]
	if !ok {
		return nil, fmt.Errorf("HttpResponseBody leaf: missing %q entry", htmlKey)
	}
	return page.HttpResponseBody(b), nil
}
