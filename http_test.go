package scrapekit

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/scrapekit/scrapekit/page"
)

func TestSerializeHTTPResponse(t *testing.T) {
	r := NewRegistry()

	body := []byte("<html><body>hello</body></html>")
	resp := &page.HttpResponse{
		Url:     page.ResponseUrl("http://example.com"),
		Body:    body,
		Status:  200,
		Headers: page.HttpResponseHeaders{},
	}

	serialized, err := r.SerializeLeaf(resp)
	assert.NoError(t, err)
	assert.Equal(t, body, serialized["body.html"])

	var meta map[string]any
	assert.NoError(t, json.Unmarshal(serialized["other.json"], &meta))
	assert.Equal(t, "http://example.com", meta["url"].(string))
	assert.Equal(t, 200.0, meta["status"].(float64))
	_, hasHeaders := meta["headers"]
	assert.True(t, hasHeaders)
	encoding, hasEncoding := meta["encoding"]
	assert.True(t, hasEncoding)
	assert.Equal(t, nil, encoding)

	deserialized, err := DeserializeLeafAs[*page.HttpResponse](r, serialized)
	assert.NoError(t, err)
	assert.Equal(t, resp, deserialized)
}

func TestHTTPResponseEncodingPreserved(t *testing.T) {
	r := NewRegistry()
	body := page.HttpResponseBody("<html><body>héllo</body></html>")

	t.Run("declared encoding", func(t *testing.T) {
		resp := &page.HttpResponse{
			Url:      page.ResponseUrl("http://example.com"),
			Body:     body,
			Headers:  page.HttpResponseHeaders{},
			Encoding: "utf-8",
		}
		serialized, err := r.SerializeLeaf(resp)
		assert.NoError(t, err)
		deserialized, err := DeserializeLeafAs[*page.HttpResponse](r, serialized)
		assert.NoError(t, err)
		assert.Equal(t, "utf-8", deserialized.Encoding)
	})

	t.Run("no declared encoding stays unspecified", func(t *testing.T) {
		resp := &page.HttpResponse{
			Url:     page.ResponseUrl("http://example.com"),
			Body:    body,
			Headers: page.HttpResponseHeaders{},
		}
		serialized, err := r.SerializeLeaf(resp)
		assert.NoError(t, err)
		deserialized, err := DeserializeLeafAs[*page.HttpResponse](r, serialized)
		assert.NoError(t, err)
		assert.Equal(t, "", deserialized.Encoding)
	})

	t.Run("unknown status stays unknown", func(t *testing.T) {
		resp := &page.HttpResponse{
			Url:     page.ResponseUrl("file:///page.html"),
			Body:    body,
			Headers: page.HttpResponseHeaders{},
		}
		serialized, err := r.SerializeLeaf(resp)
		assert.NoError(t, err)

		var meta map[string]any
		assert.NoError(t, json.Unmarshal(serialized["other.json"], &meta))
		assert.Equal(t, nil, meta["status"])

		deserialized, err := DeserializeLeafAs[*page.HttpResponse](r, serialized)
		assert.NoError(t, err)
		assert.Equal(t, 0, deserialized.Status)
	})
}

func TestHTTPResponseNonHTMLBody(t *testing.T) {
	r := NewRegistry()

	resp := &page.HttpResponse{
		Url:     page.ResponseUrl("http://example.com/data"),
		Body:    []byte{0x00, 0x01, 0x02, 0xff},
		Headers: page.HttpResponseHeaders{},
	}
	serialized, err := r.SerializeLeaf(resp)
	assert.NoError(t, err)

	_, hasHTML := serialized["body.html"]
	assert.False(t, hasHTML)
	assert.Equal(t, []byte(resp.Body), serialized["body.data"])

	deserialized, err := DeserializeLeafAs[*page.HttpResponse](r, serialized)
	assert.NoError(t, err)
	assert.Equal(t, resp, deserialized)
}

func TestSerializeHTTPRequest(t *testing.T) {
	r := NewRegistry()

	t.Run("with body", func(t *testing.T) {
		req := &page.HttpRequest{
			Url:     page.RequestUrl("http://example.com/login"),
			Method:  "POST",
			Headers: page.HttpRequestHeaders{"Content-Type": {"application/json"}},
			Body:    []byte(`{"user":"x"}`),
		}
		serialized, err := r.SerializeLeaf(req)
		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"user":"x"}`), serialized["body.txt"])

		deserialized, err := DeserializeLeafAs[*page.HttpRequest](r, serialized)
		assert.NoError(t, err)
		assert.Equal(t, req, deserialized)
	})

	t.Run("empty body omits body entry", func(t *testing.T) {
		req := &page.HttpRequest{
			Url:     page.RequestUrl("http://example.com"),
			Method:  "GET",
			Headers: page.HttpRequestHeaders{},
		}
		serialized, err := r.SerializeLeaf(req)
		assert.NoError(t, err)
		_, hasBody := serialized["body.txt"]
		assert.False(t, hasBody)

		deserialized, err := DeserializeLeafAs[*page.HttpRequest](r, serialized)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(deserialized.Body))
	})
}

func TestSerializeHTTPResponseBody(t *testing.T) {
	r := NewRegistry()

	body := page.HttpResponseBody("<html></html>")
	serialized, err := r.SerializeLeaf(body)
	assert.NoError(t, err)
	assert.Equal(t, []byte(body), serialized["html"])

	deserialized, err := DeserializeLeafAs[page.HttpResponseBody](r, serialized)
	assert.NoError(t, err)
	assert.Equal(t, body, deserialized)
}
