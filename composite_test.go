package scrapekit

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/scrapekit/scrapekit/page"
)

// webPage is a composite with two declared dependencies: the downloaded
// response and the canonical URL.
type webPage struct {
	Response *page.HttpResponse
	Url      page.ResponseUrl
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	RegisterComposite(r,
		[]Field{
			FieldOf[*page.HttpResponse]("Response"),
			FieldOf[page.ResponseUrl]("Url"),
		},
		func(deps []any) (*webPage, error) {
			return &webPage{
				Response: deps[0].(*page.HttpResponse),
				Url:      deps[1].(page.ResponseUrl),
			}, nil
		},
		func(p *webPage) []any {
			return []any{p.Response, p.Url}
		},
	)
	return r
}

func TestCompositeRoundTrip(t *testing.T) {
	r := newTestRegistry()

	resp := &page.HttpResponse{
		Url:     page.ResponseUrl("http://books.toscrape.com/index.html"),
		Body:    []byte("<html><body>books</body></html>"),
		Status:  200,
		Headers: page.HttpResponseHeaders{"Content-Type": {"text/html"}},
	}
	url := page.ResponseUrl("http://books.toscrape.com/index.html")

	tree, err := r.Serialize(resp, url)
	assert.NoError(t, err)
	assert.Equal(t, []byte(resp.Body), tree["HttpResponse"]["body.html"])
	assert.Equal(t, []byte(url), tree["ResponseUrl"]["txt"])

	var meta map[string]any
	assert.NoError(t, json.Unmarshal(tree["HttpResponse"]["other.json"], &meta))
	assert.Equal(t, "http://books.toscrape.com/index.html", meta["url"].(string))

	deserialized, err := DeserializeAs[*webPage](r, tree)
	assert.NoError(t, err)
	assert.Equal(t, &webPage{Response: resp, Url: url}, deserialized)
}

func TestCompositeMissingType(t *testing.T) {
	r := newTestRegistry()

	tree, err := r.Serialize(page.ResponseUrl("http://example.com"))
	assert.NoError(t, err)

	_, err = DeserializeAs[*webPage](r, tree)
	assert.Error(t, err)
	assert.IsError(t, err, ErrMissingType)
	assert.Contains(t, err.Error(), "HttpResponse")
}

func TestCompositeUnregistered(t *testing.T) {
	r := NewRegistry()

	_, err := DeserializeAs[*webPage](r, SerializedTree{})
	assert.Error(t, err)
	assert.IsError(t, err, ErrNotSupported)
}

func TestSerializeComposite(t *testing.T) {
	r := newTestRegistry()

	p := &webPage{
		Response: &page.HttpResponse{
			Url:     page.ResponseUrl("http://example.com"),
			Body:    []byte("<html></html>"),
			Headers: page.HttpResponseHeaders{},
		},
		Url: page.ResponseUrl("http://example.com"),
	}

	tree, err := r.SerializeComposite(p)
	assert.NoError(t, err)

	direct, err := r.Serialize(p.Response, p.Url)
	assert.NoError(t, err)
	assert.Equal(t, direct, tree)
}

func TestSerializeLastWriteWins(t *testing.T) {
	r := NewRegistry()

	tree, err := r.Serialize(
		page.ResponseUrl("http://first.example.com"),
		page.ResponseUrl("http://second.example.com"),
	)
	assert.NoError(t, err)
	assert.Equal(t, []byte("http://second.example.com"), tree["ResponseUrl"]["txt"])
}
