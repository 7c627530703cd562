package scrapekit

import (
	"fmt"

	"github.com/scrapekit/scrapekit/page"
)

const urlKey = "txt"

// Request and response URLs serialize to the bare URL string under the
// "txt" tag. The two codecs are registered separately so that the URL
// subtype is restored exactly: a RequestUrl never comes back as a
// ResponseUrl or vice versa.

func serializeRequestURL(u page.RequestUrl) (LeafData, error) {
	return LeafData{urlKey: []byte(u)}, nil
}

func deserializeRequestURL(data LeafData) (page.RequestUrl, error) {
	b, ok := data[urlKey]
	if !ok {
		return "", fmt.Errorf("RequestUrl leaf: missing %q entry", urlKey)
	}
	return page.RequestUrl(b), nil
}

func serializeResponseURL(u page.ResponseUrl) (LeafData, error) {
	return LeafData{urlKey: []byte(u)}, nil
}

func deserializeResponseURL(data LeafData) (page.ResponseUrl, error) {
	b, ok := data[urlKey]
	if !ok {
		return "", fmt.Errorf("ResponseUrl leaf: missing %q entry", urlKey)
	}
	return page.ResponseUrl(b), nil
}
