package scrapekit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrapekit/scrapekit/page"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// The replay client serializes each saved request/response pair as nested
// leaves with numbered keys:
//
//	exists                      marker, empty
//	0-HttpRequest.info.json     first saved request
//	0-HttpResponse.body.html    first saved response
//	0-HttpResponse.other.json
//	1-HttpRequest.info.json     ...
//
// The "exists" marker keeps a client with no saved responses from
// serializing to an empty mapping.
const clientExistsKey = "exists"

func serializeHTTPClient(r *Registry, c *page.HttpClient) (LeafData, error) {
	result := LeafData{clientExistsKey: []byte{}}
	for i, saved := range c.SavedResponses() {
		req, err := r.SerializeLeaf(saved.Request)
		if err != nil {
			return nil, fmt.Errorf("serialize saved request %d: %w", i, err)
		}
		for k, v := range req {
			result[fmt.Sprintf("%d-HttpRequest.%s", i, k)] = v
		}
		resp, err := r.SerializeLeaf(saved.Response)
		if err != nil {
			return nil, fmt.Errorf("serialize saved response %d: %w", i, err)
		}
		for k, v := range resp {
			result[fmt.Sprintf("%d-HttpResponse.%s", i, k)] = v
		}
	}
	return result, nil
}

func deserializeHTTPClient(r *Registry, data LeafData) (*page.HttpClient, error) {
	requests := make(map[int]LeafData)
	responses := make(map[int]LeafData)

	for k, v := range data {
		if k == clientExistsKey {
			continue
		}
		// k is "<index>-<HttpRequest|HttpResponse>.<leaf key>"
		idxPart, rest, ok := strings.Cut(k, "-")
		if !ok {
			return nil, fmt.Errorf("HttpClient leaf: malformed key %q", k)
		}
		idx, err := strconv.Atoi(idxPart)
		if err != nil {
			return nil, fmt.Errorf("HttpClient leaf: malformed key %q: %w", k, err)
		}
		typeName, leafKey, ok := strings.Cut(rest, ".")
		if !ok {
			return nil, fmt.Errorf("HttpClient leaf: malformed key %q", k)
		}
		switch typeName {
		case "HttpRequest":
			if requests[idx] == nil {
				requests[idx] = LeafData{}
			}
			requests[idx][leafKey] = v
		case "HttpResponse":
			if responses[idx] == nil {
				responses[idx] = LeafData{}
			}
			responses[idx][leafKey] = v
		default:
			return nil, fmt.Errorf("HttpClient leaf: unexpected type %q in key %q", typeName, k)
		}
	}

	indexes := maps.Keys(requests)
	slices.Sort(indexes)

	var saved []page.SavedResponse
	for _, idx := range indexes {
		respData, ok := responses[idx]
		if !ok {
			continue
		}
		req, err := DeserializeLeafAs[*page.HttpRequest](r, requests[idx])
		if err != nil {
			return nil, fmt.Errorf("deserialize saved request %d: %w", idx, err)
		}
		resp, err := DeserializeLeafAs[*page.HttpResponse](r, respData)
		if err != nil {
			return nil, fmt.Errorf("deserialize saved response %d: %w", idx, err)
		}
		saved = append(saved, page.SavedResponse{Request: req, Response: resp})
	}
	return page.NewHttpClient(saved...), nil
}
