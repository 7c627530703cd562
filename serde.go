// Package scrapekit serializes the dependencies of web-scraping page
// objects. A leaf value (an HTTP response, a URL, a parameter mapping) is
// encoded into a small set of named byte buffers; the dependencies of a
// composite page object are collected into a two-level tree keyed by
// concrete type name. Codecs are dispatched by exact runtime type and can
// be registered for user-defined types.
package scrapekit

import "reflect"

// LeafData is the serialized form of a single leaf value: a mapping from a
// short format tag ("json", "txt", "body.html", ...) to raw bytes. A value
// may be split over several tags, e.g. an HTTP response keeps its body
// bytes apart from its JSON metadata.
type LeafData map[string][]byte

// SerializedTree holds the serialized dependencies of one composite: type
// name to LeafData, one entry per distinct concrete type.
type SerializedTree map[string]LeafData

// SerializeFunc encodes a value into LeafData.
type SerializeFunc func(v any) (LeafData, error)

// DeserializeFunc decodes LeafData back into a value of the target type.
type DeserializeFunc func(target reflect.Type, data LeafData) (any, error)

// Codec pairs the serialize and deserialize functions for one concrete
// type. The pair is always used together: deserializing and re-serializing
// must yield byte-identical LeafData.
type Codec struct {
	Serialize   SerializeFunc
	Deserialize DeserializeFunc
}

// TypeNameOf returns the tree key for a type: the pointer-stripped short
// type name. Unnamed types fall back to reflect's type string; a nil type
// (the type of an untyped nil value) is named "nil".
func TypeNameOf(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
