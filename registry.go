package scrapekit

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotSupported is returned when a type has no registered codec and
	// is not covered by a built-in one.
	ErrNotSupported = errors.New("scrapekit: type not supported")

	// ErrMissingType is returned when composite deserialization cannot
	// find a declared field's type name in the serialized tree.
	ErrMissingType = errors.New("scrapekit: type missing from serialized tree")
)

// Registry maps concrete types to codecs, and composite types to their
// declared dependency schemas. Codec dispatch is by exact runtime type;
// there is no inheritance-style fallback.
//
// A Registry is not safe for concurrent mutation. Register all codecs and
// composites at startup, before any concurrent reads.
type Registry struct {
	codecs     map[reflect.Type]Codec
	composites map[reflect.Type]compositeSchema
}

// NewRegistry returns a registry with the built-in codecs pre-registered:
// the JSON fallback for plain data values, HTTP requests and responses,
// response bodies, request/response URLs, page params and the replay HTTP
// client.
func NewRegistry() *Registry {
	r := &Registry{
		codecs:     make(map[reflect.Type]Codec),
		composites: make(map[reflect.Type]compositeSchema),
	}
	registerBuiltins(r)
	return r
}

// RegisterCodec stores the codec for t, replacing any previous
// registration for the same type.
func (r *Registry) RegisterCodec(t reflect.Type, c Codec) {
	r.codecs[t] = c
}

// Register stores a typed codec pair for T, replacing any previous
// registration. The deserialize function receives exactly the LeafData the
// serialize function produced.
func Register[T any](r *Registry, ser func(T) (LeafData, error), de func(LeafData) (T, error)) {
	t := typeFor[T]()
	r.RegisterCodec(t, Codec{
		Serialize: func(v any) (LeafData, error) {
			tv, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("%w: got %s, codec is for %s",
					ErrNotSupported, TypeNameOf(reflect.TypeOf(v)), TypeNameOf(t))
			}
			return ser(tv)
		},
		Deserialize: func(_ reflect.Type, data LeafData) (any, error) {
			return de(data)
		},
	})
}

// Lookup returns the codec for t. Exact match only, except that
// unregistered plain data types (maps, slices, strings, numbers, booleans)
// fall back to the JSON codec. Anything else, including a nil type, fails
// with ErrNotSupported.
func (r *Registry) Lookup(t reflect.Type) (Codec, error) {
	if t == nil {
		return Codec{}, fmt.Errorf("%w: nil type", ErrNotSupported)
	}
	if c, ok := r.codecs[t]; ok {
		return c, nil
	}
	if jsonRepresentable(t) {
		return jsonCodec, nil
	}
	return Codec{}, fmt.Errorf("%w: %s", ErrNotSupported, TypeNameOf(t))
}

// Default is the process-wide registry used by the package-level
// functions. Built-ins are registered before any user code runs.
var Default = NewRegistry()
