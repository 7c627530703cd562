package scrapekit

import "reflect"

// SerializeLeaf encodes a single value using the codec registered for its
// exact runtime type. A nil value has no runtime type to dispatch on; it
// is plain data and serializes as JSON null.
func (r *Registry) SerializeLeaf(v any) (LeafData, error) {
	if v == nil {
		return jsonCodec.Serialize(v)
	}
	c, err := r.Lookup(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return c.Serialize(v)
}

// DeserializeLeaf decodes data into a value of the target type using the
// codec registered for that type.
func (r *Registry) DeserializeLeaf(target reflect.Type, data LeafData) (any, error) {
	c, err := r.Lookup(target)
	if err != nil {
		return nil, err
	}
	return c.Deserialize(target, data)
}

// DeserializeLeafAs is DeserializeLeaf with a typed result.
func DeserializeLeafAs[T any](r *Registry, data LeafData) (T, error) {
	var zero T
	v, err := r.DeserializeLeaf(typeFor[T](), data)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// SerializeLeaf encodes v using the Default registry.
func SerializeLeaf(v any) (LeafData, error) {
	return Default.SerializeLeaf(v)
}

// DeserializeLeaf decodes data using the Default registry.
func DeserializeLeaf(target reflect.Type, data LeafData) (any, error) {
	return Default.DeserializeLeaf(target, data)
}

// Serialize builds a tree from values using the Default registry.
func Serialize(values ...any) (SerializedTree, error) {
	return Default.Serialize(values...)
}

// Deserialize reconstructs a composite from tree using the Default
// registry.
func Deserialize(target reflect.Type, tree SerializedTree) (any, error) {
	return Default.Deserialize(target, tree)
}
