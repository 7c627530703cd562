package scrapekit

import (
	"fmt"
	"reflect"
)

// Field declares one dependency of a composite type: the field's name and
// its concrete type. The type, not the name, decides which tree entry the
// field is reconstructed from.
type Field struct {
	Name string
	Type reflect.Type
}

// FieldOf returns a Field of type T.
func FieldOf[T any](name string) Field {
	return Field{Name: name, Type: typeFor[T]()}
}

// compositeSchema is the registered declaration of a composite type:
// ordered dependency fields, a constructor taking the reconstructed field
// values in declaration order, and an extractor returning them from an
// instance.
type compositeSchema struct {
	fields []Field
	build  func(deps []any) (any, error)
	deps   func(v any) []any
}

// RegisterComposite declares the dependency schema for composite type T.
// build receives the deserialized field values in the order of fields;
// deps returns the current field values of an instance in the same order
// and may be nil if the composite is only ever deserialized.
//
// Composites declare their schema explicitly instead of being inspected
// via struct tags, so construction stays in ordinary typed code.
func RegisterComposite[T any](r *Registry, fields []Field, build func(deps []any) (T, error), deps func(v T) []any) {
	s := compositeSchema{
		fields: fields,
		build: func(d []any) (any, error) {
			return build(d)
		},
	}
	if deps != nil {
		s.deps = func(v any) []any {
			return deps(v.(T))
		}
	}
	r.composites[typeFor[T]()] = s
}

// Serialize encodes each value under its concrete type name. The input
// order does not matter; if two values share a type name the later one
// overwrites the earlier, so a dependency set must hold at most one value
// per concrete type.
func (r *Registry) Serialize(values ...any) (SerializedTree, error) {
	tree := make(SerializedTree, len(values))
	for _, v := range values {
		data, err := r.SerializeLeaf(v)
		if err != nil {
			return nil, err
		}
		tree[TypeNameOf(reflect.TypeOf(v))] = data
	}
	return tree, nil
}

// SerializeComposite encodes the declared dependency fields of composite
// c. The composite's type must have been registered with a deps extractor.
func (r *Registry) SerializeComposite(c any) (SerializedTree, error) {
	t := reflect.TypeOf(c)
	s, ok := r.composites[t]
	if !ok {
		return nil, fmt.Errorf("%w: no composite schema for %s", ErrNotSupported, TypeNameOf(t))
	}
	if s.deps == nil {
		return nil, fmt.Errorf("scrapekit: composite %s registered without a deps extractor", TypeNameOf(t))
	}
	return r.Serialize(s.deps(c)...)
}

// Deserialize reconstructs a composite of the target type from tree. Each
// declared field is looked up by its type name and decoded with that
// type's codec; a field whose type name is absent from the tree fails with
// ErrMissingType.
func (r *Registry) Deserialize(target reflect.Type, tree SerializedTree) (any, error) {
	s, ok := r.composites[target]
	if !ok {
		return nil, fmt.Errorf("%w: no composite schema for %s", ErrNotSupported, TypeNameOf(target))
	}
	deps := make([]any, len(s.fields))
	for i, f := range s.fields {
		name := TypeNameOf(f.Type)
		data, ok := tree[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (field %q of %s)",
				ErrMissingType, name, f.Name, TypeNameOf(target))
		}
		v, err := r.DeserializeLeaf(f.Type, data)
		if err != nil {
			return nil, fmt.Errorf("deserialize field %q of %s: %w", f.Name, TypeNameOf(target), err)
		}
		deps[i] = v
	}
	return s.build(deps)
}

// DeserializeAs is Deserialize with a typed result.
func DeserializeAs[T any](r *Registry, tree SerializedTree) (T, error) {
	var zero T
	v, err := r.Deserialize(typeFor[T](), tree)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
