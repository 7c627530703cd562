package scrapekit

import (
	"encoding/json"
	"fmt"
	"reflect"
)

const jsonKey = "json"

// jsonCodec is the fallback for plain data values: compact JSON bytes
// under the "json" tag.
var jsonCodec = Codec{
	Serialize:   serializeJSON,
	Deserialize: deserializeJSON,
}

func serializeJSON(v any) (LeafData, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json leaf: %w", err)
	}
	return LeafData{jsonKey: b}, nil
}

func deserializeJSON(target reflect.Type, data LeafData) (any, error) {
	b, ok := data[jsonKey]
	if !ok {
		return nil, fmt.Errorf("json leaf for %s: missing %q entry", TypeNameOf(target), jsonKey)
	}
	out := reflect.New(target)
	if err := json.Unmarshal(b, out.Interface()); err != nil {
		return nil, fmt.Errorf("decode json leaf as %s: %w", TypeNameOf(target), err)
	}
	return out.Elem().Interface(), nil
}

// jsonRepresentable reports whether t is a plain data type the JSON
// fallback accepts. Structs and other rich types need an explicit codec.
func jsonRepresentable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
