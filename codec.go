package jsonutil

import (
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

// ContentType is the MIME type every Codec produces.
const ContentType = "application/json"

// Codec is a compiled, immutable JSON codec.
// It is safe for concurrent use.
type Codec struct {
	cfg      Config
	api      jsoniter.API
	adapters map[reflect.Type]*adapter
}

// Config returns the configuration the codec was compiled from.
func (c *Codec) Config() Config {
	return c.cfg
}

// ContentType returns the MIME type for JSON.
func (c *Codec) ContentType() string {
	return ContentType
}

// Has reports whether the codec adapts values of type t.
func (c *Codec) Has(t reflect.Type) bool {
	if _, ok := c.adapters[t]; ok {
		return true
	}
	return c.cfg.enum && isEnumType(t)
}

// Adapters returns the names of the adapted types in registration order.
func (c *Codec) Adapters() []string {
	names := make([]string, 0, len(c.adapters))
	for _, a := range adapterTable(c.cfg) {
		names = append(names, a.name)
	}
	if c.cfg.enum {
		names = append(names, "Enum")
	}
	return names
}

// Marshal encodes v as JSON.
func (c *Codec) Marshal(v any) ([]byte, error) {
	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Unmarshal decodes JSON data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	if err := c.api.Unmarshal(data, v); err != nil {
		return newCodecError(ErrUnmarshal, err)
	}
	return nil
}

// Encode returns the JSON text of v.
func (c *Codec) Encode(v any) (string, error) {
	text, err := c.api.MarshalToString(v)
	if err != nil {
		return "", newCodecError(ErrMarshal, err)
	}
	return text, nil
}

// Decode decodes JSON text into v, which must be a non-nil pointer.
func (c *Codec) Decode(text string, v any) error {
	if err := c.api.UnmarshalFromString(text, v); err != nil {
		return newCodecError(ErrUnmarshal, err)
	}
	return nil
}

// DecodeToMap decodes a JSON object into a generic map. Numbers decode as
// float64, nested objects as map[string]any and arrays as []any.
// JSON null yields a nil map.
func (c *Codec) DecodeToMap(text string) (map[string]any, error) {
	var out map[string]any
	if err := c.Decode(text, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewEncoder returns a streaming encoder that writes to w.
func (c *Codec) NewEncoder(w io.Writer) *jsoniter.Encoder {
	return c.api.NewEncoder(w)
}

// NewDecoder returns a streaming decoder that reads from r.
func (c *Codec) NewDecoder(r io.Reader) *jsoniter.Decoder {
	return c.api.NewDecoder(r)
}

// Decode decodes JSON text into a new T.
func Decode[T any](c *Codec, text string) (T, error) {
	var out T
	if err := c.Decode(text, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
