// Package jsonutil provides a configurable JSON codec with pluggable type adapters.
//
// A Config is an immutable set of feature flags. Compile turns a Config into
// an immutable Codec whose adapter table is fixed at compile time. Changing a
// flag never patches an existing Codec; it produces a new Config that must be
// compiled again.
//
// # Features
//
// Each feature activates one adapter pair (or one codec-wide behaviour):
//
//   - expose: only fields tagged `expose:"..."` are serialized/deserialized
//   - date: Date as 2006-01-02T15:04:05 in the local zone
//   - local_date: LocalDate as 2006-01-02 (also accepts {year, monthValue, dayOfMonth})
//   - local_date_time: LocalDateTime as 2006-01-02T15:04:05
//   - xml_calendar: XMLCalendar in its canonical XML lexical form
//   - byte_array: []byte as MIME Base64, disables HTML escaping codec-wide
//   - enum: Enum values as {"name": ..., <properties>...}
//
// OffsetDateTime is always adapted, regardless of flags.
//
// # Basic Usage
//
//	codec := jsonutil.Compile(jsonutil.DefaultConfig().WithDate().WithByteArray())
//
//	text, _ := codec.Encode(payload)
//	out, _ := jsonutil.Decode[Payload](codec, text)
//
// # Sessions
//
// Builder mirrors a mutable "codec session": setters take an optional
// BuildType. Eager (the default) recompiles after the change; Lazy only
// records it until Build is called. Encoding through a Builder with pending
// Lazy changes uses the previously compiled codec.
//
//	b := jsonutil.New().
//	    WithDate(jsonutil.Lazy).
//	    WithLocalDate(jsonutil.Lazy).
//	    Build()
//
// # Failure Policy
//
// Adapters are best effort. Malformed text for a special type is reported on
// SignalAdapterParseFailed and decodes to the zero value (nil for pointer
// fields). Callers must read a zero special-type field as "could not be
// parsed", not "absent". Malformed Base64 and broken enum payloads are the
// exceptions and fail the whole decode.
package jsonutil

// Marshaler provides content-type aware marshaling.
// Codec implements it so request/response collaborators can accept any
// implementation.
type Marshaler interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// PropertyFunc yields one extra enum property.
// Declared as an alias so types can satisfy Enum without importing this package.
type PropertyFunc = func() (any, error)

// Enum lets a type opt into object-form encoding when the enum feature is active.
// Capability interfaces replace reflective accessor discovery: the type
// declares exactly the properties it wants rendered.
type Enum interface {
	// EnumName returns the constant name, written as the "name" field.
	EnumName() string

	// EnumProperties returns the extra properties keyed by field name.
	// Keys "class" and "declaringClass" are never written.
	EnumProperties() map[string]PropertyFunc
}

// EnumSetter restores an enum value from the text read off the wire.
// Implement it on the pointer receiver.
type EnumSetter interface {
	SetEnumValue(text string) error
}

// Compile-time checks.
var (
	_ Marshaler = (*Codec)(nil)
	_ Marshaler = (*Builder)(nil)
)
