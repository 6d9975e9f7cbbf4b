package jsonutil

import (
	"context"
	"sync"
)

// BuildType selects when a Builder setter recompiles.
type BuildType int

const (
	// Eager recompiles immediately after the change.
	Eager BuildType = iota

	// Lazy records the change; it takes effect on the next Build.
	Lazy
)

// String returns "eager" or "lazy".
func (bt BuildType) String() string {
	switch bt {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	}
	return "unknown"
}

// newMu serializes Builder construction.
var newMu sync.Mutex

// Builder is a codec session: a pending Config plus the Codec last compiled
// from it.
//
// Encode and decode calls always use the last compiled Codec, even when Lazy
// changes are pending. A Builder is not safe for concurrent mutation;
// callers sharing one across goroutines must synchronize setters and Build
// themselves. The Codec it hands out is immutable and may be shared freely.
type Builder struct {
	cfg   Config
	codec *Codec
}

// New returns a session with every feature disabled, already compiled.
func New() *Builder {
	newMu.Lock()
	defer newMu.Unlock()

	b := &Builder{codec: Compile(DefaultConfig())}
	emitBuilderCreated(context.Background())
	return b
}

// Build compiles the pending configuration.
func (b *Builder) Build() *Builder {
	b.codec = Compile(b.cfg)
	return b
}

// Codec returns the last compiled codec.
func (b *Builder) Codec() *Codec {
	return b.codec
}

// Config returns the pending configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Stale reports whether Lazy changes are waiting for Build.
func (b *Builder) Stale() bool {
	return b.cfg != b.codec.Config()
}

// Set enables or disables f.
func (b *Builder) Set(f Feature, enabled bool, bt ...BuildType) *Builder {
	if enabled {
		b.cfg = b.cfg.With(f)
	} else {
		b.cfg = b.cfg.Without(f)
	}
	if buildTypeOf(bt) == Eager {
		return b.Build()
	}
	return b
}

func buildTypeOf(bt []BuildType) BuildType {
	if len(bt) == 0 {
		return Eager
	}
	return bt[0]
}

// Feature setters. Each changes one flag and, unless bt is Lazy, recompiles.

// WithExpose enables the expose feature.
func (b *Builder) WithExpose(bt ...BuildType) *Builder { return b.Set(FeatureExpose, true, bt...) }

// NoExpose disables the expose feature.
func (b *Builder) NoExpose(bt ...BuildType) *Builder { return b.Set(FeatureExpose, false, bt...) }

// WithDate enables the date feature.
func (b *Builder) WithDate(bt ...BuildType) *Builder { return b.Set(FeatureDate, true, bt...) }

// NoDate disables the date feature.
func (b *Builder) NoDate(bt ...BuildType) *Builder { return b.Set(FeatureDate, false, bt...) }

// WithLocalDate enables the local_date feature.
func (b *Builder) WithLocalDate(bt ...BuildType) *Builder {
	return b.Set(FeatureLocalDate, true, bt...)
}

// NoLocalDate disables the local_date feature.
func (b *Builder) NoLocalDate(bt ...BuildType) *Builder {
	return b.Set(FeatureLocalDate, false, bt...)
}

// WithLocalDateTime enables the local_date_time feature.
func (b *Builder) WithLocalDateTime(bt ...BuildType) *Builder {
	return b.Set(FeatureLocalDateTime, true, bt...)
}

// NoLocalDateTime disables the local_date_time feature.
func (b *Builder) NoLocalDateTime(bt ...BuildType) *Builder {
	return b.Set(FeatureLocalDateTime, false, bt...)
}

// WithXMLCalendar enables the xml_calendar feature.
func (b *Builder) WithXMLCalendar(bt ...BuildType) *Builder {
	return b.Set(FeatureXMLCalendar, true, bt...)
}

// NoXMLCalendar disables the xml_calendar feature.
func (b *Builder) NoXMLCalendar(bt ...BuildType) *Builder {
	return b.Set(FeatureXMLCalendar, false, bt...)
}

// WithByteArray enables the byte_array feature.
func (b *Builder) WithByteArray(bt ...BuildType) *Builder {
	return b.Set(FeatureByteArray, true, bt...)
}

// NoByteArray disables the byte_array feature.
func (b *Builder) NoByteArray(bt ...BuildType) *Builder {
	return b.Set(FeatureByteArray, false, bt...)
}

// WithEnum enables the enum feature.
func (b *Builder) WithEnum(bt ...BuildType) *Builder { return b.Set(FeatureEnum, true, bt...) }

// NoEnum disables the enum feature.
func (b *Builder) NoEnum(bt ...BuildType) *Builder { return b.Set(FeatureEnum, false, bt...) }

// ContentType returns the MIME type for JSON.
func (b *Builder) ContentType() string {
	return ContentType
}

// Marshal encodes v with the last compiled codec.
func (b *Builder) Marshal(v any) ([]byte, error) {
	return b.codec.Marshal(v)
}

// Unmarshal decodes data into v with the last compiled codec.
func (b *Builder) Unmarshal(data []byte, v any) error {
	return b.codec.Unmarshal(data, v)
}

// Encode returns the JSON text of v using the last compiled codec.
func (b *Builder) Encode(v any) (string, error) {
	return b.codec.Encode(v)
}

// Decode decodes text into v using the last compiled codec.
func (b *Builder) Decode(text string, v any) error {
	return b.codec.Decode(text, v)
}

// DecodeToMap decodes a JSON object using the last compiled codec.
func (b *Builder) DecodeToMap(text string) (map[string]any, error) {
	return b.codec.DecodeToMap(text)
}
