package jsonutil

import (
	"context"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// adapter is one row of a codec's adapter table: the wire form of a single
// Go type.
type adapter struct {
	name    string
	typ     reflect.Type
	encoder jsoniter.ValEncoder
	decoder jsoniter.ValDecoder

	// ptrEncoder and ptrDecoder handle *typ. Without ptrEncoder the engine
	// would fall back to a promoted MarshalJSON; ptrDecoder leaves the
	// pointer nil on unparseable input.
	ptrEncoder jsoniter.ValEncoder
	ptrDecoder jsoniter.ValDecoder
}

// valueCodec encodes and decodes a T held at an unsafe.Pointer.
// decode reports ok=false for null and for input it could not use; the
// target is then reset to the zero value.
type valueCodec[T any] struct {
	encode func(v T, stream *jsoniter.Stream)
	decode func(iter *jsoniter.Iterator) (T, bool)
	empty  func(v T) bool
}

func (c *valueCodec[T]) IsEmpty(ptr unsafe.Pointer) bool {
	return c.empty(*(*T)(ptr))
}

func (c *valueCodec[T]) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	c.encode(*(*T)(ptr), stream)
}

func (c *valueCodec[T]) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	v, ok := c.decode(iter)
	if !ok {
		var zero T
		*(*T)(ptr) = zero
		return
	}
	*(*T)(ptr) = v
}

// pointerEncoder writes a *T field through the adapter of T; nil is null.
type pointerEncoder[T any] struct {
	elem *valueCodec[T]
}

func (e *pointerEncoder[T]) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**T)(ptr) == nil
}

func (e *pointerEncoder[T]) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v := *(**T)(ptr)
	if v == nil {
		stream.WriteNil()
		return
	}
	e.elem.encode(*v, stream)
}

// pointerDecoder decodes into a *T field, leaving it nil unless a value was read.
type pointerDecoder[T any] struct {
	decode func(iter *jsoniter.Iterator) (T, bool)
}

func (d *pointerDecoder[T]) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	v, ok := d.decode(iter)
	if !ok {
		*(**T)(ptr) = nil
		return
	}
	*(**T)(ptr) = &v
}

func newAdapter[T any](name string, vc *valueCodec[T]) *adapter {
	return &adapter{
		name:       name,
		typ:        reflect.TypeFor[T](),
		encoder:    vc,
		decoder:    vc,
		ptrEncoder: &pointerEncoder[T]{elem: vc},
		ptrDecoder: &pointerDecoder[T]{decode: vc.decode},
	}
}

// textAdapter adapts a type whose wire form is a single JSON string.
func textAdapter[T any](name string, format func(T) string, parse func(string) (T, error), empty func(T) bool) *adapter {
	return newAdapter(name, &valueCodec[T]{
		encode: func(v T, stream *jsoniter.Stream) {
			stream.WriteString(format(v))
		},
		decode: func(iter *jsoniter.Iterator) (T, bool) {
			text, ok := readString(iter)
			if !ok {
				var zero T
				return zero, false
			}
			return parseLogged(name, text, parse)
		},
		empty: empty,
	})
}

// readString reads a JSON string. Any other value is consumed and reported
// with ok=false.
func readString(iter *jsoniter.Iterator) (string, bool) {
	if iter.WhatIsNext() == jsoniter.StringValue {
		return iter.ReadString(), true
	}
	iter.Skip()
	return "", false
}

// parseLogged runs parse, reporting a failure on SignalAdapterParseFailed
// instead of returning it.
func parseLogged[T any](name, text string, parse func(string) (T, error)) (T, bool) {
	v, err := parse(text)
	if err != nil {
		emitParseFailed(context.Background(), newParseError(name, text, err))
		var zero T
		return zero, false
	}
	return v, true
}

func dateAdapter() *adapter {
	return textAdapter("Date",
		Date.String,
		ParseDate,
		func(d Date) bool { return d.IsZero() },
	)
}

func localDateAdapter() *adapter {
	const name = "LocalDate"
	return newAdapter(name, &valueCodec[LocalDate]{
		encode: func(d LocalDate, stream *jsoniter.Stream) {
			stream.WriteString(d.String())
		},
		decode: func(iter *jsoniter.Iterator) (LocalDate, bool) {
			switch iter.WhatIsNext() {
			case jsoniter.StringValue:
				return parseLogged(name, iter.ReadString(), ParseLocalDate)
			case jsoniter.ObjectValue:
				fields, _ := iter.Read().(map[string]any)
				return parseLogged(name, fmt.Sprint(fields), func(string) (LocalDate, error) {
					return localDateFromFields(fields)
				})
			default:
				iter.Skip()
				return LocalDate{}, false
			}
		},
		empty: LocalDate.IsZero,
	})
}

// localDateFromFields rebuilds a LocalDate from the legacy object form
// {"year": ..., "monthValue": ..., "dayOfMonth": ...}.
func localDateFromFields(fields map[string]any) (LocalDate, error) {
	year, err := cast.ToStringE(fields["year"])
	if err != nil {
		return LocalDate{}, fmt.Errorf("year: %w", err)
	}
	month, err := fieldInt(fields, "monthValue")
	if err != nil {
		return LocalDate{}, err
	}
	day, err := fieldInt(fields, "dayOfMonth")
	if err != nil {
		return LocalDate{}, err
	}
	return ParseLocalDate(fmt.Sprintf("%s-%02d-%02d", year, month, day))
}

func fieldInt(fields map[string]any, key string) (int, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s: missing", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func localDateTimeAdapter() *adapter {
	return textAdapter("LocalDateTime",
		func(d LocalDateTime) string { return d.Format(LocalDateTimeLayout) },
		ParseLocalDateTime,
		func(d LocalDateTime) bool { return d.IsZero() },
	)
}

func offsetDateTimeAdapter() *adapter {
	return textAdapter("OffsetDateTime",
		func(d OffsetDateTime) string { return d.Format(OffsetDateTimeLayout) },
		ParseOffsetDateTime,
		func(d OffsetDateTime) bool { return d.IsZero() },
	)
}

func xmlCalendarAdapter() *adapter {
	const name = "XMLCalendar"
	return newAdapter(name, &valueCodec[XMLCalendar]{
		encode: func(c XMLCalendar, stream *jsoniter.Stream) {
			if c.IsZero() {
				stream.WriteNil()
				return
			}
			stream.WriteString(c.String())
		},
		decode: func(iter *jsoniter.Iterator) (XMLCalendar, bool) {
			text, ok := readString(iter)
			if !ok {
				return XMLCalendar{}, false
			}
			return parseLogged(name, text, ParseXMLCalendar)
		},
		empty: XMLCalendar.IsZero,
	})
}

// byteArrayAdapter writes []byte as MIME Base64. Malformed input is not
// recoverable and fails the decode.
func byteArrayAdapter() *adapter {
	vc := &valueCodec[[]byte]{
		encode: func(b []byte, stream *jsoniter.Stream) {
			if b == nil {
				stream.WriteNil()
				return
			}
			stream.WriteString(EncodeMIMEBase64(b))
		},
		decode: func(iter *jsoniter.Iterator) ([]byte, bool) {
			switch iter.WhatIsNext() {
			case jsoniter.NilValue:
				iter.Skip()
				return nil, false
			case jsoniter.StringValue:
				b, err := DecodeMIMEBase64(iter.ReadString())
				if err != nil {
					iter.ReportError("decode []byte", err.Error())
					return nil, false
				}
				return b, true
			default:
				iter.Skip()
				iter.ReportError("decode []byte", "expected base64 string")
				return nil, false
			}
		},
		empty: func(b []byte) bool { return len(b) == 0 },
	}
	return &adapter{
		name:    "[]byte",
		typ:     reflect.TypeFor[[]byte](),
		encoder: vc,
		decoder: vc,
	}
}

const (
	mimeLineLength = 76
	mimeLineSep    = "\r\n"
)

// EncodeMIMEBase64 encodes b with the standard alphabet and padding, broken
// into lines of 76 characters separated by CRLF.
func EncodeMIMEBase64(b []byte) string {
	flat := base64.StdEncoding.EncodeToString(b)
	if len(flat) <= mimeLineLength {
		return flat
	}
	var sb strings.Builder
	sb.Grow(len(flat) + len(flat)/mimeLineLength*len(mimeLineSep))
	for len(flat) > mimeLineLength {
		sb.WriteString(flat[:mimeLineLength])
		sb.WriteString(mimeLineSep)
		flat = flat[mimeLineLength:]
	}
	sb.WriteString(flat)
	return sb.String()
}

// DecodeMIMEBase64 decodes MIME Base64: characters outside the alphabet,
// line breaks included, are ignored and trailing padding is optional.
func DecodeMIMEBase64(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '+', r == '/', r == '=':
			return r
		}
		return -1
	}, s)
	if strings.Contains(clean, "=") && len(clean)%4 == 0 {
		return base64.StdEncoding.DecodeString(clean)
	}
	return base64.RawStdEncoding.DecodeString(clean)
}

// adapterTable returns the adapters active for cfg, in registration order.
// OffsetDateTime is always present.
func adapterTable(cfg Config) []*adapter {
	var table []*adapter
	if cfg.date {
		table = append(table, dateAdapter())
	}
	if cfg.localDate {
		table = append(table, localDateAdapter())
	}
	if cfg.localDateTime {
		table = append(table, localDateTimeAdapter())
	}
	if cfg.xmlCalendar {
		table = append(table, xmlCalendarAdapter())
	}
	if cfg.byteArray {
		table = append(table, byteArrayAdapter())
	}
	table = append(table, offsetDateTimeAdapter())
	return table
}
