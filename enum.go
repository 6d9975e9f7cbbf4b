package jsonutil

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var enumType = reflect.TypeFor[Enum]()

// Property names never written by the enum encoder. "name" is already
// written from EnumName.
var reservedEnumProperties = map[string]bool{
	"name":           true,
	"class":          true,
	"declaringClass": true,
}

// enumValueField is the field the enum decoder reads. The encoder writes
// "name"; the two do not round-trip.
const enumValueField = "value"

// isEnumType reports whether t is a concrete type implementing Enum.
func isEnumType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	return t.Implements(enumType)
}

type enumProperty struct {
	key  string
	text string
}

// enumEncoder writes an Enum as {"name": ..., <properties>...}.
type enumEncoder struct {
	typ reflect.Type
}

func (e *enumEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return reflect.NewAt(e.typ, ptr).Elem().IsZero()
}

func (e *enumEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v, ok := reflect.NewAt(e.typ, ptr).Elem().Interface().(Enum)
	if !ok {
		stream.WriteNil()
		return
	}

	name, props, err := describeEnum(e.typ.String(), v)
	if err != nil {
		if stream.Error == nil {
			stream.Error = err
		}
		return
	}

	stream.WriteObjectStart()
	stream.WriteObjectField("name")
	stream.WriteString(name)
	for _, p := range props {
		stream.WriteMore()
		stream.WriteObjectField(p.key)
		stream.WriteString(p.text)
	}
	stream.WriteObjectEnd()
}

// describeEnum collects the name and rendered properties of v.
// A failing property is reported and omitted; a panic in the capability
// itself aborts with an *AdapterError.
func describeEnum(typeName string, v Enum) (name string, props []enumProperty, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newAdapterError(typeName, fmt.Errorf("enum capability panicked: %v", r))
		}
	}()

	name = v.EnumName()
	fns := v.EnumProperties()

	keys := make([]string, 0, len(fns))
	for k := range fns {
		if !reservedEnumProperties[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		val, perr := callProperty(fns[k])
		if perr != nil {
			emitPropertyFailed(context.Background(), typeName, k, perr)
			continue
		}
		props = append(props, enumProperty{key: k, text: propertyText(val)})
	}
	return name, props, nil
}

var errNilProperty = errors.New("nil property func")

func callProperty(fn PropertyFunc) (v any, err error) {
	if fn == nil {
		return nil, errNilProperty
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("property panicked: %v", r)
		}
	}()
	return fn()
}

// propertyText renders a property value; nil renders as "null".
func propertyText(v any) string {
	if v == nil {
		return "null"
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// enumDecoder restores an enum from the "value" field of an object through
// EnumSetter. Null or an object without "value" yields the zero value.
type enumDecoder struct {
	typ reflect.Type
}

func (d *enumDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch next := iter.WhatIsNext(); next {
	case jsoniter.NilValue:
		iter.Skip()
		d.reset(ptr)
		return
	case jsoniter.ObjectValue:
	default:
		iter.Skip()
		setIterError(iter, newAdapterError(d.typ.String(), fmt.Errorf("expected object, got %s", valueTypeName(next))))
		return
	}

	var (
		text    string
		found   bool
		readErr error
	)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if field != enumValueField {
			it.Skip()
			return true
		}
		text, readErr = readScalarText(it)
		found = readErr == nil
		return true
	})
	if readErr != nil {
		setIterError(iter, newAdapterError(d.typ.String(), readErr))
		return
	}
	if !found {
		d.reset(ptr)
		return
	}

	setter, ok := reflect.NewAt(d.typ, ptr).Interface().(EnumSetter)
	if !ok {
		setIterError(iter, newAdapterError(d.typ.String(), errors.New("type does not implement EnumSetter")))
		return
	}
	if err := setter.SetEnumValue(text); err != nil {
		setIterError(iter, newAdapterError(d.typ.String(), err))
	}
}

// reset clears the target: null or a missing "value" field decodes to the
// zero value.
func (d *enumDecoder) reset(ptr unsafe.Pointer) {
	reflect.NewAt(d.typ, ptr).Elem().SetZero()
}

// readScalarText reads a string, number or boolean as text.
func readScalarText(iter *jsoniter.Iterator) (string, error) {
	switch next := iter.WhatIsNext(); next {
	case jsoniter.StringValue:
		return iter.ReadString(), nil
	case jsoniter.NumberValue, jsoniter.BoolValue:
		return cast.ToStringE(iter.Read())
	default:
		iter.Skip()
		return "", fmt.Errorf("expected scalar %q, got %s", enumValueField, valueTypeName(next))
	}
}

func setIterError(iter *jsoniter.Iterator, err error) {
	if iter.Error == nil {
		iter.Error = err
	}
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	}
	return "invalid"
}
