package jsonutil

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/sentinel"
)

// ExposeTag is the struct tag consulted when the expose feature is active.
//
//	Name  string `json:"name" expose:""`            // both directions
//	Token string `json:"token" expose:"deserialize"` // read only
//	Debug string `json:"debug"`                      // never
//
// Accepted values: "" or "true" (both), "serialize", "deserialize",
// "-" or "false" (neither).
const ExposeTag = "expose"

func init() {
	sentinel.Tag(ExposeTag)
}

// exposure is the direction a field participates in.
type exposure struct {
	serialize   bool
	deserialize bool
}

func parseExposure(value string, present bool) exposure {
	if !present {
		return exposure{}
	}
	switch value {
	case "", "true":
		return exposure{serialize: true, deserialize: true}
	case "serialize":
		return exposure{serialize: true}
	case "deserialize":
		return exposure{deserialize: true}
	}
	return exposure{}
}

// fieldExposure reads the expose tag of one struct field.
func fieldExposure(tag reflect.StructTag) exposure {
	value, present := tag.Lookup(ExposeTag)
	return parseExposure(value, present)
}

// applyExposure drops the bindings of fields that are not exposed in a
// direction. Bindings with no names are skipped by the engine.
func applyExposure(sd *jsoniter.StructDescriptor) {
	for _, binding := range sd.Fields {
		e := fieldExposure(binding.Field.Tag())
		if !e.serialize {
			binding.ToNames = []string{}
		}
		if !e.deserialize {
			binding.FromNames = []string{}
		}
	}
}

// ExposedFields returns the names of T's fields that the expose feature
// serializes.
func ExposedFields[T any]() []string {
	spec := sentinel.Scan[T]()
	var names []string
	for _, field := range spec.Fields {
		value, present := field.Tags[ExposeTag]
		if parseExposure(value, present).serialize {
			names = append(names, field.Name)
		}
	}
	return names
}
