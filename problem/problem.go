// Package problem builds RFC 9457 problem details for request failures:
// validation errors become 422 problems listing the rejected fields, and
// RestClientError becomes a 500 problem.
//
//	if err := v.Struct(req); err != nil {
//	    p := problem.From(err)
//	    body, _ := codec.Marshal(p)
//	}
//
// A Detail is a data shape only; writing it to a response is left to the
// caller.
package problem

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cast"

	"github.com/sulimann/jsonutil"
	"github.com/sulimann/jsonutil/validators"
)

// ContentType is the media type of an encoded Detail.
const ContentType = "application/problem+json"

// DefaultType is the problem type when none is given.
const DefaultType = "about:blank"

// Titles and property names of the problems built by this package.
const (
	ValidationTitle       = "Requisição inválida"
	InvalidParamsProperty = "Invalid Params"
	InternalTitle         = "RestClient Internal Server Error"
)

// Detail is an RFC 9457 problem detail. Properties are written inline next
// to the standard members; a property named like a standard member is
// ignored.
type Detail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Properties map[string]any
}

var reserved = map[string]bool{
	"type":     true,
	"title":    true,
	"status":   true,
	"detail":   true,
	"instance": true,
}

// ForStatus returns a problem for status titled with its reason phrase.
func ForStatus(status int) Detail {
	return Detail{
		Type:   DefaultType,
		Title:  http.StatusText(status),
		Status: status,
	}
}

// SetProperty adds an extension member.
func (d *Detail) SetProperty(name string, value any) {
	if d.Properties == nil {
		d.Properties = make(map[string]any)
	}
	d.Properties[name] = value
}

// Members returns the JSON object of d: standard members plus properties.
// Empty detail and instance are left out.
func (d Detail) Members() map[string]any {
	m := make(map[string]any, len(d.Properties)+5)
	for k, v := range d.Properties {
		if !reserved[k] {
			m[k] = v
		}
	}
	typ := d.Type
	if typ == "" {
		typ = DefaultType
	}
	m["type"] = typ
	m["title"] = d.Title
	m["status"] = d.Status
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}
	return m
}

// MarshalJSON writes d with its properties inline, keys sorted.
func (d Detail) MarshalJSON() ([]byte, error) {
	return jsonutil.Use(jsonutil.DefaultConfig()).Marshal(d.Members())
}

// UnmarshalJSON reads the standard members; every other member becomes a
// property.
func (d *Detail) UnmarshalJSON(data []byte) error {
	m, err := jsonutil.Use(jsonutil.DefaultConfig()).DecodeToMap(string(data))
	if err != nil {
		return err
	}

	var out Detail
	for k, v := range m {
		switch k {
		case "type":
			out.Type, err = cast.ToStringE(v)
		case "title":
			out.Title, err = cast.ToStringE(v)
		case "status":
			out.Status, err = cast.ToIntE(v)
		case "detail":
			out.Detail, err = cast.ToStringE(v)
		case "instance":
			out.Instance, err = cast.ToStringE(v)
		default:
			out.SetProperty(k, v)
		}
		if err != nil {
			return fmt.Errorf("problem member %q: %w", k, err)
		}
	}
	*d = out
	return nil
}

// Validation returns the 422 problem listing fields.
func Validation(fields []validators.FieldError) Detail {
	d := ForStatus(http.StatusUnprocessableEntity)
	d.Title = ValidationTitle
	if fields == nil {
		fields = []validators.FieldError{}
	}
	d.SetProperty(InvalidParamsProperty, fields)
	return d
}

// FromValidation returns the 422 problem for a validator error.
// It reports false when err carries no field errors.
func FromValidation(err error) (Detail, bool) {
	fields := validators.FieldErrors(err)
	if fields == nil {
		return Detail{}, false
	}
	return Validation(fields), true
}

// Internal returns the 500 problem of a RestClientError.
func Internal() Detail {
	d := ForStatus(http.StatusInternalServerError)
	d.Title = InternalTitle
	return d
}

// RestClientError is an unexpected failure of the client itself.
type RestClientError struct {
	Cause error
}

func (e *RestClientError) Error() string {
	if e.Cause != nil {
		return "rest client: " + e.Cause.Error()
	}
	return "rest client error"
}

func (e *RestClientError) Unwrap() error {
	return e.Cause
}

// Problem returns the 500 problem for e.
func (e *RestClientError) Problem() Detail {
	return Internal()
}

// From maps err to a problem: validator errors give the 422 problem,
// a RestClientError the 500 internal problem, and anything else a bare
// 500.
func From(err error) Detail {
	if d, ok := FromValidation(err); ok {
		return d
	}
	var rc *RestClientError
	if errors.As(err, &rc) {
		return rc.Problem()
	}
	return ForStatus(http.StatusInternalServerError)
}
