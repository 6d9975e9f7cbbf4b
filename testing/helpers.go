// Package testing provides fixtures for jsonutil tests.
//
// The enum fixtures satisfy jsonutil.Enum and jsonutil.EnumSetter
// structurally, so this package does not import jsonutil and can be used from
// its internal tests.
package testing

import (
	"errors"
	"fmt"
)

// Status is an enum with one custom property, "code".
// It also declares "class" and "declaringClass" properties, which the enum
// encoder must never write.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusSuspended
)

var statusNames = [...]string{"UNKNOWN", "ACTIVE", "SUSPENDED"}
var statusCodes = [...]string{"X0", "X1", "X2"}

// ParseStatus returns the Status named text.
func ParseStatus(text string) (Status, error) {
	for i, name := range statusNames {
		if name == text {
			return Status(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", text)
}

// EnumName implements jsonutil.Enum.
func (s Status) EnumName() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Code returns the custom property.
func (s Status) Code() string {
	if int(s) < 0 || int(s) >= len(statusCodes) {
		return ""
	}
	return statusCodes[s]
}

// EnumProperties implements jsonutil.Enum.
func (s Status) EnumProperties() map[string]func() (any, error) {
	return map[string]func() (any, error){
		"code":           func() (any, error) { return s.Code(), nil },
		"class":          func() (any, error) { return "Status", nil },
		"declaringClass": func() (any, error) { return "Status", nil },
	}
}

// SetEnumValue implements jsonutil.EnumSetter.
func (s *Status) SetEnumValue(text string) error {
	v, err := ParseStatus(text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ErrOwnerUnavailable is returned by Priority's "owner" property.
var ErrOwnerUnavailable = errors.New("owner unavailable")

// Priority is an enum whose properties cover every value rendering path:
// numbers, booleans, nil, Stringers, a failing property and a panicking one.
type Priority string

const (
	PriorityLow  Priority = "LOW"
	PriorityHigh Priority = "HIGH"
)

// EnumName implements jsonutil.Enum.
func (p Priority) EnumName() string { return string(p) }

// EnumProperties implements jsonutil.Enum.
func (p Priority) EnumProperties() map[string]func() (any, error) {
	return map[string]func() (any, error){
		"level":    func() (any, error) { return p.level(), nil },
		"urgent":   func() (any, error) { return p == PriorityHigh, nil },
		"weight":   func() (any, error) { return 1.5, nil },
		"parent":   func() (any, error) { return nil, nil },
		"status":   func() (any, error) { return statusLabel{StatusActive}, nil },
		"owner":    func() (any, error) { return nil, ErrOwnerUnavailable },
		"escalate": func() (any, error) { panic("escalation service missing") },
	}
}

func (p Priority) level() int {
	if p == PriorityHigh {
		return 10
	}
	return 1
}

// statusLabel renders through fmt.Stringer.
type statusLabel struct{ s Status }

func (l statusLabel) String() string { return l.s.EnumName() }

// Broken is an enum whose capability itself panics.
type Broken string

// EnumName implements jsonutil.Enum.
func (b Broken) EnumName() string { return string(b) }

// EnumProperties implements jsonutil.Enum.
func (b Broken) EnumProperties() map[string]func() (any, error) {
	panic("properties not initialised")
}

// Unsettable is an enum that cannot be decoded: it has no EnumSetter.
type Unsettable string

// EnumName implements jsonutil.Enum.
func (u Unsettable) EnumName() string { return string(u) }

// EnumProperties implements jsonutil.Enum.
func (u Unsettable) EnumProperties() map[string]func() (any, error) { return nil }

// SampleBytes returns n deterministic bytes covering every byte value.
func SampleBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}
