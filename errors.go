package jsonutil

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrParse indicates an adapter could not parse the text of a special type.
	// Adapters report it on SignalAdapterParseFailed; it never reaches the caller.
	ErrParse = errors.New("parse failed")

	// ErrAdapterInternal indicates an adapter could not complete at all.
	// Unlike ErrParse, it fails the enclosing Marshal/Unmarshal.
	ErrAdapterInternal = errors.New("adapter internal error")

	// ErrUnknownFeature indicates a configuration named a feature that does not exist.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrInvalidConfig indicates a configuration document could not be read.
	ErrInvalidConfig = errors.New("invalid config")
)

// ConfigError represents a configuration loading error.
type ConfigError struct {
	Err     error  // Underlying sentinel error (ErrUnknownFeature, ErrInvalidConfig)
	Feature string // Feature name that triggered the error
	Cause   error  // Original error from the decoder
}

func (e *ConfigError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Feature)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError describes text an adapter could not parse.
type ParseError struct {
	Type  string // Adapted type name (Date, LocalDate, ...)
	Input string // Offending text
	Cause error  // Original error from the parser
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Type, e.Input, e.Cause)
	}
	return fmt.Sprintf("parse %s %q", e.Type, e.Input)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// AdapterError represents an adapter failure that aborts the operation.
type AdapterError struct {
	Err   error  // Underlying sentinel error (ErrAdapterInternal)
	Type  string // Type the adapter was handling
	Cause error  // Original error or recovered panic
}

func (e *AdapterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s: %v", e.Err.Error(), e.Type, e.Cause)
	}
	return fmt.Sprintf("%s for %s", e.Err.Error(), e.Type)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

// Unwrap exposes both the sentinel and the cause, so errors.As can reach an
// *AdapterError raised inside the engine.
func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// newConfigError creates a ConfigError.
func newConfigError(sentinel error, feature string, cause error) error {
	return &ConfigError{
		Err:     sentinel,
		Feature: feature,
		Cause:   cause,
	}
}

// newParseError creates a ParseError for a rejected adapter input.
func newParseError(typ, input string, cause error) *ParseError {
	return &ParseError{
		Type:  typ,
		Input: input,
		Cause: cause,
	}
}

// newAdapterError creates an AdapterError.
func newAdapterError(typ string, cause error) *AdapterError {
	return &AdapterError{
		Err:   ErrAdapterInternal,
		Type:  typ,
		Cause: cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
