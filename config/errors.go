// FILE: pymodule/config/errors.go
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is checks. Every typed error below matches one of them.
var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrParse          = errors.New("configuration file parse failed")
	ErrCoercion       = errors.New("configuration value coercion failed")
	ErrValidation     = errors.New("configuration validation failed")
)

// NotFoundError reports an explicitly requested configuration file that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file '%s' not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrConfigNotFound }
func (e *NotFoundError) Unwrap() error        { return e.Err }

// ParseError reports a malformed configuration document.
// Line is set when the parser reports a position, zero otherwise.
type ParseError struct {
	Path   string
	Format string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s config file '%s' (line %d): %v", strings.ToUpper(e.Format), e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse %s config file '%s': %v", strings.ToUpper(e.Format), e.Path, e.Err)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
func (e *ParseError) Unwrap() error        { return e.Err }

// CoercionError reports an environment or command-line string that cannot be
// converted to the declared kind of its key.
type CoercionError struct {
	Key    string
	Source SourceDescriptor
	Input  string
	Want   Kind
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert %s value %q for key %s to %s: %v", e.Source, e.Input, e.Key, e.Want, e.Err)
}

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }
func (e *CoercionError) Unwrap() error        { return e.Err }

// Violation is a single schema failure reported inside ConfigValidationError.
type Violation interface {
	error
	KeyPath() string
}

// UnknownKeyError reports a key that the schema does not declare.
type UnknownKeyError struct {
	Path string
}

func (e *UnknownKeyError) Error() string   { return fmt.Sprintf("unknown configuration key %q", e.Path) }
func (e *UnknownKeyError) KeyPath() string { return e.Path }

// TypeMismatchError reports a value whose kind differs from the declared one.
// Expected is KindMap when the schema declares nested keys under Path.
type TypeMismatchError struct {
	Path     string
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("key %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}
func (e *TypeMismatchError) KeyPath() string { return e.Path }

// RangeError reports a value outside its declared range or allowed set.
type RangeError struct {
	Path    string
	Value   Value
	Range   *Range
	Allowed []Value
}

func (e *RangeError) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("key %q: value %s outside range [%d, %d]", e.Path, e.Value, e.Range.Min, e.Range.Max)
	}
	allowed := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		allowed[i] = a.String()
	}
	return fmt.Sprintf("key %q: value %s not one of [%s]", e.Path, e.Value, strings.Join(allowed, ", "))
}
func (e *RangeError) KeyPath() string { return e.Path }

// ConfigValidationError aggregates every violation found in one validation pass.
type ConfigValidationError struct {
	Violations []Violation
}

func newValidationError(violations []Violation) *ConfigValidationError {
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].KeyPath() < violations[j].KeyPath()
	})
	return &ConfigValidationError{Violations: violations}
}

func (e *ConfigValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%v: %d violation(s): %s", ErrValidation, len(e.Violations), strings.Join(msgs, "; "))
}

func (e *ConfigValidationError) Is(target error) bool { return target == ErrValidation }

// Unwrap exposes the individual violations to errors.As.
func (e *ConfigValidationError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// Paths lists the key paths of all violations.
func (e *ConfigValidationError) Paths() []string {
	paths := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		paths[i] = v.KeyPath()
	}
	return paths
}
