// errors.go defines the error types reported during markup processing.
package markup

import "fmt"

// LocatedError is implemented by every error that originates from a
// position in the source text. Callers can recover the position for
// diagnostics with errors.As.
type LocatedError interface {
	error
	Location() Location
}

// TokenizationError reports source text that no tokenizer rule matches.
// The tokenizer cannot recover from it.
type TokenizationError struct {
	Message string
	Loc     Location
}

// NewTokenizationError creates a TokenizationError at loc.
func NewTokenizationError(loc Location, format string, args ...any) *TokenizationError {
	return &TokenizationError{Message: fmt.Sprintf(format, args...), Loc: loc}
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Loc)
}

// Location returns the position of the unrecognized input.
func (e *TokenizationError) Location() Location { return e.Loc }

// StructuralError reports a violated grammar invariant: unterminated
// emphasis, heading or macro, a mismatched closing tag, illegal list
// nesting, a definition without a term. Where a construct is left open,
// the message names its start position.
type StructuralError struct {
	Message string
	Loc     Location
}

// NewStructuralError creates a StructuralError at loc.
func NewStructuralError(loc Location, format string, args ...any) *StructuralError {
	return &StructuralError{Message: fmt.Sprintf(format, args...), Loc: loc}
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Loc)
}

// Location returns the position most useful for diagnosis, usually the
// start of the offending or unterminated construct.
func (e *StructuralError) Location() Location { return e.Loc }

// UnknownMacroError reports a macro name that is not registered.
type UnknownMacroError struct {
	Name string
	Loc  Location
}

func (e *UnknownMacroError) Error() string {
	return fmt.Sprintf("unknown macro %q (%s)", e.Name, e.Loc)
}

// Location returns the position of the macro invocation.
func (e *UnknownMacroError) Location() Location { return e.Loc }

// UnsuitableMacroError reports a macro invoked in a placement or with an
// invocation syntax it does not support.
type UnsuitableMacroError struct {
	Name    string
	Message string
	Loc     Location
}

// NewUnsuitableMacroError creates an UnsuitableMacroError for the named
// macro at loc.
func NewUnsuitableMacroError(loc Location, name, format string, args ...any) *UnsuitableMacroError {
	return &UnsuitableMacroError{Name: name, Message: fmt.Sprintf(format, args...), Loc: loc}
}

func (e *UnsuitableMacroError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Loc)
}

// Location returns the position of the macro invocation.
func (e *UnsuitableMacroError) Location() Location { return e.Loc }

// InternalError reports a violated processing invariant. It indicates a
// defect in the implementation, never malformed input, and diagnostic
// printers should present it as a bug.
type InternalError struct {
	Message string
	Loc     Location
}

// NewInternalError creates an InternalError at loc.
func NewInternalError(loc Location, format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...), Loc: loc}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s (%s)", e.Message, e.Loc)
}

// Location returns the position being processed when the invariant broke.
func (e *InternalError) Location() Location { return e.Loc }
