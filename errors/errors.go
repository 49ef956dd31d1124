package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSetup  Phase = "setup"  // session construction
	PhaseCheck  Phase = "check"  // spell checking a text
	PhaseIgnore Phase = "ignore" // ignore list mutation
	PhaseEncode Phase = "encode" // Go to native string
	PhaseDecode Phase = "decode" // native string to Go
	PhaseClose  Phase = "close"  // resource release
)

// Kind categorizes the error
type Kind string

const (
	KindSubsystemInit      Kind = "subsystem_init"
	KindDictionaryNotFound Kind = "dictionary_not_found"
	KindInstantiation      Kind = "instantiation"
	KindEngineCall         Kind = "engine_call"
	KindInvalidUTF8        Kind = "invalid_utf8"
	KindInvalidUTF16       Kind = "invalid_utf16"
	KindInvalidInput       Kind = "invalid_input"
	KindClosed             Kind = "closed"
	KindUnknownBackend     Kind = "unknown_backend"
	KindUnsupported        Kind = "unsupported"
)

// Error is the structured error type used throughout spellbound
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Backend string
	Word    string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Backend != "" {
		b.WriteString(" (")
		b.WriteString(e.Backend)
		b.WriteByte(')')
	}

	if e.Word != "" {
		b.WriteString(" word ")
		b.WriteString(fmt.Sprintf("%q", e.Word))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Backend sets the backend name
func (b *Builder) Backend(name string) *Builder {
	b.err.Backend = name
	return b
}

// Word sets the word being processed
func (b *Builder) Word(w string) *Builder {
	b.err.Word = w
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Setup package convenience constructors

// SubsystemInit creates an error for a platform subsystem that could not be initialised
func SubsystemInit(backend, what string, cause error) *Error {
	return &Error{
		Phase:   PhaseSetup,
		Kind:    KindSubsystemInit,
		Backend: backend,
		Detail:  fmt.Sprintf("initialize %s", what),
		Cause:   cause,
	}
}

// DictionaryNotFound creates an error for a missing affix/dictionary pair
func DictionaryNotFound(backend, dir, lang string) *Error {
	return &Error{
		Phase:   PhaseSetup,
		Kind:    KindDictionaryNotFound,
		Backend: backend,
		Detail:  fmt.Sprintf("no %s.aff/%s.dic pair in %s", lang, lang, dir),
		Value:   dir,
	}
}

// Instantiation creates an engine instantiation error
func Instantiation(backend, detail string, cause error) *Error {
	return &Error{
		Phase:   PhaseSetup,
		Kind:    KindInstantiation,
		Backend: backend,
		Detail:  detail,
		Cause:   cause,
	}
}

// UnknownBackend creates an error for a backend name that is not compiled in
func UnknownBackend(name string, known []string) *Error {
	return &Error{
		Phase:   PhaseSetup,
		Kind:    KindUnknownBackend,
		Backend: name,
		Detail:  fmt.Sprintf("available backends: %s", strings.Join(known, ", ")),
	}
}

// Runtime convenience constructors

// EngineCall wraps a failed call into the native engine
func EngineCall(phase Phase, backend, call string, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindEngineCall,
		Backend: backend,
		Detail:  call,
		Cause:   cause,
	}
}

// Closed creates an error for use of a released session or cursor
func Closed(phase Phase, backend string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindClosed,
		Backend: backend,
		Detail:  "session closed",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, word, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Word:   word,
		Detail: detail,
	}
}

// InvalidUTF16 creates an error for a malformed UTF-16 sequence returned by an engine
func InvalidUTF16(units []uint16, index int) *Error {
	preview := units
	if len(preview) > 16 {
		preview = preview[:16]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF16,
		Detail: fmt.Sprintf("unpaired surrogate at unit %d: %04x", index, preview),
		Value:  index,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// OutOfBounds creates an error for an engine-reported range outside the checked text
func OutOfBounds(backend string, start, length, limit int) *Error {
	return &Error{
		Phase:   PhaseCheck,
		Kind:    KindEngineCall,
		Backend: backend,
		Detail:  fmt.Sprintf("range [%d,+%d) outside text of %d units", start, length, limit),
		Value:   start,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
