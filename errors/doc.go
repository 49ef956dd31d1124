// Package errors provides structured error types for spellbound.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the backend name, the offending word, a detail message
// and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSetup, errors.KindDictionaryNotFound).
//		Backend("hunspell").
//		Detail("no en_US.aff/en_US.dic in %s", dir).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EngineCall(errors.PhaseCheck, "appkit", "checkSpellingOfString", cause)
//	err := errors.Closed(errors.PhaseIgnore, "hunspell")
//
// All errors implement the standard error interface and support errors.Is/As.
// An *Error matches another *Error when phase and kind are equal; IsKind matches
// on kind alone.
package errors
