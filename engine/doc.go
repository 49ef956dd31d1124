// Package engine defines the backend abstraction every native spell checker
// is adapted to.
//
// A Backend opens Sessions. A Session owns one engine resource (a Hunspell
// handle, a COM ISpellChecker, an AppKit document tag) and produces Cursors
// over the misspellings of a text.
//
// # Cursor Shapes
//
// Native engines report misspellings in one of three shapes, each with its
// own cursor constructor:
//
//	NewRangeCursor  - engine scans from an offset and returns the next range
//	NewEnumCursor   - engine hands back an enumerator of (start, length) spans
//	NewTokenCursor  - engine answers "is this word known" for a single token
//
// Range and span positions are UTF-16 code units. Cursors translate them back
// into byte offsets of the Go string that was checked.
//
// # Shared Engines
//
// Some engines expose one process-wide, non-reentrant instance. Shared wraps
// such an instance: it is constructed on first use and every call runs under
// its lock.
//
// # Registry
//
// Backend packages register themselves from init on the platforms they
// support:
//
//	func init() {
//	    engine.Register(Backend{})
//	}
//
// Callers select one with Lookup and list the compiled-in set with Names.
package engine
