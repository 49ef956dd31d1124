// Package spellbound checks spelling with the platform's native spell
// checker.
//
// The engine behind a Checker is picked per platform: AppKit's
// NSSpellChecker on macOS, the Windows Spell Checking API on Windows and
// Hunspell elsewhere. A pure Go word list backend is available everywhere.
//
//	spellbound/          Checker, Cursor and options
//	├── engine/          Backend and Session abstraction, cursors, registry
//	│   ├── appkit/      NSSpellChecker through the Objective-C runtime
//	│   ├── winspell/    ISpellChecker through COM
//	│   ├── hunspell/    libhunspell loaded at run time
//	│   └── wordlist/    stem list of a Hunspell .dic file
//	├── enginetest/      conformance suite for backends
//	├── dict/            dictionary lookup and .dic parsing
//	├── transcoder/      UTF-16 and dictionary charset conversion
//	├── resource/        exclusive ownership and live-session tracking
//	├── errors/          structured errors
//	├── config/          layered configuration for the command
//	└── cmd/spellbound/  command line checker
//
// # Quick Start
//
//	checker, err := spellbound.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer checker.Close()
//
//	for e := range checker.Check("I'm happy that this sentense has no errors.").All() {
//	    fmt.Println(e.Text())
//	}
//
// # Sessions
//
// A Checker is a session: it owns its engine resource until Close. Words
// passed to Ignore are accepted by later checks on the same Checker. Whether
// other Checkers see them depends on the backend, see Checker.IgnoreScope.
//
// Check is lazy. The engine is asked for the next misspelling only when the
// cursor advances, and a cursor fails once its Checker is closed.
package spellbound
