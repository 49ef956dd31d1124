package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/dict"
)

// DefaultLanguage is the locale every backend opens when none is configured.
const DefaultLanguage = "en_US"

// Backend opens sessions against one native spell-checking engine.
type Backend interface {
	// Name is the registry key, e.g. "hunspell".
	Name() string

	// Open acquires a fresh engine resource. Failures are setup errors
	// (errors.PhaseSetup) and leave nothing to release.
	Open(ctx context.Context, cfg Config) (Session, error)
}

// Session is a live binding to engine resources.
//
// Implementations serialize calls on one session. Close releases the engine
// resource exactly once; after Close every method returns an
// errors.KindClosed error and cursors obtained earlier fail on their next pull.
type Session interface {
	// Check returns a lazy cursor over the misspellings in text. It never
	// mutates the ignore list. Empty text yields an empty cursor without
	// calling the engine.
	Check(text string) (Cursor, error)

	// Ignore adds word to the engine's ignore list, effective from the next
	// Check. An empty word is a no-op.
	Ignore(word string) error

	// IgnoreScope reports how far an Ignore reaches.
	IgnoreScope() IgnoreScope

	Close() error
}

// Config is passed to Backend.Open.
type Config struct {
	Logger   *zap.Logger
	Language string
	DictDir  string
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.DictDir == "" {
		c.DictDir = dict.DefaultDir
	}
	if c.Logger == nil {
		c.Logger = Logger()
	}
	return c
}

// IgnoreScope describes which sessions observe an Ignore.
type IgnoreScope uint8

const (
	// ScopeSession limits ignored words to the session that added them.
	ScopeSession IgnoreScope = iota
	// ScopeProcess shares ignored words with other sessions of the same
	// engine for the life of the process.
	ScopeProcess
)

func (s IgnoreScope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopeProcess:
		return "process"
	}
	return "unknown"
}

// Misspelling is one word the engine did not recognize.
type Misspelling struct {
	Word string
	// Offset is the byte offset of Word in the checked text, or -1 when the
	// engine's range cannot be mapped back.
	Offset int
}
