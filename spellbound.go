package spellbound

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/resource"
)

// Checker is a spell checking session on one backend.
type Checker struct {
	session  engine.Session
	log      *zap.Logger
	cleanup  runtime.Cleanup
	backend  string
	language string
	handle   resource.Handle
	once     sync.Once
	closeErr error
}

// New opens a session on the selected backend, or the platform default.
// Setup failures are returned as *errors.Error with errors.PhaseSetup.
func New(ctx context.Context, opts ...Option) (*Checker, error) {
	o := options{backend: defaultBackend}
	for _, opt := range opts {
		opt(&o)
	}

	backend, err := engine.Lookup(o.backend)
	if err != nil {
		return nil, err
	}

	cfg := engine.Config{
		Logger:   o.logger,
		Language: o.language,
		DictDir:  o.dictDir,
	}.WithDefaults()

	session, err := backend.Open(ctx, cfg)
	if err != nil {
		cfg.Logger.Debug("open session failed", zap.String("backend", o.backend), zap.Error(err))
		return nil, err
	}

	c := &Checker{
		session:  session,
		log:      cfg.Logger.With(zap.String("backend", o.backend)),
		backend:  o.backend,
		language: cfg.Language,
	}
	c.handle = sessions.Insert(o.backend, SessionInfo{Backend: o.backend, Language: cfg.Language})
	c.cleanup = runtime.AddCleanup(c, closeLeaked, leaked{
		session: session,
		log:     c.log,
		handle:  c.handle,
	})
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(ctx context.Context, opts ...Option) *Checker {
	c, err := New(ctx, opts...)
	if err != nil {
		panic(fmt.Sprintf("spellbound: %v", err))
	}
	return c
}

// Check returns a cursor over the misspelled words of text, in order. The
// engine is consulted as the cursor advances. Check never changes the
// ignore list.
func (c *Checker) Check(text string) *Cursor {
	cur, err := c.session.Check(text)
	if err != nil {
		return &Cursor{err: err, done: true}
	}
	return &Cursor{checker: c, cur: cur}
}

// Ignore makes later checks on this Checker accept word. An empty word is a
// no-op.
func (c *Checker) Ignore(word string) error {
	return c.session.Ignore(word)
}

// IgnoreScope reports whether ignored words stay private to this Checker
// (engine.ScopeSession) or reach other Checkers on the same backend
// (engine.ScopeProcess).
func (c *Checker) IgnoreScope() engine.IgnoreScope {
	return c.session.IgnoreScope()
}

// Backend returns the registry name of the backend in use.
func (c *Checker) Backend() string {
	return c.backend
}

// Language returns the locale the Checker was opened with.
func (c *Checker) Language() string {
	return c.language
}

// Close releases the engine resource. Cursors still open fail on their next
// advance. A failed release is reported with errors.PhaseClose. Calling Close
// again returns the first result.
func (c *Checker) Close() error {
	c.once.Do(func() {
		c.cleanup.Stop()
		sessions.Remove(c.handle)
		if err := c.session.Close(); err != nil {
			c.closeErr = errors.EngineCall(errors.PhaseClose, c.backend, "release session", err)
		}
	})
	return c.closeErr
}

// leaked is what the cleanup of an unreachable Checker needs. It must not
// point back at the Checker.
type leaked struct {
	session engine.Session
	log     *zap.Logger
	handle  resource.Handle
}

func closeLeaked(l leaked) {
	l.log.Warn("checker garbage collected without Close")
	sessions.Remove(l.handle)
	if err := l.session.Close(); err != nil {
		l.log.Warn("close leaked session", zap.Error(err))
	}
}

// SpellingError is one misspelled word.
type SpellingError struct {
	text   string
	offset int
}

// Text returns the misspelled word as it appears in the checked text.
func (e SpellingError) Text() string {
	return e.text
}

// Offset returns the byte offset of the word in the checked text, or -1
// when the engine's position could not be mapped.
func (e SpellingError) Offset() int {
	return e.offset
}

func (e SpellingError) String() string {
	return e.text
}
