// Package winspell binds the Windows Spell Checking API (ISpellChecker).
//
// Each session owns one ISpellChecker. Words passed to Ignore are ignored by
// that checker for the rest of the process, and Windows may share the list
// with other checkers for the same language, so the scope is reported as
// engine.ScopeProcess.
package winspell

import (
	"context"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/resource"
	"github.com/wippyai/spellbound/transcoder"
)

// Name is the registry key of this backend.
const Name = "winspell"

// com reaches the COM runtime.
type com interface {
	// Initialize joins the process multithreaded apartment.
	Initialize() error
	NewFactory() (factory, error)
}

// factory is an ISpellCheckerFactory.
type factory interface {
	IsSupported(language []uint16) (bool, error)
	CreateSpellChecker(language []uint16) (spellChecker, error)
	Release()
}

// spellChecker is an ISpellChecker. Text and words are NUL-terminated UTF-16.
type spellChecker interface {
	ComprehensiveCheck(text []uint16) (engine.Enumerator, error)
	Ignore(word []uint16) error
	Release()
}

// Backend opens ISpellChecker sessions.
type Backend struct {
	com com
}

func (Backend) Name() string { return Name }

func (b Backend) Open(ctx context.Context, cfg engine.Config) (engine.Session, error) {
	cfg = cfg.WithDefaults()
	if err := ctx.Err(); err != nil {
		return nil, errors.SubsystemInit(Name, "session", err)
	}
	if b.com == nil {
		return nil, errors.SubsystemInit(Name, "COM", stderrors.New("not available on this platform"))
	}
	if err := b.com.Initialize(); err != nil {
		return nil, errors.SubsystemInit(Name, "COM", err)
	}

	f, err := b.com.NewFactory()
	if err != nil {
		return nil, errors.SubsystemInit(Name, "SpellCheckerFactory", err)
	}
	defer f.Release()

	tag := languageTag(cfg.Language)
	lang, err := transcoder.EncodeUTF16Z(tag)
	if err != nil {
		return nil, errors.Instantiation(Name, "language tag", err)
	}
	supported, err := f.IsSupported(lang)
	if err != nil {
		return nil, errors.Instantiation(Name, "IsSupported", err)
	}
	if !supported {
		return nil, errors.New(errors.PhaseSetup, errors.KindDictionaryNotFound).
			Backend(Name).
			Value(tag).
			Detail("no spell checker installed for %s", tag).
			Build()
	}

	sc, err := f.CreateSpellChecker(lang)
	if err != nil {
		return nil, errors.Instantiation(Name, "CreateSpellChecker", err)
	}

	log := cfg.Logger.With(zap.String("backend", Name), zap.String("language", tag))
	log.Debug("spell checker created")

	return &Session{
		checker: resource.NewOwned(sc, func(sc spellChecker) error {
			sc.Release()
			log.Debug("spell checker released")
			return nil
		}),
	}, nil
}

// languageTag turns a locale such as en_US into the BCP 47 tag en-US.
func languageTag(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

// Session is one ISpellChecker.
type Session struct {
	checker *resource.Owned[spellChecker]
}

func (s *Session) Check(text string) (engine.Cursor, error) {
	if s.checker.Released() {
		return nil, errors.Closed(errors.PhaseCheck, Name)
	}
	if text == "" {
		return engine.Empty(), nil
	}

	wide, err := transcoder.EncodeUTF16Z(text)
	if err != nil {
		return nil, err
	}

	var enum engine.Enumerator
	err = s.checker.With(func(sc spellChecker) error {
		var err error
		enum, err = sc.ComprehensiveCheck(wide)
		return err
	})
	switch {
	case err == resource.ErrReleased:
		return nil, errors.Closed(errors.PhaseCheck, Name)
	case err != nil:
		return nil, errors.EngineCall(errors.PhaseCheck, Name, "ComprehensiveCheck", err)
	}

	return engine.NewEnumCursor(Name, text, wide[:len(wide)-1], &enumerator{session: s, enum: enum}), nil
}

func (s *Session) Ignore(word string) error {
	if s.checker.Released() {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	if word == "" {
		return nil
	}

	wide, err := transcoder.EncodeUTF16Z(word)
	if err != nil {
		return err
	}
	err = s.checker.With(func(sc spellChecker) error {
		return sc.Ignore(wide)
	})
	switch {
	case err == resource.ErrReleased:
		return errors.Closed(errors.PhaseIgnore, Name)
	case err != nil:
		return errors.EngineCall(errors.PhaseIgnore, Name, "Ignore", err)
	}
	return nil
}

func (s *Session) IgnoreScope() engine.IgnoreScope {
	return engine.ScopeProcess
}

func (s *Session) Close() error {
	return s.checker.Release()
}

// enumerator stops yielding once its session is closed.
type enumerator struct {
	session *Session
	enum    engine.Enumerator
}

func (e *enumerator) Next() (engine.Span, bool, error) {
	var (
		span engine.Span
		ok   bool
	)
	err := e.session.checker.With(func(spellChecker) error {
		var err error
		span, ok, err = e.enum.Next()
		return err
	})
	switch {
	case err == resource.ErrReleased:
		return engine.Span{}, false, errors.Closed(errors.PhaseCheck, Name)
	case err != nil:
		return engine.Span{}, false, errors.EngineCall(errors.PhaseCheck, Name, "IEnumSpellingError.Next", err)
	}
	return span, ok, nil
}

func (e *enumerator) Close() error {
	return e.enum.Close()
}
