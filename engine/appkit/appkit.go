// Package appkit binds the shared AppKit NSSpellChecker.
//
// NSSpellChecker is a process-wide object that must not be entered from two
// threads at once. Every call into it goes through an engine.Shared lock.
// Sessions are spell documents: each one gets a document tag, and words
// ignored in one document are not ignored in another.
package appkit

import (
	"context"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/resource"
)

// Name is the registry key of this backend.
const Name = "appkit"

// bridge reaches the Objective-C runtime.
type bridge interface {
	// SharedChecker returns [NSSpellChecker sharedSpellChecker].
	SharedChecker() (checker, error)
	// UniqueDocumentTag returns [NSSpellChecker uniqueSpellDocumentTag]. It
	// is a class method and needs no lock.
	UniqueDocumentTag() (int, error)
	// NewString copies text into a retained NSString.
	NewString(text string) (nsString, error)
}

// checker is the shared NSSpellChecker instance.
type checker interface {
	AvailableLanguages() []string
	// CheckSpelling returns the first misspelled range at or after start,
	// with Location engine.NotFound when there is none.
	CheckSpelling(text nsString, start int, language nsString, tag int) engine.Range
	IgnoreWord(word nsString, tag int)
	CloseDocument(tag int)
}

// nsString is a retained NSString.
type nsString interface {
	// Substring returns the UTF-8 bytes of the characters in r.
	Substring(r engine.Range) (string, error)
	Release()
}

// Backend opens spell documents on the shared checker.
type Backend struct {
	bridge bridge
	shared *engine.Shared[checker]
}

func newBackend(b bridge) *Backend {
	return &Backend{
		bridge: b,
		shared: engine.NewShared(b.SharedChecker),
	}
}

func (*Backend) Name() string { return Name }

func (b *Backend) Open(ctx context.Context, cfg engine.Config) (engine.Session, error) {
	cfg = cfg.WithDefaults()
	if err := ctx.Err(); err != nil {
		return nil, errors.SubsystemInit(Name, "session", err)
	}

	var available []string
	err := b.shared.Do(func(c checker) error {
		available = c.AvailableLanguages()
		return nil
	})
	if err != nil {
		return nil, errors.SubsystemInit(Name, "NSSpellChecker", err)
	}
	language, ok := matchLanguage(cfg.Language, available)
	if !ok {
		return nil, errors.New(errors.PhaseSetup, errors.KindDictionaryNotFound).
			Backend(Name).
			Value(cfg.Language).
			Detail("language %q not in available languages %v", cfg.Language, available).
			Build()
	}

	lang, err := b.bridge.NewString(language)
	if err != nil {
		return nil, errors.Instantiation(Name, "language string", err)
	}
	tag, err := b.bridge.UniqueDocumentTag()
	if err != nil {
		lang.Release()
		return nil, errors.Instantiation(Name, "uniqueSpellDocumentTag", err)
	}

	log := cfg.Logger.With(zap.String("backend", Name), zap.Int("tag", tag))
	log.Debug("spell document opened", zap.String("language", language))

	return &Session{
		backend: b,
		lang:    lang,
		doc: resource.NewOwned(tag, func(tag int) error {
			err := b.shared.Do(func(c checker) error {
				c.CloseDocument(tag)
				return nil
			})
			lang.Release()
			log.Debug("spell document closed")
			return err
		}),
	}, nil
}

// matchLanguage picks the checker language for a locale such as "en_US":
// the exact name, then the same name with a hyphen, then the bare language.
func matchLanguage(want string, available []string) (string, bool) {
	candidates := []string{want, strings.ReplaceAll(want, "_", "-")}
	if i := strings.IndexAny(want, "_-"); i > 0 {
		candidates = append(candidates, want[:i])
	}
	for _, c := range candidates {
		for _, a := range available {
			if strings.EqualFold(a, c) {
				return a, true
			}
		}
	}
	return "", false
}

// Session is one spell document.
type Session struct {
	backend *Backend
	lang    nsString
	doc     *resource.Owned[int]
}

func (s *Session) Check(text string) (engine.Cursor, error) {
	if s.doc.Released() {
		return nil, errors.Closed(errors.PhaseCheck, Name)
	}
	if text == "" {
		return engine.Empty(), nil
	}

	str, err := s.backend.bridge.NewString(text)
	if err != nil {
		return nil, errors.EngineCall(errors.PhaseCheck, Name, "NSString", err)
	}
	sc := &scanner{session: s, text: resource.NewOwned(str, func(str nsString) error {
		str.Release()
		return nil
	})}
	// Cursors dropped without Close still release their string.
	runtime.AddCleanup(sc, func(o *resource.Owned[nsString]) { _ = o.Release() }, sc.text)
	return engine.NewRangeCursor(Name, text, sc), nil
}

func (s *Session) Ignore(word string) error {
	if s.doc.Released() {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	if word == "" {
		return nil
	}

	str, err := s.backend.bridge.NewString(word)
	if err != nil {
		return errors.EngineCall(errors.PhaseIgnore, Name, "NSString", err)
	}
	defer str.Release()

	err = s.doc.With(func(tag int) error {
		return s.backend.shared.Do(func(c checker) error {
			c.IgnoreWord(str, tag)
			return nil
		})
	})
	if err == resource.ErrReleased {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	return err
}

func (s *Session) IgnoreScope() engine.IgnoreScope {
	return engine.ScopeSession
}

func (s *Session) Close() error {
	return s.doc.Release()
}

// scanner walks one NSString with checkSpellingOfString:startingAt:.
type scanner struct {
	session *Session
	text    *resource.Owned[nsString]
}

func (sc *scanner) Scan(offset int) (engine.Range, error) {
	var r engine.Range
	err := sc.session.doc.With(func(tag int) error {
		return sc.text.With(func(str nsString) error {
			return sc.session.backend.shared.Do(func(c checker) error {
				r = c.CheckSpelling(str, offset, sc.session.lang, tag)
				return nil
			})
		})
	})
	if err == resource.ErrReleased {
		return engine.Range{}, errors.Closed(errors.PhaseCheck, Name)
	}
	return r, err
}

func (sc *scanner) Substring(r engine.Range) (string, error) {
	var word string
	err := sc.text.With(func(str nsString) error {
		var err error
		word, err = str.Substring(r)
		return err
	})
	if err == resource.ErrReleased {
		return "", errors.Closed(errors.PhaseCheck, Name)
	}
	return word, err
}

func (sc *scanner) Close() error {
	return sc.text.Release()
}
