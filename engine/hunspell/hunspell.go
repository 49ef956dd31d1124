// Package hunspell binds libhunspell. Each session owns one Hunhandle; the
// text is split on white space and every token is checked on its own.
package hunspell

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/dict"
	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/resource"
	"github.com/wippyai/spellbound/transcoder"
)

// Name is the registry key of this backend.
const Name = "hunspell"

// library is the subset of the libhunspell C API the backend calls. Strings
// cross as NUL-terminated bytes in the dictionary's charset.
type library interface {
	Create(aff, dic string) uintptr
	Destroy(h uintptr)
	Spell(h uintptr, word string) int32
	Add(h uintptr, word string) int32
	DicEncoding(h uintptr) string
}

// Backend opens Hunspell sessions.
type Backend struct {
	load func() (library, error)
}

func (Backend) Name() string { return Name }

func (b Backend) Open(ctx context.Context, cfg engine.Config) (engine.Session, error) {
	cfg = cfg.WithDefaults()
	if err := ctx.Err(); err != nil {
		return nil, errors.SubsystemInit(Name, "session", err)
	}

	pair, err := dict.Resolve(Name, cfg.DictDir, cfg.Language)
	if err != nil {
		return nil, err
	}

	if b.load == nil {
		return nil, errors.SubsystemInit(Name, "libhunspell", stderrors.New("not available on this platform"))
	}
	lib, err := b.load()
	if err != nil {
		return nil, errors.SubsystemInit(Name, "libhunspell", err)
	}

	h := lib.Create(pair.Aff, pair.Dic)
	if h == 0 {
		return nil, errors.Instantiation(Name, "Hunspell_create returned NULL for "+pair.Dic, nil)
	}

	enc := lib.DicEncoding(h)
	charset, err := transcoder.LookupCharset(enc)
	if err != nil {
		lib.Destroy(h)
		return nil, errors.Instantiation(Name, "dictionary charset "+enc, err)
	}

	log := cfg.Logger.With(zap.String("backend", Name))
	log.Debug("hunspell session opened",
		zap.String("dict", pair.Dic),
		zap.String("encoding", charset.Name()),
		zap.Uintptr("handle", h))

	return &Session{
		handle: resource.NewOwned(h, func(h uintptr) error {
			lib.Destroy(h)
			log.Debug("hunspell session closed", zap.Uintptr("handle", h))
			return nil
		}),
		lib:     lib,
		charset: charset,
	}, nil
}

// Session is one Hunhandle. Words added with Ignore go into the handle's
// runtime dictionary and are gone once the session is closed.
type Session struct {
	handle  *resource.Owned[uintptr]
	lib     library
	charset *transcoder.Charset
}

func (s *Session) Check(text string) (engine.Cursor, error) {
	if s.handle.Released() {
		return nil, errors.Closed(errors.PhaseCheck, Name)
	}
	if text == "" {
		return engine.Empty(), nil
	}
	return engine.NewTokenCursor(text, s.spell), nil
}

func (s *Session) spell(word string) (bool, error) {
	native, err := s.charset.Encode(word)
	if stderrors.Is(err, transcoder.ErrUnrepresentable) {
		// no dictionary entry can spell it
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var ok bool
	err = s.handle.With(func(h uintptr) error {
		ok = s.lib.Spell(h, native) != 0
		return nil
	})
	if err != nil {
		return false, errors.Closed(errors.PhaseCheck, Name)
	}
	return ok, nil
}

func (s *Session) Ignore(word string) error {
	if s.handle.Released() {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	if word == "" {
		return nil
	}

	native, err := s.charset.Encode(word)
	if err != nil {
		return errors.New(errors.PhaseIgnore, errors.KindInvalidInput).
			Backend(Name).
			Word(word).
			Detail("cannot encode for %s dictionary", s.charset.Name()).
			Cause(err).
			Build()
	}

	var rc int32
	err = s.handle.With(func(h uintptr) error {
		rc = s.lib.Add(h, native)
		return nil
	})
	if err != nil {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	if rc != 0 {
		return errors.New(errors.PhaseIgnore, errors.KindEngineCall).
			Backend(Name).
			Word(word).
			Detail("Hunspell_add returned %d", rc).
			Build()
	}
	return nil
}

func (s *Session) IgnoreScope() engine.IgnoreScope {
	return engine.ScopeSession
}

func (s *Session) Close() error {
	return s.handle.Release()
}
