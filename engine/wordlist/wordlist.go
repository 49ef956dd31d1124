// Package wordlist implements a pure Go backend that checks whitespace
// tokens against the stem list of a Hunspell .dic file. Affix rules are not
// applied. It is available on every platform.
package wordlist

import (
	"context"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/spellbound/dict"
	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/resource"
)

// Name is the registry key of this backend.
const Name = "wordlist"

func init() {
	engine.Register(Backend{})
}

// Backend opens word list sessions.
type Backend struct{}

func (Backend) Name() string { return Name }

// Open reads <Language>.dic from the dictionary directory. The matching .aff
// file must exist too, so a directory that works here also works for the
// hunspell backend.
func (Backend) Open(ctx context.Context, cfg engine.Config) (engine.Session, error) {
	cfg = cfg.WithDefaults()
	if err := ctx.Err(); err != nil {
		return nil, errors.SubsystemInit(Name, "session", err)
	}

	pair, err := dict.Resolve(Name, cfg.DictDir, cfg.Language)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(pair.Dic)
	if err != nil {
		return nil, errors.Instantiation(Name, "open "+pair.Dic, err)
	}
	defer f.Close()

	words, err := dict.ReadWords(f)
	if err != nil {
		return nil, errors.Instantiation(Name, "read "+pair.Dic, err)
	}

	known := make(map[string]struct{}, len(words))
	for _, w := range words {
		known[w] = struct{}{}
	}
	cfg.Logger.Debug("wordlist session opened",
		zap.String("dict", pair.Dic),
		zap.Int("words", len(known)))

	st := &state{known: known, ignored: make(map[string]struct{})}
	return &Session{
		state: resource.NewOwned(st, nil),
		log:   cfg.Logger,
	}, nil
}

type state struct {
	known   map[string]struct{}
	ignored map[string]struct{}
}

func (s *state) has(word string) bool {
	if _, ok := s.known[word]; ok {
		return true
	}
	_, ok := s.ignored[word]
	return ok
}

// recognized applies the case policy: an exact match, or for a word that
// starts with an upper case letter, its lower-cased or capitalized forms.
// Trailing periods are not part of the word.
func (s *state) recognized(word string) bool {
	for _, w := range []string{word, strings.TrimRight(word, ".")} {
		if w == "" {
			continue
		}
		if s.has(w) {
			return true
		}
		first, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(first) {
			continue
		}
		lower := strings.ToLower(w)
		if s.has(lower) || s.has(capitalize(lower)) || s.has(lowerFirst(w)) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// Session is a word list checking session. Its ignore list is private to
// the session.
type Session struct {
	state *resource.Owned[*state]
	log   *zap.Logger
}

func (s *Session) Check(text string) (engine.Cursor, error) {
	if s.state.Released() {
		return nil, errors.Closed(errors.PhaseCheck, Name)
	}
	if text == "" {
		return engine.Empty(), nil
	}
	return engine.NewTokenCursor(text, func(word string) (bool, error) {
		var ok bool
		err := s.state.With(func(st *state) error {
			ok = st.recognized(word)
			return nil
		})
		if err != nil {
			return false, errors.Closed(errors.PhaseCheck, Name)
		}
		return ok, nil
	}), nil
}

func (s *Session) Ignore(word string) error {
	err := s.state.With(func(st *state) error {
		if word != "" {
			st.ignored[word] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return errors.Closed(errors.PhaseIgnore, Name)
	}
	return nil
}

func (s *Session) IgnoreScope() engine.IgnoreScope {
	return engine.ScopeSession
}

func (s *Session) Close() error {
	if err := s.state.Release(); err != nil {
		return err
	}
	s.log.Debug("wordlist session closed")
	return nil
}
