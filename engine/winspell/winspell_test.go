package winspell

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/wippyai/spellbound/dict"
	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/enginetest"
	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/transcoder"
)

// fakeCOM hands out spell checkers that share one ignore list per
// language, like the Windows spell checking service does.
type fakeCOM struct {
	known        map[string]bool
	ignored      map[string]bool
	languages    map[string]bool
	initErr      error
	enumErr      error
	checks       int
	liveCheckers int
	liveEnums    int
	mu           sync.Mutex
}

func newFakeCOM(t *testing.T) *fakeCOM {
	t.Helper()
	dir := enginetest.ReferenceDictionary(t)
	f, err := os.Open(filepath.Join(dir, enginetest.Language+".dic"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	words, err := dict.ReadWords(f)
	if err != nil {
		t.Fatal(err)
	}
	c := &fakeCOM{
		known:     make(map[string]bool),
		ignored:   make(map[string]bool),
		languages: map[string]bool{"en-US": true},
	}
	for _, w := range words {
		c.known[w] = true
	}
	return c
}

func (c *fakeCOM) Initialize() error { return c.initErr }

func (c *fakeCOM) NewFactory() (factory, error) { return &fakeFactory{com: c}, nil }

type fakeFactory struct {
	com *fakeCOM
}

func decodeZ(t []uint16) string {
	s, _ := transcoder.DecodeUTF16(t[:len(t)-1])
	return s
}

func (f *fakeFactory) IsSupported(language []uint16) (bool, error) {
	return f.com.languages[decodeZ(language)], nil
}

func (f *fakeFactory) CreateSpellChecker(language []uint16) (spellChecker, error) {
	f.com.mu.Lock()
	defer f.com.mu.Unlock()
	f.com.liveCheckers++
	return &fakeChecker{com: f.com}, nil
}

func (f *fakeFactory) Release() {}

type fakeChecker struct {
	com      *fakeCOM
	released bool
}

func (c *fakeChecker) ComprehensiveCheck(text []uint16) (engine.Enumerator, error) {
	c.com.mu.Lock()
	defer c.com.mu.Unlock()
	if text[len(text)-1] != 0 {
		return nil, stderrors.New("text not NUL-terminated")
	}
	c.com.checks++
	c.com.liveEnums++

	var spans []engine.Span
	units := text[:len(text)-1]
	for i := 0; i < len(units); {
		for i < len(units) && unicode.IsSpace(rune(units[i])) {
			i++
		}
		begin := i
		for i < len(units) && !unicode.IsSpace(rune(units[i])) {
			i++
		}
		end := i
		for end > begin && units[end-1] == '.' {
			end--
		}
		if end == begin {
			continue
		}
		word, _ := transcoder.DecodeUTF16(units[begin:end])
		if !c.com.known[word] && !c.com.ignored[word] {
			spans = append(spans, engine.Span{Start: uint32(begin), Length: uint32(end - begin)})
		}
	}
	return &fakeEnum{com: c.com, spans: spans, err: c.com.enumErr}, nil
}

func (c *fakeChecker) Ignore(word []uint16) error {
	c.com.mu.Lock()
	defer c.com.mu.Unlock()
	c.com.ignored[decodeZ(word)] = true
	return nil
}

func (c *fakeChecker) Release() {
	c.com.mu.Lock()
	defer c.com.mu.Unlock()
	if c.released {
		panic("ISpellChecker released twice")
	}
	c.released = true
	c.com.liveCheckers--
}

type fakeEnum struct {
	com    *fakeCOM
	err    error
	spans  []engine.Span
	closed bool
}

func (e *fakeEnum) Next() (engine.Span, bool, error) {
	if e.err != nil {
		return engine.Span{}, false, e.err
	}
	if len(e.spans) == 0 {
		return engine.Span{}, false, nil
	}
	s := e.spans[0]
	e.spans = e.spans[1:]
	return s, true, nil
}

func (e *fakeEnum) Close() error {
	e.com.mu.Lock()
	defer e.com.mu.Unlock()
	if e.closed {
		panic("IEnumSpellingError released twice")
	}
	e.closed = true
	e.com.liveEnums--
	return nil
}

func openFake(t *testing.T, c *fakeCOM) engine.Session {
	t.Helper()
	s, err := Backend{com: c}.Open(context.Background(), engine.Config{Language: enginetest.Language})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestConformance_FakeCOM(t *testing.T) {
	c := newFakeCOM(t)
	enginetest.RunBackendTests(t, func(t *testing.T) engine.Session {
		return openFake(t, c)
	})
	if c.liveCheckers != 0 || c.liveEnums != 0 {
		t.Errorf("leaked %d checkers and %d enumerators", c.liveCheckers, c.liveEnums)
	}
}

func TestIgnore_ProcessScope(t *testing.T) {
	c := newFakeCOM(t)
	a := openFake(t, c)
	if a.IgnoreScope() != engine.ScopeProcess {
		t.Fatalf("scope = %s", a.IgnoreScope())
	}
	if err := a.Ignore("qwzx"); err != nil {
		t.Fatal(err)
	}
	a.Close()

	b := openFake(t, c)
	defer b.Close()
	if got := enginetest.Words(t, b, "qwzx"); len(got) != 0 {
		t.Errorf("fresh checker still reports %q", got)
	}
}

func TestCheck_EmptyTextSkipsEngine(t *testing.T) {
	c := newFakeCOM(t)
	s := openFake(t, c)
	defer s.Close()
	if got := enginetest.Words(t, s, ""); len(got) != 0 {
		t.Fatalf("got %q", got)
	}
	if c.checks != 0 {
		t.Errorf("ComprehensiveCheck called %d times", c.checks)
	}
}

func TestCheck_SurrogatePairs(t *testing.T) {
	c := newFakeCOM(t)
	c.known["𝒳"] = true
	s := openFake(t, c)
	defer s.Close()

	text := "𝒳 the wrld 𝒴𝒵"
	got := enginetest.Misspellings(t, s, text)
	words := make([]string, len(got))
	for i, m := range got {
		words[i] = m.Word
		if text[m.Offset:m.Offset+len(m.Word)] != m.Word {
			t.Errorf("offset %d does not locate %q", m.Offset, m.Word)
		}
	}
	if !slices.Equal(words, []string{"wrld", "𝒴𝒵"}) {
		t.Errorf("got %q", words)
	}
}

func TestCheck_EmbeddedNUL(t *testing.T) {
	s := openFake(t, newFakeCOM(t))
	defer s.Close()
	if _, err := s.Check("a\x00b"); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("Check = %v, want invalid_input", err)
	}
	if err := s.Ignore("a\x00b"); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("Ignore = %v, want invalid_input", err)
	}
}

func TestCheck_EnumeratorFailure(t *testing.T) {
	c := newFakeCOM(t)
	c.enumErr = stderrors.New("E_FAIL")
	s := openFake(t, c)
	defer s.Close()

	cur, err := s.Check("asdf")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = cur.Next()
	if !errors.IsKind(err, errors.KindEngineCall) {
		t.Fatalf("Next = %v, want engine_call", err)
	}
	if _, _, again := cur.Next(); again != err {
		t.Errorf("second pull = %v, want the same error", again)
	}
	if c.liveEnums != 0 {
		t.Error("enumerator not released after failure")
	}
}

func TestOpen_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *fakeCOM) Backend
		lang  string
		kind  errors.Kind
	}{
		{"no COM", func(*fakeCOM) Backend { return Backend{} }, "en_US", errors.KindSubsystemInit},
		{"init fails", func(c *fakeCOM) Backend {
			c.initErr = stderrors.New("RPC_E_CHANGED_MODE")
			return Backend{com: c}
		}, "en_US", errors.KindSubsystemInit},
		{"unsupported language", func(c *fakeCOM) Backend { return Backend{com: c} }, "xx_XX", errors.KindDictionaryNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.setup(newFakeCOM(t))
			_, err := b.Open(context.Background(), engine.Config{Language: tc.lang})
			if !errors.IsKind(err, tc.kind) {
				t.Fatalf("Open = %v, want %s", err, tc.kind)
			}
		})
	}
}

func TestLanguageTag(t *testing.T) {
	for in, want := range map[string]string{"en_US": "en-US", "de-DE": "de-DE", "fr": "fr"} {
		if got := languageTag(in); got != want {
			t.Errorf("languageTag(%q) = %q, want %q", in, got, want)
		}
	}
	if strings.Contains(languageTag(engine.DefaultLanguage), "_") {
		t.Error("default language not converted")
	}
}
