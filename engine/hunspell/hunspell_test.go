package hunspell

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/wippyai/spellbound/dict"
	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/enginetest"
	"github.com/wippyai/spellbound/errors"
)

// fakeLibrary imitates libhunspell over the stem list of a .dic file: exact
// matches plus a trailing-period strip, with one runtime word list per
// handle.
type fakeLibrary struct {
	words     map[string]bool
	added     map[uintptr]map[string]bool
	destroyed map[uintptr]int
	spelled   []string
	encoding  string
	next      uintptr
	failNew   bool
	mu        sync.Mutex
}

func newFakeLibrary(t *testing.T, dicPath string) *fakeLibrary {
	t.Helper()
	f, err := os.Open(dicPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	words, err := dict.ReadWords(f)
	if err != nil {
		t.Fatal(err)
	}
	l := &fakeLibrary{
		words:     make(map[string]bool),
		added:     make(map[uintptr]map[string]bool),
		destroyed: make(map[uintptr]int),
		encoding:  "UTF-8",
	}
	for _, w := range words {
		l.words[w] = true
	}
	return l
}

func (l *fakeLibrary) Create(aff, dic string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failNew {
		return 0
	}
	l.next++
	l.added[l.next] = make(map[string]bool)
	return l.next
}

func (l *fakeLibrary) Destroy(h uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.destroyed[h]++
	delete(l.added, h)
}

func (l *fakeLibrary) Spell(h uintptr, word string) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spelled = append(l.spelled, word)
	for _, w := range []string{word, strings.TrimRight(word, ".")} {
		if l.words[w] || l.added[h][w] {
			return 1
		}
	}
	return 0
}

func (l *fakeLibrary) Add(h uintptr, word string) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.added[h][word] = true
	return 0
}

func (l *fakeLibrary) DicEncoding(uintptr) string {
	return l.encoding
}

func fakeBackend(lib *fakeLibrary) Backend {
	return Backend{load: func() (library, error) { return lib, nil }}
}

func openFake(t *testing.T, lib *fakeLibrary, dir string) *Session {
	t.Helper()
	s, err := fakeBackend(lib).Open(context.Background(), engine.Config{
		Language: enginetest.Language,
		DictDir:  dir,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s.(*Session)
}

func TestConformance_FakeLibrary(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	enginetest.RunBackendTests(t, func(t *testing.T) engine.Session {
		return openFake(t, lib, dir)
	})

	for h, n := range lib.destroyed {
		if n != 1 {
			t.Errorf("handle %d destroyed %d times", h, n)
		}
	}
	if len(lib.added) != 0 {
		t.Errorf("%d handles leaked", len(lib.added))
	}
}

func TestCheck_EmptyTextSkipsEngine(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	s := openFake(t, lib, dir)
	defer s.Close()

	if got := enginetest.Words(t, s, ""); len(got) != 0 {
		t.Fatalf("got %q", got)
	}
	if len(lib.spelled) != 0 {
		t.Errorf("engine called for empty text: %q", lib.spelled)
	}
}

func TestCheck_Charset(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	lib.encoding = "ISO8859-1"
	lib.words["caf\xe9"] = true

	s := openFake(t, lib, dir)
	defer s.Close()

	if s.charset.Name() != "ISO-8859-1" {
		t.Errorf("charset = %q", s.charset.Name())
	}
	got := enginetest.Words(t, s, "café 日本 the")
	if !slices.Equal(got, []string{"日本"}) {
		t.Errorf("got %q, want only the unrepresentable word", got)
	}
	if slices.Contains(lib.spelled, "日本") {
		t.Error("unrepresentable word reached the engine")
	}

	err := s.Ignore("日本")
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("Ignore unrepresentable = %v, want invalid_input", err)
	}
}

func TestCheck_EmbeddedNUL(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	s := openFake(t, lib, dir)
	defer s.Close()

	c, err := s.Check("the a\x00b fox")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = c.Next()
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("error = %v, want invalid_input", err)
	}
	if err := s.Ignore("a\x00b"); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("Ignore = %v, want invalid_input", err)
	}
}

func TestOpen_Failures(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	dic := filepath.Join(dir, enginetest.Language+".dic")

	tests := []struct {
		name    string
		backend func() Backend
		lang    string
		kind    errors.Kind
	}{
		{
			name:    "no library",
			backend: func() Backend { return Backend{} },
			lang:    enginetest.Language,
			kind:    errors.KindSubsystemInit,
		},
		{
			name: "load fails",
			backend: func() Backend {
				return Backend{load: func() (library, error) { return nil, stderrors.New("dlopen failed") }}
			},
			lang: enginetest.Language,
			kind: errors.KindSubsystemInit,
		},
		{
			name: "missing dictionary",
			backend: func() Backend {
				return fakeBackend(newFakeLibrary(t, dic))
			},
			lang: "xx_XX",
			kind: errors.KindDictionaryNotFound,
		},
		{
			name: "create fails",
			backend: func() Backend {
				lib := newFakeLibrary(t, dic)
				lib.failNew = true
				return fakeBackend(lib)
			},
			lang: enginetest.Language,
			kind: errors.KindInstantiation,
		},
		{
			name: "unknown charset",
			backend: func() Backend {
				lib := newFakeLibrary(t, dic)
				lib.encoding = "NOT-A-CHARSET"
				return fakeBackend(lib)
			},
			lang: enginetest.Language,
			kind: errors.KindInstantiation,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := tc.backend().Open(context.Background(), engine.Config{Language: tc.lang, DictDir: dir})
			if s != nil {
				t.Error("session returned alongside error")
			}
			if !errors.IsKind(err, tc.kind) {
				t.Fatalf("error = %v, want %s", err, tc.kind)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Phase != errors.PhaseSetup {
				t.Errorf("error phase = %v, want setup", err)
			}
		})
	}
}

func TestOpen_CharsetFailureReleasesHandle(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	lib.encoding = "NOT-A-CHARSET"

	if _, err := fakeBackend(lib).Open(context.Background(), engine.Config{Language: enginetest.Language, DictDir: dir}); err == nil {
		t.Fatal("expected error")
	}
	if lib.destroyed[1] != 1 {
		t.Errorf("handle destroyed %d times, want 1", lib.destroyed[1])
	}
}

func TestClose_Concurrent(t *testing.T) {
	dir := enginetest.ReferenceDictionary(t)
	lib := newFakeLibrary(t, filepath.Join(dir, enginetest.Language+".dic"))
	s := openFake(t, lib, dir)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Close()
		}()
	}
	wg.Wait()

	if lib.destroyed[1] != 1 {
		t.Errorf("handle destroyed %d times, want 1", lib.destroyed[1])
	}
}
