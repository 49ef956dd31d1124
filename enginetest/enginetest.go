package enginetest

import (
	"embed"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/errors"
)

// Language is the locale of the reference dictionary.
const Language = "en_US"

//go:embed refdict/en_US.aff refdict/en_US.dic
var refdict embed.FS

// ReferenceDictionary writes the reference affix/dictionary pair into a
// temporary directory and returns the directory.
func ReferenceDictionary(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{Language + ".aff", Language + ".dic"} {
		data, err := refdict.ReadFile("refdict/" + name)
		if err != nil {
			t.Fatalf("read embedded %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// Factory opens a fresh session on the reference dictionary. It is called
// once per subtest and the suite closes every session it gets.
type Factory func(t *testing.T) engine.Session

// RunBackendTests runs the conformance suite against sessions from open.
func RunBackendTests(t *testing.T, open Factory) {
	t.Helper()

	t.Run("Check", func(t *testing.T) {
		RunCheckTests(t, open)
	})
	t.Run("Ignore", func(t *testing.T) {
		RunIgnoreTests(t, open)
	})
	t.Run("Lifecycle", func(t *testing.T) {
		RunLifecycleTests(t, open)
	})
}

// RunCheckTests covers recognition, ordering and idempotence.
func RunCheckTests(t *testing.T, open Factory) {
	t.Helper()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"CorrectSentence", "I'm happy that this sentence has no errors.", nil},
		{"SingleWord", "asdf", []string{"asdf"}},
		{"MultipleWordsInOrder", "asdf hjkl qwer uiop", []string{"asdf", "hjkl", "qwer", "uiop"}},
		{"Empty", "", nil},
		{"WhitespaceOnly", "  \t\n ", nil},
		{"MixedKnownAndUnknown", "the quick brwn fox jumsp", []string{"brwn", "jumsp"}},
		{"RepeatedWord", "asdf the asdf", []string{"asdf", "asdf"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := session(t, open)
			got := Words(t, s, tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Check(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}

	t.Run("Offsets", func(t *testing.T) {
		s := session(t, open)
		text := "the asdf fox hjkl"
		for _, m := range Misspellings(t, s, text) {
			if m.Offset < 0 {
				continue
			}
			if m.Offset+len(m.Word) > len(text) || text[m.Offset:m.Offset+len(m.Word)] != m.Word {
				t.Errorf("offset %d does not locate %q in %q", m.Offset, m.Word, text)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		s := session(t, open)
		text := "the brwn fox jumsp over asdf"
		first := Words(t, s, text)
		second := Words(t, s, text)
		if !slices.Equal(first, second) {
			t.Errorf("consecutive checks differ: %q vs %q", first, second)
		}
	})

	t.Run("Lazy", func(t *testing.T) {
		s := session(t, open)
		c, err := s.Check("asdf hjkl qwer")
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		m, ok, err := c.Next()
		if err != nil || !ok || m.Word != "asdf" {
			t.Fatalf("first pull = (%+v, %v, %v)", m, ok, err)
		}
		if err := c.Close(); err != nil {
			t.Errorf("closing a partially consumed cursor: %v", err)
		}
		if err := c.Close(); err != nil {
			t.Errorf("second Close: %v", err)
		}
	})
}

// RunIgnoreTests covers the ignore list. The cross-session property only
// applies to backends whose ignore list is session scoped.
func RunIgnoreTests(t *testing.T, open Factory) {
	t.Helper()

	t.Run("Effect", func(t *testing.T) {
		s := session(t, open)
		word := "zxqvw"
		if got := Words(t, s, word); len(got) != 1 || got[0] != word {
			t.Fatalf("before ignore: %q", got)
		}
		if err := s.Ignore(word); err != nil {
			t.Fatalf("Ignore failed: %v", err)
		}
		if got := Words(t, s, word); len(got) != 0 {
			t.Errorf("after ignore: %q", got)
		}
		if got := Words(t, s, "the zxqvw qwer"); !slices.Equal(got, []string{"qwer"}) {
			t.Errorf("ignored word inside text: %q", got)
		}
	})

	t.Run("EmptyWord", func(t *testing.T) {
		s := session(t, open)
		if err := s.Ignore(""); err != nil {
			t.Errorf("Ignore(\"\") = %v, want nil", err)
		}
		if got := Words(t, s, "asdf"); len(got) != 1 {
			t.Errorf("after empty ignore: %q", got)
		}
	})

	t.Run("CheckDoesNotIgnore", func(t *testing.T) {
		s := session(t, open)
		Words(t, s, "ghjkl")
		if got := Words(t, s, "ghjkl"); len(got) != 1 {
			t.Errorf("check mutated ignore list: %q", got)
		}
	})

	t.Run("Scope", func(t *testing.T) {
		probe := open(t)
		scope := probe.IgnoreScope()
		if err := probe.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if scope != engine.ScopeSession {
			t.Skipf("ignore list is %s scoped", scope)
		}

		word := "plmokn"
		a := open(t)
		if err := a.Ignore(word); err != nil {
			t.Fatalf("Ignore failed: %v", err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		b := session(t, open)
		if got := Words(t, b, word); len(got) != 1 || got[0] != word {
			t.Errorf("fresh session after ignore on a closed one: %q", got)
		}
	})
}

// RunLifecycleTests covers release and use after release.
func RunLifecycleTests(t *testing.T, open Factory) {
	t.Helper()

	t.Run("CloseTwice", func(t *testing.T) {
		s := open(t)
		if err := s.Close(); err != nil {
			t.Fatalf("first Close: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close: %v", err)
		}
	})

	t.Run("UseAfterClose", func(t *testing.T) {
		s := open(t)
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Check("asdf"); !errors.IsKind(err, errors.KindClosed) {
			t.Errorf("Check after Close = %v, want closed", err)
		}
		if err := s.Ignore("asdf"); !errors.IsKind(err, errors.KindClosed) {
			t.Errorf("Ignore after Close = %v, want closed", err)
		}
	})

	t.Run("CursorOutlivingSession", func(t *testing.T) {
		s := open(t)
		c, err := s.Check("asdf hjkl")
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
		_, ok, err := c.Next()
		if ok || !errors.IsKind(err, errors.KindClosed) {
			t.Errorf("pull after session Close = (%v, %v), want closed error", ok, err)
		}
	})
}

// Misspellings drains a check of text on s.
func Misspellings(t testing.TB, s engine.Session, text string) []engine.Misspelling {
	t.Helper()

	c, err := s.Check(text)
	if err != nil {
		t.Fatalf("Check(%q) failed: %v", text, err)
	}
	defer c.Close()

	var out []engine.Misspelling
	for {
		m, ok, err := c.Next()
		if err != nil {
			t.Fatalf("Check(%q) cursor failed: %v", text, err)
		}
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// Words drains a check of text on s and returns only the words.
func Words(t testing.TB, s engine.Session, text string) []string {
	t.Helper()

	var words []string
	for _, m := range Misspellings(t, s, text) {
		words = append(words, m.Word)
	}
	return words
}

func session(t *testing.T, open Factory) engine.Session {
	t.Helper()
	s := open(t)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}
