package transcoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/spellbound/errors"
)

func TestEncodeUTF16(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []uint16
	}{
		{"empty", "", []uint16{}},
		{"ascii", "asdf", []uint16{'a', 's', 'd', 'f'}},
		{"bmp", "héllo", []uint16{'h', 0xE9, 'l', 'l', 'o'}},
		{"astral", "a😀b", []uint16{'a', 0xD83D, 0xDE00, 'b'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeUTF16(tt.in)
			if !equalUnits(got, tt.want) {
				t.Errorf("EncodeUTF16(%q) = %04x, want %04x", tt.in, got, tt.want)
			}
			if n := UTF16Len(tt.in); n != len(tt.want) {
				t.Errorf("UTF16Len(%q) = %d, want %d", tt.in, n, len(tt.want))
			}
		})
	}
}

func TestEncodeUTF16Z(t *testing.T) {
	got, err := EncodeUTF16Z("en-US")
	if err != nil {
		t.Fatalf("EncodeUTF16Z: %v", err)
	}
	want := []uint16{'e', 'n', '-', 'U', 'S', 0}
	if !equalUnits(got, want) {
		t.Errorf("got %04x, want %04x", got, want)
	}

	_, err = EncodeUTF16Z("a\x00b")
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("embedded NUL: want invalid_input, got %v", err)
	}
}

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name    string
		units   []uint16
		want    string
		wantErr bool
	}{
		{"empty", nil, "", false},
		{"ascii", []uint16{'q', 'w', 'e', 'r'}, "qwer", false},
		{"pair", []uint16{0xD83D, 0xDE00}, "😀", false},
		{"replacement char is data", []uint16{0xFFFD}, "�", false},
		{"lone high", []uint16{'a', 0xD83D}, "", true},
		{"lone low", []uint16{0xDE00, 'a'}, "", true},
		{"high then bmp", []uint16{0xD83D, 'a'}, "", true},
		{"swapped pair", []uint16{0xDE00, 0xD83D}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF16(tt.units)
			if tt.wantErr {
				if !errors.IsKind(err, errors.KindInvalidUTF16) {
					t.Fatalf("want invalid_utf16, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeUTF16: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTripThroughUnits(t *testing.T) {
	for _, s := range []string{"I'm happy", "naïve café", "𝔘𝔫𝔦𝔠𝔬𝔡𝔢 text"} {
		got, err := DecodeUTF16(EncodeUTF16(s))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != s {
			t.Errorf("got %q, want %q", got, s)
		}
	}
}

func TestDecodeUTF8(t *testing.T) {
	if s, err := DecodeUTF8([]byte("hjkl")); err != nil || s != "hjkl" {
		t.Errorf("valid: got %q, %v", s, err)
	}
	if _, err := DecodeUTF8([]byte{'a', 0xC3}); !errors.IsKind(err, errors.KindInvalidUTF8) {
		t.Errorf("truncated sequence: want invalid_utf8, got %v", err)
	}
}

func TestUnitIndex(t *testing.T) {
	text := "a😀 é b"
	// units: a(0) 😀(1,2) ' '(3) é(4) ' '(5) b(6)
	x := NewUnitIndex(text)
	tests := []struct {
		unit int
		want int
	}{
		{0, 0},
		{1, 1},
		{3, 5},
		{4, 6},
		{6, 9},
		{7, 10},
		{2, -1}, // inside the surrogate pair
		{8, -1},
		{-1, -1},
		{4, 6}, // lookup behind the cursor after a failure
	}
	for _, tt := range tests {
		if got := x.ByteOffset(tt.unit); got != tt.want {
			t.Errorf("ByteOffset(%d) = %d, want %d", tt.unit, got, tt.want)
		}
	}
}

func TestCharset(t *testing.T) {
	t.Run("utf8 identity", func(t *testing.T) {
		cs, err := LookupCharset("UTF-8")
		if err != nil {
			t.Fatal(err)
		}
		if !cs.Identity() {
			t.Error("UTF-8 should be identity")
		}
		out, err := cs.Encode("naïve")
		if err != nil || out != "naïve" {
			t.Errorf("got %q, %v", out, err)
		}
	})

	t.Run("hunspell latin1 spelling", func(t *testing.T) {
		cs, err := LookupCharset("ISO8859-1")
		if err != nil {
			t.Fatal(err)
		}
		if cs.Identity() {
			t.Fatal("ISO8859-1 should not be identity")
		}
		out, err := cs.Encode("café")
		if err != nil {
			t.Fatal(err)
		}
		if out != "caf\xe9" {
			t.Errorf("got %x, want 636166e9", out)
		}
		if _, err := cs.Encode("日本"); !stderrors.Is(err, ErrUnrepresentable) {
			t.Errorf("want ErrUnrepresentable, got %v", err)
		}
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		utf8cs, _ := LookupCharset("UTF-8")
		out, err := utf8cs.Encode("ab\xffc")
		if err != nil {
			t.Fatal(err)
		}
		if out != "ab\uFFFDc" {
			t.Errorf("got %q, want replacement character", out)
		}

		latin1, err := LookupCharset("ISO8859-1")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := latin1.Encode("caf\xff"); !stderrors.Is(err, ErrUnrepresentable) {
			t.Errorf("want ErrUnrepresentable, got %v", err)
		}
	})

	t.Run("microsoft alias", func(t *testing.T) {
		cs, err := LookupCharset("microsoft-cp1251")
		if err != nil {
			t.Fatal(err)
		}
		if cs.Name() != "windows-1251" {
			t.Errorf("Name = %q", cs.Name())
		}
	})

	t.Run("embedded NUL", func(t *testing.T) {
		cs, _ := LookupCharset("")
		if _, err := cs.Encode("a\x00"); !errors.IsKind(err, errors.KindInvalidInput) {
			t.Errorf("want invalid_input, got %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := LookupCharset("NOT-A-CHARSET"); !errors.IsKind(err, errors.KindUnsupported) {
			t.Errorf("want unsupported, got %v", err)
		}
	})
}

func equalUnits(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
