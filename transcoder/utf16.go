package transcoder

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/spellbound/errors"
)

// EncodeUTF16 returns the UTF-16 code units of s without a terminator.
func EncodeUTF16(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		units = utf16.AppendRune(units, r)
	}
	return units
}

// EncodeUTF16Z returns the UTF-16 code units of s followed by a NUL unit.
// Text with an embedded NUL cannot cross a NUL-terminated boundary intact
// and is rejected.
func EncodeUTF16Z(s string) ([]uint16, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Word(s).
			Detail("embedded NUL at byte %d", i).
			Build()
	}
	units := make([]uint16, 0, len(s)+1)
	for _, r := range s {
		units = utf16.AppendRune(units, r)
	}
	return append(units, 0), nil
}

// DecodeUTF16 decodes code units into a Go string. Unpaired surrogates are
// reported as errors rather than replaced.
func DecodeUTF16(units []uint16) (string, error) {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case !utf16.IsSurrogate(rune(u)):
			b.WriteRune(rune(u))
		case u < 0xDC00 && i+1 < len(units):
			r := utf16.DecodeRune(rune(u), rune(units[i+1]))
			if r == utf8.RuneError {
				return "", errors.InvalidUTF16(units, i)
			}
			b.WriteRune(r)
			i++
		default:
			return "", errors.InvalidUTF16(units, i)
		}
	}
	return b.String(), nil
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += unitsFor(r)
	}
	return n
}

func unitsFor(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
