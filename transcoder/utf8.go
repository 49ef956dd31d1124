package transcoder

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/spellbound/errors"
)

// DecodeUTF8 validates bytes handed back by an engine and returns them as a
// string.
func DecodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(b)
	}
	return string(b), nil
}

// CheckCString reports an error if s cannot be passed as a NUL-terminated C
// string without truncation.
func CheckCString(s string) error {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Word(s).
			Detail("embedded NUL at byte %d", i).
			Build()
	}
	return nil
}
