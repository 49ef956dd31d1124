package transcoder

import (
	stderrors "errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/wippyai/spellbound/errors"
)

// ErrUnrepresentable is returned by Charset.Encode when a word contains a
// character the charset has no code for.
var ErrUnrepresentable = stderrors.New("transcoder: character not representable in charset")

// Charset converts Go strings into the byte encoding a Hunspell dictionary
// declares with its SET directive.
type Charset struct {
	enc  encoding.Encoding
	name string
}

// Hunspell spells some charsets differently from the IANA registry.
var hunspellAliases = map[string]string{
	"microsoft-cp1251": "windows-1251",
	"tis620-2533":      "TIS-620",
}

// LookupCharset resolves a Hunspell charset name. An empty name or UTF-8
// yields the identity charset.
func LookupCharset(name string) (*Charset, error) {
	norm := strings.TrimSpace(name)
	if norm == "" || strings.EqualFold(norm, "UTF-8") || strings.EqualFold(norm, "UTF8") {
		return &Charset{name: "UTF-8"}, nil
	}
	if alias, ok := hunspellAliases[strings.ToLower(norm)]; ok {
		norm = alias
	}
	upper := strings.ToUpper(norm)
	if strings.HasPrefix(upper, "ISO8859") {
		norm = "ISO-8859" + strings.TrimPrefix(upper, "ISO8859")
	}

	enc, err := ianaindex.IANA.Encoding(norm)
	if err != nil {
		return nil, errors.New(errors.PhaseSetup, errors.KindUnsupported).
			Value(name).
			Detail("unknown dictionary charset %q", name).
			Cause(err).
			Build()
	}
	if enc == nil {
		return nil, errors.New(errors.PhaseSetup, errors.KindUnsupported).
			Value(name).
			Detail("dictionary charset %q has no converter", name).
			Build()
	}
	return &Charset{enc: enc, name: norm}, nil
}

// Name returns the normalized charset name.
func (c *Charset) Name() string {
	return c.name
}

// Identity reports whether the charset is UTF-8, in which case Encode only
// validates.
func (c *Charset) Identity() bool {
	return c.enc == nil
}

// Encode converts s into the charset's bytes, returned as a string so it can
// cross a C-string boundary. Invalid UTF-8 becomes U+FFFD first. Embedded
// NULs are rejected; characters without a code in the charset yield
// ErrUnrepresentable.
func (c *Charset) Encode(s string) (string, error) {
	if err := CheckCString(s); err != nil {
		return "", err
	}
	s = strings.ToValidUTF8(s, "\uFFFD")
	if c.enc == nil {
		return s, nil
	}
	out, err := c.enc.NewEncoder().String(s)
	if err != nil {
		return "", ErrUnrepresentable
	}
	return out, nil
}
