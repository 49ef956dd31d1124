package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/spellbound/errors"
	"github.com/wippyai/spellbound/transcoder"
)

// Cursor is a lazy, single-pass sequence of misspellings in left-to-right
// order. Next returns ok=false once the sequence is exhausted; after an error
// every later Next returns the same error. Close releases any native state
// early and is safe to call more than once.
type Cursor interface {
	Next() (m Misspelling, ok bool, err error)
	Close() error
}

// NotFound is the Range location that ends a range scan.
const NotFound = -1

// Range is a span of UTF-16 code units reported by a range-scanning engine.
type Range struct {
	Location int
	Length   int
}

// End returns the first unit after the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// RangeScanner is a session API that finds the next misspelling at or after
// an offset into a native string.
type RangeScanner interface {
	// Scan returns the first misspelled range starting at or after offset,
	// or a Range with Location NotFound.
	Scan(offset int) (Range, error)
	// Substring returns the text of r, decoded from the native string.
	Substring(r Range) (string, error)
	// Close releases the native string.
	Close() error
}

// Span is one element produced by a native error enumerator, measured in
// UTF-16 code units.
type Span struct {
	Start  uint32
	Length uint32
}

// Enumerator is a pull-based native error enumerator.
type Enumerator interface {
	// Next returns the next span, or ok=false when none remain.
	Next() (s Span, ok bool, err error)
	// Close releases the native enumerator.
	Close() error
}

// Predicate reports whether the engine recognizes word.
type Predicate func(word string) (bool, error)

type emptyCursor struct{}

func (emptyCursor) Next() (Misspelling, bool, error) { return Misspelling{}, false, nil }
func (emptyCursor) Close() error                     { return nil }

// Empty returns a cursor with no elements.
func Empty() Cursor {
	return emptyCursor{}
}

// rangeCursor adapts an offset-advancing range scan.
type rangeCursor struct {
	scanner RangeScanner
	index   *transcoder.UnitIndex
	err     error
	backend string
	offset  int
	length  int
	done    bool
}

// NewRangeCursor creates a cursor over text driven by scanner. The scanner is
// closed when the cursor is exhausted, fails, or is closed.
func NewRangeCursor(backend, text string, scanner RangeScanner) Cursor {
	return &rangeCursor{
		scanner: scanner,
		index:   transcoder.NewUnitIndex(text),
		backend: backend,
		length:  transcoder.UTF16Len(text),
	}
}

func (c *rangeCursor) Next() (Misspelling, bool, error) {
	if c.err != nil {
		return Misspelling{}, false, c.err
	}
	if c.done {
		return Misspelling{}, false, nil
	}

	r, err := c.scanner.Scan(c.offset)
	if err != nil {
		return c.fail(err)
	}
	if r.Location == NotFound {
		c.Close()
		return Misspelling{}, false, nil
	}
	if r.Location < c.offset || r.Length <= 0 || r.End() > c.length {
		return c.fail(errors.OutOfBounds(c.backend, r.Location, r.Length, c.length))
	}

	word, err := c.scanner.Substring(r)
	if err != nil {
		return c.fail(err)
	}
	debugf("%s: range [%d,+%d) %q", c.backend, r.Location, r.Length, word)

	c.offset = r.End()
	return Misspelling{Word: word, Offset: c.index.ByteOffset(r.Location)}, true, nil
}

func (c *rangeCursor) fail(err error) (Misspelling, bool, error) {
	c.err = err
	c.Close()
	return Misspelling{}, false, err
}

func (c *rangeCursor) Close() error {
	if c.done {
		return nil
	}
	c.done = true
	return c.scanner.Close()
}

// enumCursor adapts a native enumerator over a pre-encoded wide copy of the
// text.
type enumCursor struct {
	enum    Enumerator
	index   *transcoder.UnitIndex
	err     error
	backend string
	wide    []uint16
	done    bool
}

// NewEnumCursor creates a cursor over the spans produced by enum. wide is the
// UTF-16 encoding of text the enumerator's spans refer to, without a
// terminator. The enumerator is closed when the cursor is exhausted, fails,
// or is closed.
func NewEnumCursor(backend, text string, wide []uint16, enum Enumerator) Cursor {
	return &enumCursor{
		enum:    enum,
		index:   transcoder.NewUnitIndex(text),
		backend: backend,
		wide:    wide,
	}
}

func (c *enumCursor) Next() (Misspelling, bool, error) {
	if c.err != nil {
		return Misspelling{}, false, c.err
	}
	if c.done {
		return Misspelling{}, false, nil
	}

	s, ok, err := c.enum.Next()
	if err != nil {
		return c.fail(err)
	}
	if !ok {
		c.Close()
		return Misspelling{}, false, nil
	}

	start, end := uint64(s.Start), uint64(s.Start)+uint64(s.Length)
	if end > uint64(len(c.wide)) {
		return c.fail(errors.OutOfBounds(c.backend, int(s.Start), int(s.Length), len(c.wide)))
	}

	word, err := transcoder.DecodeUTF16(c.wide[start:end])
	if err != nil {
		return c.fail(err)
	}
	debugf("%s: span [%d,+%d) %q", c.backend, s.Start, s.Length, word)

	return Misspelling{Word: word, Offset: c.index.ByteOffset(int(start))}, true, nil
}

func (c *enumCursor) fail(err error) (Misspelling, bool, error) {
	c.err = err
	c.Close()
	return Misspelling{}, false, err
}

func (c *enumCursor) Close() error {
	if c.done {
		return nil
	}
	c.done = true
	return c.enum.Close()
}

// tokenCursor splits text on Unicode white space and yields the tokens the
// predicate rejects.
type tokenCursor struct {
	recognized Predicate
	err        error
	text       string
	pos        int
}

// NewTokenCursor creates a cursor that checks every whitespace-separated
// token of text with recognized.
func NewTokenCursor(text string, recognized Predicate) Cursor {
	return &tokenCursor{text: text, recognized: recognized}
}

func (c *tokenCursor) Next() (Misspelling, bool, error) {
	if c.err != nil {
		return Misspelling{}, false, c.err
	}
	for {
		start, end := c.nextToken()
		if start < 0 {
			return Misspelling{}, false, nil
		}
		word := c.text[start:end]
		ok, err := c.recognized(word)
		if err != nil {
			c.err = err
			c.pos = len(c.text)
			return Misspelling{}, false, err
		}
		if !ok {
			return Misspelling{Word: word, Offset: start}, true, nil
		}
	}
}

// nextToken advances past the next token and returns its byte range, or -1
// when the text is exhausted.
func (c *tokenCursor) nextToken() (int, int) {
	for c.pos < len(c.text) {
		r, size := utf8.DecodeRuneInString(c.text[c.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		c.pos += size
	}
	if c.pos >= len(c.text) {
		return -1, -1
	}
	start := c.pos
	for c.pos < len(c.text) {
		r, size := utf8.DecodeRuneInString(c.text[c.pos:])
		if unicode.IsSpace(r) {
			break
		}
		c.pos += size
	}
	return start, c.pos
}

func (c *tokenCursor) Close() error {
	c.pos = len(c.text)
	return nil
}
