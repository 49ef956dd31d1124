package spellbound

import (
	"iter"

	"github.com/wippyai/spellbound/engine"
)

// Cursor walks the misspellings found by Check. It is single pass:
//
//	cur := checker.Check(text)
//	defer cur.Close()
//	for cur.Next() {
//	    fmt.Println(cur.Misspelling().Text())
//	}
//	if err := cur.Err(); err != nil {
//	    return err
//	}
type Cursor struct {
	// checker keeps the Checker, and so its session, reachable while the
	// cursor is in use.
	checker *Checker
	cur     engine.Cursor
	err     error
	current SpellingError
	done    bool
}

// Next advances to the next misspelling. It returns false when there are
// no more or the engine failed; Err tells them apart.
func (c *Cursor) Next() bool {
	if c.done {
		return false
	}
	m, ok, err := c.cur.Next()
	if err != nil || !ok {
		c.err = err
		c.done = true
		c.current = SpellingError{}
		return false
	}
	c.current = SpellingError{text: m.Word, offset: m.Offset}
	return true
}

// Misspelling returns the word Next moved to.
func (c *Cursor) Misspelling() SpellingError {
	return c.current
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases engine state held by an unfinished cursor.
func (c *Cursor) Close() error {
	c.done = true
	if c.cur == nil {
		return nil
	}
	return c.cur.Close()
}

// All returns an iterator over the remaining misspellings. It stops early on
// error; check Err afterwards.
func (c *Cursor) All() iter.Seq[SpellingError] {
	return func(yield func(SpellingError) bool) {
		defer c.Close()
		for c.Next() {
			if !yield(c.current) {
				return
			}
		}
	}
}

// Collect drains the cursor. On error it returns no misspellings at all.
func (c *Cursor) Collect() ([]SpellingError, error) {
	defer c.Close()

	var out []SpellingError
	for c.Next() {
		out = append(out, c.current)
	}
	if c.err != nil {
		return nil, c.err
	}
	return out, nil
}
