package transcoder

import "unicode/utf8"

// UnitIndex maps UTF-16 code unit offsets into byte offsets of the text they
// were encoded from. Lookups are expected in ascending order, which makes a
// full left-to-right scan linear; a lookup behind the current position
// restarts from the beginning.
type UnitIndex struct {
	text    string
	bytePos int
	unitPos int
}

// NewUnitIndex creates an index over text.
func NewUnitIndex(text string) *UnitIndex {
	return &UnitIndex{text: text}
}

// ByteOffset returns the byte offset at which UTF-16 unit offset unit begins.
// It returns -1 when unit is past the end of the text or falls between the
// two halves of a surrogate pair.
func (x *UnitIndex) ByteOffset(unit int) int {
	if unit < 0 {
		return -1
	}
	if unit < x.unitPos {
		x.bytePos, x.unitPos = 0, 0
	}
	for x.unitPos < unit {
		if x.bytePos >= len(x.text) {
			return -1
		}
		r, size := utf8.DecodeRuneInString(x.text[x.bytePos:])
		n := unitsFor(r)
		if x.unitPos+n > unit {
			return -1
		}
		x.bytePos += size
		x.unitPos += n
	}
	return x.bytePos
}
