package vt220

import "github.com/unilibs/uniwidth"

// runeWidth reports how many columns r occupies: 2 for wide characters
// (CJK ideographs, fullwidth forms, emoji), 1 for ordinary characters, 0
// for zero-width marks (combining accents, control chars). writeChar uses
// this to decide whether a character needs a second, non-printing cell.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune reports whether r needs two columns; writeChar consults this
// before placing a character and before deciding whether auto-wrap must
// fire a column early to make room for the pair.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of s (sum of rune widths),
// exposed for callers sizing a prompt or title string before feeding it.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
