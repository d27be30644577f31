package vt220

// Designation names a 94/96-character set that can be loaded into a
// graphic-set slot (G0..G3) via an ESC ( ) * + designator sequence.
type Designation int

const (
	DesignationASCII Designation = iota
	DesignationBritish
	DesignationDanish
	DesignationDECSpecialGraphics
	DesignationDECSupplemental
	DesignationDutch
	DesignationFinnish
	DesignationFrench
	DesignationFrenchCanadian
	DesignationGerman
	DesignationItalian
	DesignationSpanish
	DesignationSwedish
	DesignationSwiss
)

// replacement is one (position, codepoint) override against the plain
// ASCII value at that GL position.
type replacement struct {
	pos  byte
	char rune
}

// nationalTables holds the ≤12-entry replacement list for every
// designation except DEC Special Graphics, which gets its own large table
// below. ASCII itself has no replacements.
var nationalTables = map[Designation][]replacement{
	DesignationBritish: {
		{0x23, '£'},
	},
	DesignationGerman: {
		{0x40, '§'}, {0x5B, 'Ä'}, {0x5C, 'Ö'}, {0x5D, 'Ü'},
		{0x7B, 'ä'}, {0x7C, 'ö'}, {0x7D, 'ü'}, {0x7E, 'ß'},
	},
	DesignationFrench: {
		{0x23, '£'}, {0x40, 'à'}, {0x5B, '°'}, {0x5C, 'ç'},
		{0x5D, '§'}, {0x7B, 'é'}, {0x7C, 'ù'}, {0x7D, 'è'}, {0x7E, '¨'},
	},
	DesignationFrenchCanadian: {
		{0x40, 'à'}, {0x5B, 'â'}, {0x5C, 'ç'}, {0x5D, 'ê'}, {0x5E, 'î'},
		{0x60, 'ô'}, {0x7B, 'é'}, {0x7C, 'ù'}, {0x7D, 'è'}, {0x7E, 'û'},
	},
	DesignationDutch: {
		{0x23, '£'}, {0x40, '¾'}, {0x5B, 'ĳ'}, {0x5C, '½'}, {0x5D, '|'},
		{0x60, '`'}, {0x7B, '¨'}, {0x7C, 'ƒ'}, {0x7D, '¼'}, {0x7E, '´'},
	},
	DesignationDanish: {
		{0x40, 'Ä'}, {0x5B, 'Æ'}, {0x5C, 'Ø'}, {0x5D, 'Å'},
		{0x7B, 'ä'}, {0x7C, 'æ'}, {0x7D, 'ø'}, {0x7E, 'å'},
	},
	DesignationFinnish: {
		{0x5B, 'Ä'}, {0x5C, 'Ö'}, {0x5D, 'Å'}, {0x5E, 'Ü'},
		{0x60, 'é'}, {0x7B, 'ä'}, {0x7C, 'ö'}, {0x7D, 'å'}, {0x7E, 'ü'},
	},
	DesignationItalian: {
		{0x23, '£'}, {0x40, '§'}, {0x5B, '°'}, {0x5C, 'ç'}, {0x5D, 'é'},
		{0x60, 'ù'}, {0x7B, 'à'}, {0x7C, 'ò'}, {0x7D, 'è'}, {0x7E, 'ì'},
	},
	DesignationSpanish: {
		{0x23, '£'}, {0x40, '§'}, {0x5B, '¡'}, {0x5C, 'Ñ'}, {0x5D, '¿'},
		{0x7B, '°'}, {0x7C, 'ñ'}, {0x7D, 'ç'},
	},
	DesignationSwedish: {
		{0x40, 'É'}, {0x5B, 'Ä'}, {0x5C, 'Ö'}, {0x5D, 'Å'}, {0x5E, 'Ü'},
		{0x60, 'é'}, {0x7B, 'ä'}, {0x7C, 'ö'}, {0x7D, 'å'}, {0x7E, 'ü'},
	},
	DesignationSwiss: {
		{0x23, 'ù'}, {0x40, 'à'}, {0x5B, 'é'}, {0x5C, 'ç'}, {0x5D, 'ê'},
		{0x5E, 'î'}, {0x5F, 'è'}, {0x60, 'ô'}, {0x7B, 'ä'}, {0x7C, 'ö'},
		{0x7D, 'ü'}, {0x7E, 'û'},
	},
}

// decSpecialGraphics is the canonical VT220 line-drawing table for GL
// positions 0x5F..0x7E. It must be reproduced exactly: diamond,
// checkerboard shade, the HT/FF/CR/LF/NL/VT control symbols, degree,
// plus-minus, the four box-drawing corners, a crossing, the five scan
// lines, the four tee pieces, a vertical bar, <=, >=, pi, !=, the pound
// sign, a middle dot, and a blank at 0x5F.
var decSpecialGraphics = map[byte]rune{
	0x5F: ' ',
	0x60: '◆',
	0x61: '▒',
	0x62: '␉',
	0x63: '␌',
	0x64: '␍',
	0x65: '␊',
	0x66: '°',
	0x67: '±',
	0x68: '␤',
	0x69: '␋',
	0x6A: '┘',
	0x6B: '┐',
	0x6C: '┌',
	0x6D: '└',
	0x6E: '┼',
	0x6F: '⎺',
	0x70: '⎻',
	0x71: '─',
	0x72: '⎼',
	0x73: '⎽',
	0x74: '├',
	0x75: '┤',
	0x76: '┴',
	0x77: '┬',
	0x78: '│',
	0x79: '≤',
	0x7A: '≥',
	0x7B: 'π',
	0x7C: '≠',
	0x7D: '£',
	0x7E: '·',
}

// mapByte returns the mapped rune for byte b under designation d, or 0 if
// d has no override for b (caller should pass the byte through as-is).
func mapByte(d Designation, b byte) rune {
	if d == DesignationDECSpecialGraphics {
		if r, ok := decSpecialGraphics[b]; ok {
			return r
		}
		return 0
	}
	if d == DesignationDECSupplemental {
		// DEC Supplemental is GR-resident in real hardware; when designated
		// into a GL slot (as some hosts do) this approximates it as the
		// Latin-1 Supplement block.
		if b >= 0x20 && b <= 0x7F {
			return rune(b) + 0x80
		}
		return 0
	}
	for _, r := range nationalTables[d] {
		if r.pos == b {
			return r.char
		}
	}
	return 0
}

// CharsetState is the four-graphic-set, GL/GR-addressed character mapping
// component (C4).
type CharsetState struct {
	slots      [4]Designation
	gl, gr     int
	glOverride int // -1 if none
}

// NewCharsetState returns slots all set to ASCII except G1, which defaults
// to DEC Special Graphics (matching real VT220 firmware at power-up),
// GL=G0, GR=G0, no override pending.
func NewCharsetState() CharsetState {
	cs := CharsetState{gl: 0, gr: 0, glOverride: -1}
	cs.slots[1] = DesignationDECSpecialGraphics
	return cs
}

// Designate loads designation into graphic-set slot (0..3).
func (cs *CharsetState) Designate(slot int, d Designation) {
	if slot < 0 || slot > 3 {
		return
	}
	cs.slots[slot] = d
}

// SetGL selects which slot GL reads from.
func (cs *CharsetState) SetGL(slot int) {
	if slot >= 0 && slot <= 3 {
		cs.gl = slot
	}
}

// SetGR selects which slot GR reads from.
func (cs *CharsetState) SetGR(slot int) {
	if slot >= 0 && slot <= 3 {
		cs.gr = slot
	}
}

// OverrideGL arms a one-shot GL override (SS2/SS3), consumed by the next
// mapped character.
func (cs *CharsetState) OverrideGL(slot int) {
	if slot >= 0 && slot <= 3 {
		cs.glOverride = slot
	}
}

// GL returns the currently selected GL slot index.
func (cs *CharsetState) GL() int { return cs.gl }

// GR returns the currently selected GR slot index.
func (cs *CharsetState) GR() int { return cs.gr }

// Slot returns the designation currently loaded into slot (0..3).
func (cs *CharsetState) Slot(slot int) Designation {
	if slot < 0 || slot > 3 {
		return DesignationASCII
	}
	return cs.slots[slot]
}

// Map applies the graphic-set mapping rule to an incoming byte, consuming
// any pending one-shot GL override. C0/C1 control bytes pass through
// unmapped, since the caller routes those separately.
func (cs *CharsetState) Map(b byte) rune {
	switch {
	case b <= 0x1F || (b >= 0x80 && b <= 0x9F):
		return rune(b)
	case b >= 0x20 && b <= 0x7F:
		slot := cs.gl
		if cs.glOverride >= 0 {
			slot = cs.glOverride
			cs.glOverride = -1
		}
		if r := mapByte(cs.slots[slot], b); r != 0 {
			return r
		}
		return rune(b)
	default: // 0xA0..0xFF
		if r := mapByte(cs.slots[cs.gr], b); r != 0 {
			return r
		}
		return rune(b)
	}
}
