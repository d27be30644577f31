package vt220

// SnapshotDetail selects how much information Render includes about each
// line.
type SnapshotDetail int

const (
	// DetailText includes only plain line text.
	DetailText SnapshotDetail = iota
	// DetailStyled includes runs of cells sharing the same attributes.
	DetailStyled
)

// SnapshotLine is one row of a rendered snapshot.
type SnapshotLine struct {
	Text     string
	Segments []SnapshotSegment // nil unless detail is DetailStyled
}

// SnapshotSegment is a run of consecutive cells sharing one attribute word.
type SnapshotSegment struct {
	Text string
	Fg   string // hex, e.g. "#e5e5e5"
	Bg   string
	Bold, Italic, Underline, Reverse, Hidden bool
}

// RenderSnapshot is a full, render-ready capture of the active screen.
type RenderSnapshot struct {
	Width, Height int
	CursorX       int
	CursorY       int
	CursorVisible bool
	Lines         []SnapshotLine
}

// Render builds a RenderSnapshot of the terminal's active buffer at the
// requested detail level. Unlike Snapshot, which hands back raw Cell
// values for a caller that already understands Attrs, Render resolves
// colors and attribute flags into renderer-friendly strings.
func (t *Terminal) Render(detail SnapshotDetail) RenderSnapshot {
	cells, _ := t.Snapshot()
	out := RenderSnapshot{
		Width:         t.width,
		Height:        t.height,
		CursorX:       t.cursor.X,
		CursorY:       t.cursor.Y,
		CursorVisible: t.cursor.Visible,
		Lines:         make([]SnapshotLine, t.height),
	}
	for y := 0; y < t.height; y++ {
		row := cells[y*t.width : (y+1)*t.width]
		out.Lines[y] = renderLine(row, detail)
	}
	return out
}

func renderLine(row []Cell, detail SnapshotDetail) SnapshotLine {
	runes := make([]rune, len(row))
	for i, c := range row {
		runes[i] = c.Char
	}
	line := SnapshotLine{Text: string(runes)}
	if detail == DetailStyled {
		line.Segments = segmentLine(row)
	}
	return line
}

// segmentLine groups consecutive cells with identical attributes into
// segments, the way a renderer wants to paint runs of text in one style
// rather than cell by cell.
func segmentLine(row []Cell) []SnapshotSegment {
	var segs []SnapshotSegment
	var cur *SnapshotSegment
	var curAttrs Attrs
	var chars []rune
	haveCur := false

	flush := func() {
		if haveCur {
			cur.Text = string(chars)
			segs = append(segs, *cur)
		}
	}

	for _, c := range row {
		if !haveCur || curAttrs != c.Attrs {
			flush()
			seg := segmentFor(c.Attrs)
			cur = &seg
			curAttrs = c.Attrs
			chars = chars[:0]
			haveCur = true
		}
		chars = append(chars, c.Char)
	}
	flush()
	return segs
}

func segmentFor(a Attrs) SnapshotSegment {
	return SnapshotSegment{
		Fg:        ResolveForeground(a.Fg()).Hex(),
		Bg:        ResolveBackground(a.Bg()).Hex(),
		Bold:      a.Has(AttrBold),
		Italic:    a.Has(AttrItalic),
		Underline: a.Has(AttrUnderline),
		Reverse:   a.Has(AttrReverse),
		Hidden:    a.Has(AttrHidden),
	}
}
