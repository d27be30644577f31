package vt220

import "testing"

func TestNewBufferBlank(t *testing.T) {
	b := NewBuffer(5, 3)
	if b.Width() != 5 || b.Height() != 3 {
		t.Fatalf("dims = %dx%d, want 5x3", b.Width(), b.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if !b.CellAtXY(x, y).IsBlank() {
				t.Fatalf("cell (%d,%d) not blank", x, y)
			}
		}
	}
}

func TestNewBufferClampsNonPositive(t *testing.T) {
	b := NewBuffer(0, -3)
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("dims = %dx%d, want 1x1", b.Width(), b.Height())
	}
}

func TestBufferWriteCharAdvances(t *testing.T) {
	b := NewBuffer(5, 2)
	idx, wrapped := b.WriteChar(0, 'A', 0, 0, 1, true)
	if idx != 1 || wrapped {
		t.Errorf("WriteChar = (%d, %v), want (1, false)", idx, wrapped)
	}
	if b.CellAt(0).Char != 'A' {
		t.Errorf("cell 0 = %q, want 'A'", b.CellAt(0).Char)
	}
}

func TestBufferWriteCharLastColumnWrap(t *testing.T) {
	b := NewBuffer(5, 2)
	idx, wrapped := b.WriteChar(4, 'Z', 0, 0, 1, true)
	if idx != 5 || !wrapped {
		t.Errorf("WriteChar at last col = (%d, %v), want (5, true)", idx, wrapped)
	}
}

func TestBufferWriteCharLastColumnNoAutoWrap(t *testing.T) {
	b := NewBuffer(5, 2)
	idx, wrapped := b.WriteChar(4, 'Z', 0, 0, 1, false)
	if idx != 4 || wrapped {
		t.Errorf("WriteChar no-autowrap at last col = (%d, %v), want (4, false)", idx, wrapped)
	}
}

func TestBufferWriteCharScrollsPastRegion(t *testing.T) {
	b := NewBuffer(3, 3)
	b.WriteChar(0, '1', 0, 0, 1, true)
	b.WriteChar(3, '2', 0, 0, 1, true)
	// row 2 (idx 6) is beyond lastScrollLine=1: should scroll region up first
	b.WriteChar(6, '3', 0, 0, 1, true)
	if b.CellAtXY(0, 0).Char != '2' {
		t.Errorf("row 0 after scroll = %q, want '2'", b.CellAtXY(0, 0).Char)
	}
	if b.CellAtXY(0, 1).Char != '3' {
		t.Errorf("row 1 after scroll = %q, want '3'", b.CellAtXY(0, 1).Char)
	}
}

func TestBufferInsertChars(t *testing.T) {
	b := NewBuffer(5, 1)
	for i, ch := range "ABCDE" {
		b.cells[i] = Cell{Char: ch}
	}
	b.InsertChars(1, 'X', 0, 2)
	want := "AXXBC"
	for i, ch := range want {
		if b.CellAt(i).Char != ch {
			t.Errorf("cell %d = %q, want %q", i, b.CellAt(i).Char, ch)
		}
	}
}

func TestBufferInsertCharsClampsAtEdge(t *testing.T) {
	b := NewBuffer(3, 1)
	for i, ch := range "ABC" {
		b.cells[i] = Cell{Char: ch}
	}
	b.InsertChars(1, 'X', 0, 5)
	if b.CellAt(1).Char != 'X' || b.CellAt(2).Char != 'X' {
		t.Errorf("expected cells 1,2 overwritten with X, got %q %q", b.CellAt(1).Char, b.CellAt(2).Char)
	}
}

func TestBufferDeleteChars(t *testing.T) {
	b := NewBuffer(5, 1)
	for i, ch := range "ABCDE" {
		b.cells[i] = Cell{Char: ch}
	}
	b.DeleteChars(1, 2)
	want := "ADE  "
	for i, ch := range want {
		if b.CellAt(i).Char != ch {
			t.Errorf("cell %d = %q, want %q", i, b.CellAt(i).Char, ch)
		}
	}
}

func TestBufferEraseChars(t *testing.T) {
	b := NewBuffer(5, 1)
	for i, ch := range "ABCDE" {
		b.cells[i] = Cell{Char: ch}
	}
	b.EraseChars(1, 2)
	want := "A  DE"
	for i, ch := range want {
		if b.CellAt(i).Char != ch {
			t.Errorf("cell %d = %q, want %q", i, b.CellAt(i).Char, ch)
		}
	}
}

func TestBufferEraseCharsStopsAtLineEnd(t *testing.T) {
	b := NewBuffer(5, 1)
	for i, ch := range "ABCDE" {
		b.cells[i] = Cell{Char: ch}
	}
	b.EraseChars(3, 10)
	if b.CellAt(3).Char != ' ' || b.CellAt(4).Char != ' ' {
		t.Errorf("expected tail blanked, got %q %q", b.CellAt(3).Char, b.CellAt(4).Char)
	}
}

func TestBufferScrollUp(t *testing.T) {
	b := NewBuffer(2, 4)
	for row := 0; row < 4; row++ {
		b.cells[row*2] = Cell{Char: rune('0' + row)}
	}
	b.ScrollUp(0, 4, 1)
	for row := 0; row < 3; row++ {
		want := rune('0' + row + 1)
		if got := b.CellAtXY(0, row).Char; got != want {
			t.Errorf("row %d = %q, want %q", row, got, want)
		}
	}
	if !b.CellAtXY(0, 3).IsBlank() {
		t.Error("expected bottom row blanked after scroll up")
	}
}

func TestBufferScrollDown(t *testing.T) {
	// 5x5 grid, scroll region 0-based rows 1..3 (DECSTBM 2;4 -> top=1,
	// bottom=4 in the half-open [top, bottom) form used by ScrollUp/Down).
	b := NewBuffer(5, 5)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			b.cells[row*5+col] = Cell{Char: rune('0' + row)}
		}
	}
	b.ScrollDown(1, 4, 2)
	if b.CellAtXY(0, 0).Char != '0' {
		t.Errorf("row 0 untouched = %q, want '0'", b.CellAtXY(0, 0).Char)
	}
	if !b.CellAtXY(0, 1).IsBlank() || !b.CellAtXY(0, 2).IsBlank() {
		t.Error("expected rows 1-2 blanked")
	}
	if b.CellAtXY(0, 3).Char != '1' {
		t.Errorf("row 3 = %q, want '1' (shifted down from row 1)", b.CellAtXY(0, 3).Char)
	}
	if b.CellAtXY(0, 4).Char != '4' {
		t.Errorf("row 4 untouched = %q, want '4'", b.CellAtXY(0, 4).Char)
	}
}

func TestBufferEraseLineModes(t *testing.T) {
	mk := func() *Buffer {
		b := NewBuffer(5, 1)
		for i, ch := range "ABCDE" {
			b.cells[i] = Cell{Char: ch}
		}
		return b
	}

	toEnd := mk()
	toEnd.EraseLine(0, 2, false)
	if toEnd.CellAt(1).Char != 'B' || !toEnd.CellAt(2).IsBlank() || !toEnd.CellAt(4).IsBlank() {
		t.Error("mode 0 should erase from idx to end of line")
	}

	fromStart := mk()
	fromStart.EraseLine(1, 2, false)
	if !fromStart.CellAt(0).IsBlank() || !fromStart.CellAt(2).IsBlank() || fromStart.CellAt(3).Char != 'D' {
		t.Error("mode 1 should erase from start of line to idx inclusive")
	}

	whole := mk()
	whole.EraseLine(2, 2, false)
	for i := 0; i < 5; i++ {
		if !whole.CellAt(i).IsBlank() {
			t.Errorf("mode 2 should erase entire line, cell %d not blank", i)
		}
	}
}

func TestBufferEraseLineKeepsProtected(t *testing.T) {
	b := NewBuffer(3, 1)
	b.cells[1] = Cell{Char: 'P', Attrs: Attrs(0).Set(AttrProtected)}
	b.EraseLine(2, 0, true)
	if b.CellAt(1).Char != 'P' {
		t.Error("protected cell should survive erase when keepProtected is true")
	}
	if !b.CellAt(0).IsBlank() || !b.CellAt(2).IsBlank() {
		t.Error("unprotected cells should still be erased")
	}
}

func TestBufferResizePreservesTopLeft(t *testing.T) {
	b := NewBuffer(3, 3)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.cells[row*3+col] = Cell{Char: rune('A' + row*3 + col)}
		}
	}
	b.Resize(2, 2)
	if b.Width() != 2 || b.Height() != 2 {
		t.Fatalf("dims after resize = %dx%d, want 2x2", b.Width(), b.Height())
	}
	if b.CellAtXY(0, 0).Char != 'A' || b.CellAtXY(1, 0).Char != 'B' || b.CellAtXY(0, 1).Char != 'D' {
		t.Error("expected top-left rectangle preserved after shrink")
	}
}

func TestBufferResizeGrowsBlank(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Resize(4, 4)
	if !b.CellAtXY(3, 3).IsBlank() {
		t.Error("expected new cells blank after growing")
	}
}

func TestBufferFillWithE(t *testing.T) {
	b := NewBuffer(2, 2)
	b.FillWithE()
	for i := 0; i < 4; i++ {
		if b.CellAt(i).Char != 'E' {
			t.Errorf("cell %d = %q, want 'E'", i, b.CellAt(i).Char)
		}
	}
}

func TestBufferSnapshotAndClearDirty(t *testing.T) {
	b := NewBuffer(3, 1)
	b.WriteChar(0, 'A', 0, 0, 0, true)
	cells, dirty := b.Snapshot()
	if len(cells) != 3 || len(dirty) != 3 {
		t.Fatalf("snapshot lengths = %d/%d, want 3/3", len(cells), len(dirty))
	}
	if !dirty[0] {
		t.Error("expected cell 0 marked dirty after write")
	}
	b.ClearDirty()
	_, dirty2 := b.Snapshot()
	for i, d := range dirty2 {
		if d {
			t.Errorf("dirty[%d] still set after ClearDirty", i)
		}
	}
}
