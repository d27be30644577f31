package vt220

import (
	"log/slog"
)

// conformance levels accepted by DECSCL (parameter 61..65 map to level 1..5,
// the standard "(60+n)" DECSCL encoding; level 2 is VT220's own identity).
const defaultConformanceLevel = 2

// Option configures a Terminal at construction time, mirroring the
// functional-options pattern used throughout the retrieved corpus.
type Option func(*Terminal)

// WithScreenSink installs the collaborator notified after every Feed/Resize.
func WithScreenSink(sink ScreenSink) Option {
	return func(t *Terminal) {
		if sink != nil {
			t.sink = sink
		}
	}
}

// WithHostWriter installs the collaborator response bytes are written to.
func WithHostWriter(w HostWriter) Option {
	return func(t *Terminal) {
		if w != nil {
			t.host = w
		}
	}
}

// WithSizeAdvisor installs the collaborator queried for frontend dimensions.
func WithSizeAdvisor(a SizeAdvisor) Option {
	return func(t *Terminal) {
		if a != nil {
			t.sizeAdvisor = a
		}
	}
}

// WithScrollback installs a scrollback store for lines scrolled off the top
// of the primary buffer.
func WithScrollback(sb ScrollbackProvider) Option {
	return func(t *Terminal) {
		if sb != nil {
			t.scrollback = sb
		}
	}
}

// WithBellProvider installs the collaborator notified on BEL.
func WithBellProvider(b BellProvider) Option {
	return func(t *Terminal) {
		if b != nil {
			t.bell = b
		}
	}
}

// WithLogger overrides the diagnostic logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.logger = l
		}
	}
}

// Terminal is the terminal controller (C6): it glues parser events to the
// screen buffer, owning the mode bitset, scroll region, current attributes,
// graphic-set state, saved state, tabulator, and cursor.
type Terminal struct {
	width, height int

	primary   *Buffer
	alternate *Buffer
	usingAlt  bool

	cursor  Cursor
	wrapped bool
	attrs   Attrs

	firstScrollLine, lastScrollLine int

	originMode         bool
	reverseVideo       bool
	autoWrap           bool
	autoNewline        bool
	insertMode         bool
	cols132            bool
	cols132Enable      bool
	eightBitResponses  bool
	eraseUnprotectedOk bool // erasure-mode: true = erase unprotected only
	reverseWrap        bool
	appCursorKeys      bool // DECCKM, mode 1
	vt52               bool // DECANM reset
	keypadApp          bool // DECKPAM/DECKPNM, ESC = / ESC >

	charset CharsetState
	tab     *Tabulator
	saved   SavedState

	conformanceLevel  int
	savedPrivateModes map[int]bool

	parser *Parser

	lastWrittenChar rune
	haveLastWriter  bool

	sink        ScreenSink
	host        HostWriter
	sizeAdvisor SizeAdvisor
	scrollback  ScrollbackProvider
	bell        BellProvider

	logger *slog.Logger
}

// New returns a Terminal sized width x height (a non-positive width falls
// back to 80, a non-positive height to 24), initialized to VT220 defaults: cells blank, cursor at (0,0), full-screen
// scroll region, auto-wrap and reverse-wrap on, graphic sets ASCII except
// G1 = DEC Special Graphics.
func New(width, height int, opts ...Option) *Terminal {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	t := &Terminal{
		width:            width,
		height:           height,
		primary:          NewBuffer(width, height),
		alternate:        NewBuffer(width, height),
		cursor:           NewCursor(),
		tab:              NewTabulator(width),
		charset:          NewCharsetState(),
		conformanceLevel: defaultConformanceLevel,
		parser:           NewParser(),
		sink:             NoopScreenSink{},
		host:             NoopHostWriter{},
		sizeAdvisor:      NoopSizeAdvisor{},
		scrollback:       NoopScrollback{},
		bell:             NoopBell{},
		logger:           slog.Default(),
	}
	t.resetModesSoft()
	t.lastScrollLine = height - 1
	t.attrs = 0

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// resetModesSoft applies DECSTR's soft-reset mode defaults and resets the
// graphic sets and attributes and re-takes the saved state; tab stops are
// left as they are. Used by both the
// soft reset (DECSTR) and, as the first half of a hard reset (RIS), by
// Reset.
func (t *Terminal) resetModesSoft() {
	t.cursor.Visible = true
	t.insertMode = false
	t.originMode = false
	t.firstScrollLine, t.lastScrollLine = 0, t.height-1
	t.autoWrap = true
	t.reverseWrap = true
	t.appCursorKeys = false
	t.eightBitResponses = false
	t.cols132 = false
	t.cols132Enable = true
	t.reverseVideo = false
	t.eraseUnprotectedOk = true
	t.autoNewline = false
	t.vt52 = false
	t.keypadApp = false
	t.charset = NewCharsetState()
	t.attrs = t.attrs.ResetAll()
	t.wrapped = false
	t.parser.SetVT52(false)
	t.saveCursor()
}

func (t *Terminal) active() *Buffer {
	if t.usingAlt {
		return t.alternate
	}
	return t.primary
}

// idx returns the cursor's current absolute buffer index.
func (t *Terminal) idx() int { return t.cursor.Y*t.width + t.cursor.X }

// setFromIdx updates the cursor's (X, Y) from an absolute index, clamped
// into the grid.
func (t *Terminal) setFromIdx(idx int) {
	last := t.width*t.height - 1
	if idx < 0 {
		idx = 0
	}
	if idx > last {
		idx = last
	}
	t.cursor.Y = idx / t.width
	t.cursor.X = idx % t.width
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Feed decodes data and applies every complete event to the terminal
// state, then delivers one screen-sink notification. Returns the count of
// bytes fully consumed; the caller is responsible for retaining and
// re-submitting any unconsumed tail.
func (t *Terminal) Feed(data []byte) int {
	consumed := t.parser.Feed(data, t)
	t.commit()
	return consumed
}

// commit delivers the post-feed screen-sink notification and clears the
// dirty map.
func (t *Terminal) commit() {
	cells, dirty := t.active().Snapshot()
	t.sink.OnChange(cells, dirty)
	t.active().ClearDirty()
}

// Resize changes the terminal's dimensions, preserving the top-left
// rectangle of content. Zero or negative parameters query the installed
// size advisor; if the advisor also returns non-positive values the
// existing dimensions are kept.
func (t *Terminal) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		aw, ah := t.sizeAdvisor.MaxTerminalSize()
		if width <= 0 {
			width = aw
		}
		if height <= 0 {
			height = ah
		}
	}
	if width <= 0 {
		width = t.width
	}
	if height <= 0 {
		height = t.height
	}

	t.primary.Resize(width, height)
	t.alternate.Resize(width, height)
	t.width, t.height = width, height
	t.tab.Resize(width)
	t.firstScrollLine, t.lastScrollLine = 0, height-1
	t.cursor.X = clampInt(t.cursor.X, 0, width-1)
	t.cursor.Y = clampInt(t.cursor.Y, 0, height-1)
	t.wrapped = false

	t.sink.OnResize(width, height)
	t.commit()
}

// Reset performs a hard reset (RIS): soft reset, erase the whole screen,
// home the cursor.
func (t *Terminal) Reset() {
	t.resetModesSoft()
	t.active().EraseScreen(2, 0, false)
	t.cursor.X, t.cursor.Y = 0, 0
	t.wrapped = false
	t.commit()
}

// SetScreenSink installs sink, replacing any previous one.
func (t *Terminal) SetScreenSink(sink ScreenSink) {
	if sink == nil {
		sink = NoopScreenSink{}
	}
	t.sink = sink
}

// SetHostWriter installs w, replacing any previous one.
func (t *Terminal) SetHostWriter(w HostWriter) {
	if w == nil {
		w = NoopHostWriter{}
	}
	t.host = w
}

// SetSizeAdvisor installs a, replacing any previous one.
func (t *Terminal) SetSizeAdvisor(a SizeAdvisor) {
	if a == nil {
		a = NoopSizeAdvisor{}
	}
	t.sizeAdvisor = a
}

// GetCell returns the cell at (x, y), clamped into range.
func (t *Terminal) GetCell(x, y int) Cell {
	return t.active().CellAtXY(x, y)
}

// GetCursor returns a copy of the current cursor.
func (t *Terminal) GetCursor() Cursor {
	return t.cursor
}

// GetDimensions returns the terminal's current width and height.
func (t *Terminal) GetDimensions() (width, height int) {
	return t.width, t.height
}

// Snapshot returns a clone of the active buffer's cells and dirty map.
func (t *Terminal) Snapshot() (cells []Cell, dirty []bool) {
	return t.active().Snapshot()
}

// ApplicationCursorKeys reports whether DECCKM (mode 1) is set, the signal
// a keyboard-to-byte mapper outside the core uses to choose cursor-key
// encodings.
func (t *Terminal) ApplicationCursorKeys() bool { return t.appCursorKeys }

// ApplicationKeypad reports whether DECKPAM (ESC =) is the active keypad
// mode, as opposed to DECKPNM (ESC >).
func (t *Terminal) ApplicationKeypad() bool { return t.keypadApp }

// ReverseVideo reports whether DECSCNM (mode 5) is set.
func (t *Terminal) ReverseVideo() bool { return t.reverseVideo }

// ConformanceLevel reports the level selected by DECSCL (2 = VT220, the
// default).
func (t *Terminal) ConformanceLevel() int { return t.conformanceLevel }

// LineContent returns the text of row y as a string of its cells' runes,
// trailing blanks included. A read-only convenience for hosts needing to
// pull text (search, copy) without reimplementing cell iteration.
func (t *Terminal) LineContent(y int) string {
	if y < 0 || y >= t.height {
		return ""
	}
	buf := t.active()
	runes := make([]rune, t.width)
	for x := 0; x < t.width; x++ {
		runes[x] = buf.CellAtXY(x, y).Char
	}
	return string(runes)
}

// String renders the whole visible grid as newline-joined rows.
func (t *Terminal) String() string {
	out := make([]byte, 0, (t.width+1)*t.height)
	for y := 0; y < t.height; y++ {
		out = append(out, []byte(t.LineContent(y))...)
		if y < t.height-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// Search returns the (x, y) of the first occurrence of needle on the
// visible grid, scanning row-major from (0,0); ok is false if not found.
func (t *Terminal) Search(needle string) (x, y int, ok bool) {
	if needle == "" {
		return 0, 0, false
	}
	for row := 0; row < t.height; row++ {
		line := t.LineContent(row)
		runes := []rune(line)
		target := []rune(needle)
		for col := 0; col+len(target) <= len(runes); col++ {
			if string(runes[col:col+len(target)]) == needle {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// SearchScrollback searches the scrollback store (if one is installed) the
// same way Search scans the visible grid, most recent line first.
func (t *Terminal) SearchScrollback(needle string) (line int, ok bool) {
	if needle == "" {
		return 0, false
	}
	n := t.scrollback.Len()
	target := []rune(needle)
	for i := n - 1; i >= 0; i-- {
		cells := t.scrollback.Line(i)
		runes := make([]rune, len(cells))
		for k, c := range cells {
			runes[k] = c.Char
		}
		for col := 0; col+len(target) <= len(runes); col++ {
			if string(runes[col:col+len(target)]) == needle {
				return i, true
			}
		}
	}
	return 0, false
}

// writeResponse sends s to the host writer; csiIntro already folds in the
// 7-bit/8-bit introducer choice for callers building CSI responses.
func (t *Terminal) writeResponse(s string) {
	t.host.Write([]byte(s))
}

func (t *Terminal) csiIntro() string {
	if t.eightBitResponses {
		return "\x9b"
	}
	return "\x1b["
}

// ---- Handler interface (parser -> controller) ----

// PlainChar writes a single mapped character at the cursor, honoring
// insert mode and auto-wrap/scroll, then remembers it for REP.
func (t *Terminal) PlainChar(ch rune) {
	t.writeChar(ch)
}

func (t *Terminal) writeChar(ch rune) {
	mapped := t.charset.Map(byte(ch))
	if ch > 0xFF {
		mapped = ch // genuine Unicode input bypasses the 8-bit charset tables
	}

	if t.wrapped && t.autoWrap && t.width > 1 && t.cursor.X == t.width-1 {
		// A wrap left pending on the bottom-right cell (setFromIdx clamps
		// the cursor there) completes now: move to the start of the next
		// line, scrolling the region when the cursor is on its last line.
		t.lineFeed()
		t.cursor.X = 0
	}

	wide := isWideRune(mapped)
	if wide && !t.insertMode && t.cursor.X == t.width-1 && t.autoWrap {
		// No room for a double-width character in the last column: blank
		// it and wrap first, then place both columns on the fresh row.
		t.active().EraseChars(t.idx(), 1)
		t.lineFeed()
		t.carriageReturn()
	}

	leadAttrs := t.attrs
	if wide {
		leadAttrs = leadAttrs.Set(AttrWide)
	}

	buf := t.active()
	idx := t.idx()
	if t.insertMode {
		buf.InsertChars(idx, mapped, leadAttrs, 1)
		idx++
		if wide {
			buf.InsertChars(idx, ' ', t.attrs.Set(AttrWideContinuation), 1)
			idx++
		}
		t.setFromIdx(idx)
		t.wrapped = false
	} else {
		newIdx, wrapped := buf.WriteChar(idx, mapped, leadAttrs, t.firstScrollLine, t.lastScrollLine, t.autoWrap)
		if wide && !wrapped {
			newIdx, wrapped = buf.WriteChar(newIdx, ' ', t.attrs.Set(AttrWideContinuation), t.firstScrollLine, t.lastScrollLine, t.autoWrap)
		}
		t.setFromIdx(newIdx)
		t.wrapped = wrapped
	}
	t.lastWrittenChar = mapped
	t.haveLastWriter = true
}

// Control executes a C0 control byte.
func (t *Terminal) Control(b byte) {
	t.haveLastWriter = false
	switch b {
	case 0x07: // BEL
		t.bell.Bell()
	case 0x08: // BS
		t.doBackspace()
	case 0x09: // TAB
		t.cursor.X = t.tab.NextTab(t.cursor.X + 1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.lineFeed()
		if t.autoNewline {
			t.carriageReturn()
		}
	case 0x0D: // CR
		t.carriageReturn()
	case 0x0E: // SO
		t.charset.SetGL(1)
	case 0x0F: // SI
		t.charset.SetGL(0)
	default:
		// Other C0 controls (NUL, ENQ, ACK, etc.) have no screen effect.
	}
}

func (t *Terminal) doBackspace() {
	if t.wrapped && (t.autoWrap || t.reverseWrap) {
		t.wrapped = false
		idx := t.idx() - 2
		if idx < t.firstScrollLine*t.width {
			t.cursor.X = t.width - 1
			t.cursor.Y = t.lastScrollLine
			return
		}
		t.setFromIdx(idx)
		return
	}
	if t.cursor.X == 0 {
		if t.reverseWrap && t.cursor.Y > t.firstScrollLine {
			t.cursor.Y--
			t.cursor.X = t.width - 1
		}
		return
	}
	t.cursor.X--
}

func (t *Terminal) lineFeed() {
	t.wrapped = false
	if t.cursor.Y >= t.lastScrollLine {
		t.scrollUpRegion(1)
		return
	}
	t.cursor.Y++
}

func (t *Terminal) carriageReturn() {
	if t.wrapped && t.autoWrap {
		t.setFromIdx(t.idx() - 1)
	}
	t.wrapped = false
	t.cursor.X = 0
}

func (t *Terminal) scrollUpRegion(n int) {
	if t.firstScrollLine == 0 && !t.usingAlt {
		for i := 0; i < n && i < t.lastScrollLine-t.firstScrollLine+1; i++ {
			row := make([]Cell, t.width)
			for x := 0; x < t.width; x++ {
				row[x] = t.active().CellAtXY(x, t.firstScrollLine+i)
			}
			t.scrollback.Push(row)
		}
	}
	t.active().ScrollUp(t.firstScrollLine, t.lastScrollLine+1, n)
}

func (t *Terminal) scrollDownRegion(n int) {
	t.active().ScrollDown(t.firstScrollLine, t.lastScrollLine+1, n)
}

// scrollLeft shifts every line of the scroll region left by n columns (SL),
// padding the right edge with blanks; does not move the cursor.
func (t *Terminal) scrollLeft(n int) {
	buf := t.active()
	for row := t.firstScrollLine; row <= t.lastScrollLine; row++ {
		buf.DeleteChars(row*t.width, n)
	}
}

// Esc executes an ESC-designator event.
func (t *Terminal) Esc(ev EscEvent) {
	t.haveLastWriter = false
	switch ev.Designator {
	case 'D': // IND
		t.lineFeed()
	case 'E': // NEL
		t.lineFeed()
		t.carriageReturn()
	case 'H': // HTS
		t.tab.Set(t.cursor.X)
	case 'M': // RI
		t.wrapped = false
		if t.cursor.Y <= t.firstScrollLine {
			t.scrollDownRegion(1)
		} else {
			t.cursor.Y--
		}
	case 'N': // SS2
		t.charset.OverrideGL(2)
	case 'O': // SS3
		t.charset.OverrideGL(3)
	case 'V': // SPA
		t.attrs = t.attrs.Set(AttrProtected)
	case 'W': // EPA
		t.attrs = t.attrs.Clear(AttrProtected)
	case 'Z': // DECID
		t.respondPrimaryDA()
	case 'c': // RIS
		t.Reset()
	case 'n': // LS2
		t.charset.SetGL(2)
	case 'o': // LS3
		t.charset.SetGL(3)
	case '|': // LS3R
		t.charset.SetGR(3)
	case '}': // LS2R
		t.charset.SetGR(2)
	case '~': // LS1R
		t.charset.SetGR(1)
	case '7': // DECSC
		t.saveCursor()
	case '8': // DECRC
		t.restoreCursor()
	case '=': // DECKPAM
		t.keypadApp = true
	case '>': // DECKPNM
		t.keypadApp = false
	case '(', ')', '*', '+':
		slot := 0
		switch ev.Designator {
		case ')':
			slot = 1
		case '*':
			slot = 2
		case '+':
			slot = 3
		}
		t.charset.Designate(slot, finalByteToDesignation(ev.Final))
	case ' ':
		switch ev.Final {
		case 'G':
			t.eightBitResponses = true
		case 'F':
			t.eightBitResponses = false
		}
	case '#':
		if ev.Final == '8' {
			t.active().FillWithE()
		}
	}
}

// finalByteToDesignation maps an ESC ( ) * + final byte to a Designation.
func finalByteToDesignation(f byte) Designation {
	switch f {
	case 'A':
		return DesignationBritish
	case 'B':
		return DesignationASCII
	case '0':
		return DesignationDECSpecialGraphics
	case '<':
		return DesignationDECSupplemental
	case '4':
		return DesignationDutch
	case '5', 'C':
		return DesignationFinnish
	case 'R':
		return DesignationFrench
	case 'Q':
		return DesignationFrenchCanadian
	case 'K':
		return DesignationGerman
	case 'Y':
		return DesignationItalian
	case 'Z':
		return DesignationSpanish
	case 'H', '7':
		return DesignationSwedish
	case '=':
		return DesignationSwiss
	case 'E', '6':
		return DesignationDanish
	default:
		return DesignationASCII
	}
}

func (t *Terminal) saveCursor() {
	t.saved = SavedState{
		CursorIdx:    t.idx(),
		Attrs:        t.attrs,
		AutoWrap:     t.autoWrap,
		OriginMode:   t.originMode,
		GL:           t.charset.GL(),
		GR:           t.charset.GR(),
		GLOverride:   t.charset.glOverride,
		Designations: [4]Designation{t.charset.Slot(0), t.charset.Slot(1), t.charset.Slot(2), t.charset.Slot(3)},
	}
}

func (t *Terminal) restoreCursor() {
	t.setFromIdx(t.saved.CursorIdx)
	t.attrs = t.saved.Attrs
	t.autoWrap = t.saved.AutoWrap
	t.originMode = t.saved.OriginMode
	t.charset.SetGL(t.saved.GL)
	t.charset.SetGR(t.saved.GR)
	if t.saved.GLOverride >= 0 {
		t.charset.OverrideGL(t.saved.GLOverride)
	}
	for slot, d := range t.saved.Designations {
		t.charset.Designate(slot, d)
	}
	t.wrapped = false
}

// respondPrimaryDA answers a VT220-identity Primary Device Attributes query.
func (t *Terminal) respondPrimaryDA() {
	t.writeResponse(t.csiIntro() + "?62;1;2;4;6;8;9;15c")
}

func (t *Terminal) respondSecondaryDA() {
	t.writeResponse(t.csiIntro() + ">1;123;0c")
}
