package vt220

import "fmt"

// param1 returns params[i], defaulting a missing or zero value to 1 (the
// convention most cursor-motion and count parameters use).
func param1(params []int, i int) int {
	if i >= len(params) || params[i] == 0 {
		return 1
	}
	return params[i]
}

// paramOr returns params[i], or def if the slice is too short.
func paramOr(params []int, i int, def int) int {
	if i >= len(params) {
		return def
	}
	return params[i]
}

func containsParam(params []int, v int) bool {
	for _, p := range params {
		if p == v {
			return true
		}
	}
	return false
}

// CSI executes a decoded Control Sequence.
func (t *Terminal) CSI(ev CSIEvent) {
	// REP (plain 'b', no designator) is the one CSI that consumes
	// last_written_char rather than invalidating it; every other dispatch
	// clears it, matching the C0 control reset in Control.
	if !(ev.Designator == 0 && ev.Final == 'b') {
		t.haveLastWriter = false
	}

	switch ev.Designator {
	case '?':
		t.csiPrivate(ev)
		return
	case '!':
		if ev.Final == 'p' {
			t.resetModesSoft()
		}
		return
	case '"':
		switch ev.Final {
		case 'p':
			t.decscl(ev.Params)
		case 'q':
			t.decsca(ev.Params)
		}
		return
	case '$':
		// DECCARA and the rectangular-area family: grammar recognized,
		// payload ignored.
		return
	case '>':
		if ev.Final == 'c' {
			t.respondSecondaryDA()
		}
		return
	}

	switch ev.Final {
	case '@': // ICH
		n := param1(ev.Params, 0)
		t.active().InsertChars(t.idx(), ' ', t.attrs, n)
	case 'A': // CUU, or SL (scroll left) when designator is SPACE
		n := param1(ev.Params, 0)
		if ev.Designator == ' ' {
			t.scrollLeft(n)
		} else {
			t.moveCursor(0, -n)
		}
	case 'B': // CUD
		t.moveCursor(0, param1(ev.Params, 0))
	case 'C': // CUF
		t.moveCursor(param1(ev.Params, 0), 0)
	case 'D': // CUB
		t.moveCursor(-param1(ev.Params, 0), 0)
	case 'E': // CNL
		t.moveCursor(0, param1(ev.Params, 0))
		t.cursor.X = 0
	case 'F': // CPL
		t.moveCursor(0, -param1(ev.Params, 0))
		t.cursor.X = 0
	case 'G', '`': // CHA / HPA
		col := param1(ev.Params, 0) - 1
		t.cursor.X = clampInt(col, 0, t.width-1)
		t.wrapped = false
	case 'H', 'f': // CUP / HVP
		t.cup(ev.Params)
	case 'I': // CHT
		n := param1(ev.Params, 0)
		for i := 0; i < n; i++ {
			t.cursor.X = t.tab.NextTab(t.cursor.X + 1)
		}
	case 'J': // ED
		mode := paramOr(ev.Params, 0, 0)
		t.active().EraseScreen(mode, t.idx(), t.eraseUnprotectedOk)
	case 'K': // EL
		mode := paramOr(ev.Params, 0, 0)
		t.active().EraseLine(mode, t.idx(), t.eraseUnprotectedOk)
	case 'L': // IL
		n := param1(ev.Params, 0)
		if t.cursor.Y >= t.firstScrollLine && t.cursor.Y <= t.lastScrollLine {
			t.active().ScrollDown(t.cursor.Y, t.lastScrollLine+1, n)
		}
	case 'M': // DL
		n := param1(ev.Params, 0)
		if t.cursor.Y >= t.firstScrollLine && t.cursor.Y <= t.lastScrollLine {
			t.active().ScrollUp(t.cursor.Y, t.lastScrollLine+1, n)
		}
	case 'P': // DCH
		n := param1(ev.Params, 0)
		t.active().DeleteChars(t.idx(), n)
	case 'S': // SU
		t.scrollUpRegion(param1(ev.Params, 0))
	case 'T': // SD
		t.scrollDownRegion(param1(ev.Params, 0))
	case 'X': // ECH
		n := param1(ev.Params, 0)
		t.active().EraseChars(t.idx(), n)
	case 'Z': // CBT
		n := param1(ev.Params, 0)
		for i := 0; i < n; i++ {
			t.cursor.X = t.tab.PreviousTab(t.cursor.X)
		}
	case 'a': // HPR
		t.moveCursor(param1(ev.Params, 0), 0)
	case 'b': // REP
		n := param1(ev.Params, 0)
		if t.haveLastWriter {
			for i := 0; i < n; i++ {
				t.writeChar(t.lastWrittenChar)
			}
		}
	case 'c': // Primary DA
		t.respondPrimaryDA()
	case 'd': // VPA
		row := param1(ev.Params, 0) - 1
		lo, hi := t.verticalClamp()
		if t.originMode {
			row += t.firstScrollLine
		}
		t.cursor.Y = clampInt(row, lo, hi)
	case 'e': // VPR
		t.moveCursor(0, param1(ev.Params, 0))
	case 'g': // TBC
		mode := paramOr(ev.Params, 0, 0)
		switch mode {
		case 0:
			t.tab.Clear(t.cursor.X)
		case 3:
			t.tab.ClearAll()
		default:
			t.logger.Debug("vt220: unknown TBC mode", "mode", mode)
		}
	case 'h': // SM
		t.setAnsiMode(ev.Params, true)
	case 'j': // HPB
		t.moveCursor(-param1(ev.Params, 0), 0)
	case 'k': // VPB
		t.moveCursor(0, -param1(ev.Params, 0))
	case 'l': // RM
		t.setAnsiMode(ev.Params, false)
	case 'm': // SGR
		t.applySGR(ev.Params)
	case 'n': // DSR
		t.dsr(ev.Params)
	case 'r': // DECSTBM
		t.decstbm(ev.Params)
	case 's': // Save DEC private modes (no designator form)
		t.saveDECPrivateModes()
	case 't': // window manipulation
		t.windowManipulation(ev.Params)
	case 'x': // DECREQTPARM
		n := paramOr(ev.Params, 0, 0)
		t.writeResponse(fmt.Sprintf("%s%d;1;1;112;112;1;0x", t.csiIntro(), n+2))
	default:
		t.logger.Debug("vt220: unrecognized CSI final byte", "final", string(ev.Final))
	}
}

// verticalClamp returns the row range cursor motion must stay within: the
// scroll region when origin mode is set, the whole screen otherwise (DEC
// origin mode off means addressing is absolute).
func (t *Terminal) verticalClamp() (lo, hi int) {
	if t.originMode {
		return t.firstScrollLine, t.lastScrollLine
	}
	return 0, t.height - 1
}

func (t *Terminal) moveCursor(dx, dy int) {
	lo, hi := t.verticalClamp()
	t.cursor.X = clampInt(t.cursor.X+dx, 0, t.width-1)
	t.cursor.Y = clampInt(t.cursor.Y+dy, lo, hi)
	t.wrapped = false
}

func (t *Terminal) cup(params []int) {
	row := param1(params, 0) - 1
	col := param1(params, 1) - 1
	lo, hi := t.verticalClamp()
	if t.originMode {
		row += t.firstScrollLine
	}
	t.cursor.Y = clampInt(row, lo, hi)
	t.cursor.X = clampInt(col, 0, t.width-1)
	t.wrapped = false
}

func (t *Terminal) decstbm(params []int) {
	top := param1(params, 0)
	bottom := paramOr(params, 1, 0)
	if bottom == 0 {
		bottom = t.height
	}
	if bottom <= top {
		return // Invalid-argument contract: silently ignored
	}
	t.firstScrollLine = clampInt(top-1, 0, t.height-1)
	t.lastScrollLine = clampInt(bottom-1, 0, t.height-1)
	t.cursor.X, t.cursor.Y = 0, t.firstScrollLine
	t.wrapped = false
}

func (t *Terminal) decscl(params []int) {
	level := paramOr(params, 0, 61) - 60
	if level < 1 {
		level = 1
	}
	t.conformanceLevel = level
	p2 := paramOr(params, 1, 0)
	t.eightBitResponses = p2 == 0 || p2 == 2
}

func (t *Terminal) decsca(params []int) {
	if paramOr(params, 0, 0) == 1 {
		t.attrs = t.attrs.Set(AttrProtected)
	} else {
		t.attrs = t.attrs.Clear(AttrProtected)
	}
}

func (t *Terminal) dsr(params []int) {
	switch paramOr(params, 0, 0) {
	case 5:
		t.writeResponse(t.csiIntro() + "0n")
	case 6:
		t.writeResponse(fmt.Sprintf("%s%d;%dR", t.csiIntro(), t.cursor.Y+1, t.cursor.X+1))
	default:
		t.logger.Debug("vt220: unknown DSR code", "code", paramOr(params, 0, 0))
	}
}

func (t *Terminal) windowManipulation(params []int) {
	selector := paramOr(params, 0, 0)
	switch selector {
	case 4, 8:
		// Resizing the frontend in pixels/chars has no effect without a
		// mutable frontend hook; the size advisor is read-only.
	case 11:
		t.writeResponse(t.csiIntro() + "1t")
	case 13:
		t.writeResponse(t.csiIntro() + "3;0;0t")
	case 14:
		cw, ch := t.sizeAdvisor.CellSizePixels()
		t.writeResponse(fmt.Sprintf("%s4;%d;%dt", t.csiIntro(), ch*t.height, cw*t.width))
	case 18, 19:
		t.writeResponse(fmt.Sprintf("%s8;%d;%dt", t.csiIntro(), t.height, t.width))
	case 20:
		t.writeResponse("\x1b]L\x1b\\")
	case 21:
		t.writeResponse("\x1b]l\x1b\\")
	default:
		if selector >= 24 {
			t.Resize(t.width, selector)
		} else {
			t.logger.Debug("vt220: unknown window manipulation selector", "selector", selector)
		}
	}
}

// csiPrivate handles sequences with the DEC-private '?' designator: DECSET/
// DECRST, DECSED/DECSEL, DECSDSR, and the save/restore of private modes.
func (t *Terminal) csiPrivate(ev CSIEvent) {
	switch ev.Final {
	case 'h':
		for _, m := range ev.Params {
			t.setPrivateMode(m, true)
		}
	case 'l':
		for _, m := range ev.Params {
			t.setPrivateMode(m, false)
		}
	case 'J': // DECSED: like ED, but always keeps protected cells
		mode := paramOr(ev.Params, 0, 0)
		t.active().EraseScreen(mode, t.idx(), true)
	case 'K': // DECSEL: like EL, but always keeps protected cells
		mode := paramOr(ev.Params, 0, 0)
		t.active().EraseLine(mode, t.idx(), true)
	case 'n':
		t.decsdsr(ev.Params)
	case 's':
		t.saveDECPrivateModes()
	case 'r':
		t.restoreDECPrivateModes()
	default:
		t.logger.Debug("vt220: unrecognized private CSI final byte", "final", string(ev.Final))
	}
}

func (t *Terminal) decsdsr(params []int) {
	switch paramOr(params, 0, 0) {
	case 6:
		t.writeResponse(fmt.Sprintf("%s?%d;%dR", t.csiIntro(), t.cursor.Y+1, t.cursor.X+1))
	case 15:
		t.writeResponse(t.csiIntro() + "?13n") // printer not ready
	case 25:
		t.writeResponse(t.csiIntro() + "?21n") // UDK locked
	case 26:
		t.writeResponse(t.csiIntro() + "?27;1n") // North American keyboard
	default:
		t.logger.Debug("vt220: unknown DECSDSR code", "code", paramOr(params, 0, 0))
	}
}

func (t *Terminal) setPrivateMode(mode int, enable bool) {
	switch mode {
	case 1: // DECCKM
		t.appCursorKeys = enable
	case 2: // DECANM
		t.vt52 = !enable
		t.parser.SetVT52(t.vt52)
	case 3: // DECCOLM
		if t.cols132Enable {
			newWidth := 80
			if enable {
				newWidth = 132
			}
			t.setColumns(newWidth)
		}
	case 5: // DECSCNM
		t.reverseVideo = enable
	case 6: // DECOM
		t.originMode = enable
	case 7: // DECAWM
		t.autoWrap = enable
	case 8: // DECARM
		// accepted, no repeat-generation effect in a pure core
	case 25: // DECTCEM
		t.cursor.Visible = enable
	case 40: // allow 80/132 switching
		t.cols132Enable = enable
	case 45: // reverse-wraparound
		t.reverseWrap = enable
	case 47:
		t.setAltScreen(enable, false, false)
	case 1047:
		t.setAltScreen(enable, true, false)
	case 1049:
		t.setAltScreen(enable, true, true)
	default:
		t.logger.Debug("vt220: unknown DEC private mode", "mode", mode)
	}
}

func (t *Terminal) setColumns(newWidth int) {
	t.width = newWidth
	t.primary = NewBuffer(newWidth, t.height)
	t.alternate = NewBuffer(newWidth, t.height)
	t.tab = NewTabulator(newWidth)
	t.firstScrollLine, t.lastScrollLine = 0, t.height-1
	t.cursor.X, t.cursor.Y = 0, 0
	t.wrapped = false
	t.cols132 = newWidth == 132
	t.sink.OnResize(newWidth, t.height)
}

func (t *Terminal) setAltScreen(enable, clearOnSwitch, saveCursor bool) {
	_ = clearOnSwitch
	if enable && !t.usingAlt {
		if saveCursor {
			t.saveCursor()
		}
		t.alternate = NewBuffer(t.width, t.height)
		t.usingAlt = true
	} else if !enable && t.usingAlt {
		t.usingAlt = false
		if saveCursor {
			t.restoreCursor()
		}
	}
}

// decPrivateModeList is the fixed set of DEC private modes save/restore (CSI
// ? Pm s / CSI ? Pm r) tracks; large enough to cover every mode this core
// implements.
var decPrivateModeList = []int{1, 2, 3, 5, 6, 7, 8, 25, 40, 45, 47, 1047, 1049}

func (t *Terminal) saveDECPrivateModes() {
	t.savedPrivateModes = make(map[int]bool, len(decPrivateModeList))
	for _, m := range decPrivateModeList {
		t.savedPrivateModes[m] = t.privateModeValue(m)
	}
}

func (t *Terminal) restoreDECPrivateModes() {
	for _, m := range decPrivateModeList {
		if v, ok := t.savedPrivateModes[m]; ok {
			t.setPrivateMode(m, v)
		}
	}
}

func (t *Terminal) privateModeValue(mode int) bool {
	switch mode {
	case 1:
		return t.appCursorKeys
	case 2:
		return !t.vt52
	case 3:
		return t.cols132
	case 5:
		return t.reverseVideo
	case 6:
		return t.originMode
	case 7:
		return t.autoWrap
	case 8:
		return true
	case 25:
		return t.cursor.Visible
	case 40:
		return t.cols132Enable
	case 45:
		return t.reverseWrap
	case 47, 1047, 1049:
		return t.usingAlt
	}
	return false
}

// setAnsiMode applies the ANSI (non-DEC-private) SM/RM modes this core
// implements: 4 (insert/replace), 6 (erasure mode), 20 (auto-newline).
func (t *Terminal) setAnsiMode(params []int, enable bool) {
	for _, m := range params {
		switch m {
		case 4:
			t.insertMode = enable
		case 6:
			t.eraseUnprotectedOk = enable
		case 20:
			t.autoNewline = enable
		default:
			t.logger.Debug("vt220: unknown ANSI mode", "mode", m)
		}
	}
}

// applySGR applies a sequence of SGR parameters to the current attribute
// word, in order.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	hasCode8 := containsParam(params, 8)

	for _, n := range params {
		switch {
		case n == 0:
			if t.attrs.Has(AttrHidden) && !hasCode8 {
				t.attrs = t.attrs.Clear(AttrHidden).Clear(AttrReverse)
			}
			t.attrs = t.attrs.ResetAll()
		case n == 1:
			t.attrs = t.attrs.Set(AttrBold)
		case n == 4:
			t.attrs = t.attrs.Set(AttrUnderline)
		case n == 5:
			t.attrs = t.attrs.Set(AttrItalic)
		case n == 7:
			t.attrs = t.attrs.Set(AttrReverse)
		case n == 8:
			t.attrs = t.attrs.Set(AttrHidden)
		case n == 21 || n == 22:
			t.attrs = t.attrs.Clear(AttrBold)
		case n == 24:
			t.attrs = t.attrs.Clear(AttrUnderline)
		case n == 25:
			t.attrs = t.attrs.Clear(AttrItalic)
		case n == 27:
			t.attrs = t.attrs.Clear(AttrReverse)
		case n == 28:
			t.attrs = t.attrs.Clear(AttrHidden)
		case n >= 30 && n <= 37:
			t.attrs = t.attrs.WithFg(n - 29)
		case n == 39:
			t.attrs = t.attrs.Reset().WithFg(0)
		case n >= 40 && n <= 47:
			t.attrs = t.attrs.WithBg(n - 39)
		case n == 49:
			t.attrs = t.attrs.Reset().WithBg(0)
		default:
			t.logger.Debug("vt220: unknown SGR code", "code", n)
		}
	}
}
