package vt220

import "io"

// HostWriter is the collaborator the controller emits response bytes to:
// device-status, cursor-position, and identification replies. Typically
// the write end of a PTY.
type HostWriter = io.Writer

// NoopHostWriter discards all response bytes.
type NoopHostWriter struct{}

func (NoopHostWriter) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider is notified when a BEL control byte is executed. Ringing a
// literal bell is a presentation concern left to the host.
type BellProvider interface {
	Bell()
}

// NoopBell ignores every bell.
type NoopBell struct{}

func (NoopBell) Bell() {}

// ScreenSink is notified once per feed/resize call with the updated cell
// array and a parallel dirty-cell map. Implementations must not call back
// into the controller synchronously.
type ScreenSink interface {
	// OnChange delivers an owned copy of the cells and the dirty map; the
	// controller never hands out references to its internal buffers.
	OnChange(cells []Cell, dirty []bool)
	// OnResize reports new terminal dimensions.
	OnResize(width, height int)
}

// NoopScreenSink ignores every notification.
type NoopScreenSink struct{}

func (NoopScreenSink) OnChange(cells []Cell, dirty []bool) {}
func (NoopScreenSink) OnResize(width, height int)          {}

// SizeAdvisor reports the frontend's maximum terminal dimensions; queried
// when Resize is invoked with zero or negative parameters, and by window
// manipulation sequences that ask for pixel dimensions.
type SizeAdvisor interface {
	MaxTerminalSize() (widthCells, heightCells int)
	// CellSizePixels reports the pixel size of a single cell, used to
	// answer the window-manipulation pixel-size report (CSI 14 t).
	// Implementations with no concept
	// of pixels may return (0, 0).
	CellSizePixels() (width, height int)
}

// NoopSizeAdvisor reports zero in every dimension, signaling "unknown" to
// callers that branch on it.
type NoopSizeAdvisor struct{}

func (NoopSizeAdvisor) MaxTerminalSize() (int, int) { return 0, 0 }
func (NoopSizeAdvisor) CellSizePixels() (int, int)  { return 0, 0 }

// ScrollbackProvider stores lines scrolled off the top of the primary
// buffer. Implementations can use in-memory storage, disk, a database, etc.
type ScrollbackProvider interface {
	Push(line []Cell)
	Len() int
	Line(index int) []Cell
	Clear()
	SetMaxLines(max int)
	MaxLines() int
}

// NoopScrollback discards all scrollback lines; it is the default when no
// scrollback store is installed.
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

var (
	_ HostWriter         = NoopHostWriter{}
	_ BellProvider       = NoopBell{}
	_ ScreenSink         = NoopScreenSink{}
	_ SizeAdvisor        = NoopSizeAdvisor{}
	_ ScrollbackProvider = NoopScrollback{}
)
