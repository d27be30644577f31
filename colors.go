package vt220

// RGB is a plain 8-bit-per-channel color, used only to resolve an Attrs
// palette index into something a renderer can paint. The core never
// stores RGB itself; Attrs carries a 5-bit index instead.
type RGB struct {
	R, G, B uint8
}

// palette holds the sixteen standard ANSI colors at indices 0-15.
// Index 0 of Attrs.Fg()/Attrs.Bg() means "use the default," and a
// non-zero index n selects palette[n-1], so the SGR codes 30-37/40-47
// (indices 1-8, see applySGR) land on palette[0..7]; the bright entries
// 8-15 are not reached by that path.
var palette = [16]RGB{
	{0, 0, 0},       // 0 Black
	{205, 49, 49},   // 1 Red
	{13, 188, 121},  // 2 Green
	{229, 229, 16},  // 3 Yellow
	{36, 114, 200},  // 4 Blue
	{188, 63, 188},  // 5 Magenta
	{17, 168, 205},  // 6 Cyan
	{229, 229, 229}, // 7 White
	{102, 102, 102}, // 8 Bright Black
	{241, 76, 76},   // 9 Bright Red
	{35, 209, 139},  // 10 Bright Green
	{245, 245, 67},  // 11 Bright Yellow
	{59, 142, 234},  // 12 Bright Blue
	{214, 112, 214}, // 13 Bright Magenta
	{41, 184, 219},  // 14 Bright Cyan
	{255, 255, 255}, // 15 Bright White
}

// DefaultForeground is the color an unattributed cell is painted with.
var DefaultForeground = RGB{229, 229, 229}

// DefaultBackground is the color an unattributed cell's background is
// painted with.
var DefaultBackground = RGB{0, 0, 0}

// ResolveForeground maps an Attrs foreground index (as returned by
// Attrs.Fg) to a color, honoring index 0 as the default.
func ResolveForeground(index int) RGB {
	if index == 0 {
		return DefaultForeground
	}
	return palette[(index-1)&0xF]
}

// ResolveBackground maps an Attrs background index (as returned by
// Attrs.Bg) to a color, honoring index 0 as the default.
func ResolveBackground(index int) RGB {
	if index == 0 {
		return DefaultBackground
	}
	return palette[(index-1)&0xF]
}

// Hex renders the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	const hexDigits = "0123456789abcdef"
	buf := [7]byte{'#'}
	put := func(off int, v uint8) {
		buf[off] = hexDigits[v>>4]
		buf[off+1] = hexDigits[v&0xF]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(buf[:])
}
