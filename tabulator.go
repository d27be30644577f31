package vt220

import "sort"

// Tabulator maintains an ordered set of tab-stop columns plus a default
// step used as a fallback when the set is empty or yields no hit (see
// DESIGN.md for why the sorted-set form was chosen over a fixed bitmap).
type Tabulator struct {
	stops       map[int]struct{}
	defaultStep int
	width       int
}

// NewTabulator returns a tabulator for a row of the given width, with
// stops at every 8th column and a default step of 8.
func NewTabulator(width int) *Tabulator {
	t := &Tabulator{
		stops:       make(map[int]struct{}),
		defaultStep: 8,
		width:       width,
	}
	for col := 0; col < width; col += 8 {
		t.stops[col] = struct{}{}
	}
	return t
}

// Resize updates the width the tabulator clamps against. Existing stops
// beyond the new width are left in the set but are unreachable until a
// grow brings them back into range.
func (t *Tabulator) Resize(width int) {
	t.width = width
}

// Set adds a stop at col.
func (t *Tabulator) Set(col int) {
	if col < 0 {
		return
	}
	t.stops[col] = struct{}{}
}

// Clear removes the stop at col, if any.
func (t *Tabulator) Clear(col int) {
	delete(t.stops, col)
}

// ClearAll removes every stop.
func (t *Tabulator) ClearAll() {
	t.stops = make(map[int]struct{})
}

// SetDefault changes the fallback step used by NextTab when no stop is
// found.
func (t *Tabulator) SetDefault(step int) {
	if step > 0 {
		t.defaultStep = step
	}
}

// sortedStops returns the stop columns in ascending order.
func (t *Tabulator) sortedStops() []int {
	cols := make([]int, 0, len(t.stops))
	for c := range t.stops {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// NextTab returns the least stop >= from if one exists; otherwise, if a
// default step is configured, ceil((from+1)/step)*step; clamped to
// width-1.
func (t *Tabulator) NextTab(from int) int {
	best := -1
	for _, c := range t.sortedStops() {
		if c >= from {
			best = c
			break
		}
	}
	if best < 0 && t.defaultStep > 0 {
		best = ((from+1)+t.defaultStep-1)/t.defaultStep*t.defaultStep
	}
	if best < 0 {
		best = from
	}
	if best > t.width-1 {
		best = t.width - 1
	}
	if best < 0 {
		best = 0
	}
	return best
}

// PreviousTab returns the greatest stop < from, else 0.
func (t *Tabulator) PreviousTab(from int) int {
	best := 0
	stops := t.sortedStops()
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i] < from {
			best = stops[i]
			break
		}
	}
	return best
}

// NextWidth returns the signed gap to the next stop (NextTab(from) - from),
// i.e. how many columns a tab from here would advance.
func (t *Tabulator) NextWidth(from int) int {
	return t.NextTab(from) - from
}

// PrevWidth returns the signed gap to the previous stop
// (PreviousTab(from) - from), which is zero or negative.
func (t *Tabulator) PrevWidth(from int) int {
	return t.PreviousTab(from) - from
}
