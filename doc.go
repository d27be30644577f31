// Package vt220 implements a headless VT220-compatible terminal emulator
// core: a pure, pushable byte-to-screen engine with no rendering, no I/O
// transport, and no keyboard mapping of its own.
//
// # Quick start
//
//	term := vt220.New(80, 24)
//	term.Feed([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(term.String())
//
// # Architecture
//
// The package is built from six components, leaves first: [Cell]/[Attrs]
// (the packed attribute word), [Buffer] (the cell grid), [Tabulator],
// [CharsetState] (the four graphic-set slots), [Parser] (the byte-driven
// sequence decoder), and [Terminal] (the controller gluing the rest
// together). Host code only ever talks to [Terminal].
//
// # Feeding bytes
//
// [Terminal.Feed] decodes as much of its argument as it can and returns the
// number of bytes consumed. A trailing incomplete sequence is not consumed;
// the caller is expected to retain it and prepend it to the next call:
//
//	var pending []byte
//	for chunk := range incoming {
//	    data := append(pending, chunk...)
//	    n := term.Feed(data)
//	    pending = append(pending[:0], data[n:]...)
//	}
//
// # Collaborators
//
// A [Terminal] is configured with functional options at construction:
//
//	term := vt220.New(80, 24,
//	    vt220.WithScreenSink(mySink),
//	    vt220.WithHostWriter(ptyWriter),
//	    vt220.WithSizeAdvisor(myAdvisor),
//	    vt220.WithScrollback(vt220.NewMemoryScrollback(10000)),
//	)
//
// [ScreenSink] is notified once per [Terminal.Feed] call with an owned copy
// of the cell array and a parallel dirty-cell map. [HostWriter] receives
// response bytes (device attributes, cursor-position reports, window
// reports). [SizeAdvisor] is queried when [Terminal.Resize] is called with
// non-positive dimensions. Every collaborator defaults to a no-op
// implementation, so a bare [New] is always safe to feed.
//
// # Thread safety
//
// The core itself is single-threaded and synchronous: all mutation happens
// inside Feed, Resize, or Reset, and nothing in the package blocks or
// yields. Callers that need concurrent access (one task
// feeding bytes, another reading the last snapshot) should place a
// [Terminal] behind their own mutex; [ScreenSink] deliveries already hand
// out owned copies, so the render side never touches internal storage.
package vt220
