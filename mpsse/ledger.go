package mpsse

import "fmt"

// Range is a half-open [Start, End) span of a response buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Of returns the slice of buf covered by the range.
func (r Range) Of(buf []byte) []byte {
	return buf[r.Start:r.End]
}

// String formats the range as "start..end".
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Ledger tracks how many response bytes a command stream will produce.
//
// Each read-producing command calls Advance with its response width. The
// returned range starts at the count before the call, so it indexes that
// command's bytes in the buffer filled by the eventual receive. The count
// only grows.
type Ledger struct {
	n int
}

// Advance records a response of width bytes and returns its range.
func (l *Ledger) Advance(width int) Range {
	r := Range{Start: l.n, End: l.n + width}
	l.n = r.End
	return r
}

// Len returns the total number of response bytes recorded so far. This is the
// size of the buffer the caller must receive into.
func (l *Ledger) Len() int {
	return l.n
}
