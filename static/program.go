package static

import (
	"fmt"

	"github.com/moffa90/go-mpsse/mpsse"
)

// Layout is the result of measuring a command sequence without encoding it.
type Layout struct {
	// Size is the encoded length in bytes
	Size int

	// ReadLen is the number of response bytes the sequence produces
	ReadLen int

	// Reads maps each named command to its response range
	Reads map[string]mpsse.Range
}

// Program is a compiled command sequence.
type Program struct {
	// Bytes is the encoded command stream; len(Bytes) == cap(Bytes)
	Bytes []byte

	// ReadLen is the number of response bytes the stream produces
	ReadLen int

	// Reads maps each named command to its response range
	Reads map[string]mpsse.Range
}

// Index returns the first response byte index of the named command.
func (p *Program) Index(name string) (int, bool) {
	r, ok := p.Reads[name]
	return r.Start, ok
}

// Range returns the response range of the named command.
func (p *Program) Range(name string) (mpsse.Range, bool) {
	r, ok := p.Reads[name]
	return r, ok
}

// Measure computes the encoded size and read layout of cmds. It checks every
// length limit, panicking with a *mpsse.LengthError like the encoders do, and
// returns an error for misused names.
func Measure(cmds ...Command) (Layout, error) {
	var (
		ledger mpsse.Ledger
		size   int
		reads  map[string]mpsse.Range
	)

	for i, c := range cmds {
		encoded, response := c.size()
		size += encoded
		r := ledger.Advance(response)

		if c.name == "" {
			continue
		}
		if !c.reads() {
			return Layout{}, fmt.Errorf("command %d: %q names a command with no response", i, c.name)
		}
		if _, dup := reads[c.name]; dup {
			return Layout{}, fmt.Errorf("command %d: duplicate read name %q", i, c.name)
		}
		if reads == nil {
			reads = make(map[string]mpsse.Range)
		}
		reads[c.name] = r
	}

	return Layout{Size: size, ReadLen: ledger.Len(), Reads: reads}, nil
}

// Compile measures cmds, allocates a buffer of exactly the measured size and
// encodes into it.
//
// Example:
//
//	prog, err := static.Compile(
//	    static.SetGPIOLower(0x00, 0x0B),
//	    static.ClockDataIn(mpsse.DataInMsbPos, 2).As("adc"),
//	    static.GPIOLower().As("pins"),
//	    static.SendImmediate(),
//	)
func Compile(cmds ...Command) (*Program, error) {
	layout, err := Measure(cmds...)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, layout.Size)
	for _, c := range cmds {
		buf = c.encode(buf)
	}
	if len(buf) != layout.Size {
		panic(fmt.Sprintf("static: encoded %d bytes, measured %d", len(buf), layout.Size))
	}

	return &Program{
		Bytes:   buf,
		ReadLen: layout.ReadLen,
		Reads:   layout.Reads,
	}, nil
}

// MustCompile is like Compile but panics on error. It simplifies
// initialization of package-level command sequences.
func MustCompile(cmds ...Command) *Program {
	p, err := Compile(cmds...)
	if err != nil {
		panic("static: Compile: " + err.Error())
	}
	return p
}

// reads reports whether c's kind produces a response.
func (c Command) reads() bool {
	switch c.kind {
	case kindGPIOLower, kindGPIOUpper, kindClockDataIn, kindClockData,
		kindClockBitsIn, kindClockBits, kindClockTMS:
		return true
	}
	return false
}
