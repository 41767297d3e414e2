package static

import (
	"fmt"

	"github.com/moffa90/go-mpsse/mpsse"
)

type kind int

const (
	kindSetGPIOLower kind = iota + 1
	kindSetGPIOUpper
	kindGPIOLower
	kindGPIOUpper
	kindEnableLoopback
	kindDisableLoopback
	kindEnable3Phase
	kindDisable3Phase
	kindEnableAdaptive
	kindDisableAdaptive
	kindSendImmediate
	kindWaitOnIOHigh
	kindWaitOnIOLow
	kindSetClock
	kindClockDataOut
	kindClockDataIn
	kindClockData
	kindClockBitsOut
	kindClockBitsIn
	kindClockBits
	kindClockTMSOut
	kindClockTMS
)

// Command is one MPSSE command in a fixed sequence. Build commands with the
// package functions and pass them to Measure or Compile.
type Command struct {
	kind kind
	mode byte
	a, b byte // GPIO state/direction, or bit data
	n    int  // byte or bit count
	data []byte
	div  uint32
	clk  mpsse.ClockDivide
	tdi  bool
	name string
}

// As names the command's response so Compile records its location in
// Program.Reads. Naming a command that produces no response is an error.
func (c Command) As(name string) Command {
	c.name = name
	return c
}

// Name returns the name given with As.
func (c Command) Name() string {
	return c.name
}

// SetGPIOLower sets state and direction of pins 0-7.
func SetGPIOLower(state, direction byte) Command {
	return Command{kind: kindSetGPIOLower, a: state, b: direction}
}

// SetGPIOUpper sets state and direction of pins 8-15.
func SetGPIOUpper(state, direction byte) Command {
	return Command{kind: kindSetGPIOUpper, a: state, b: direction}
}

// GPIOLower reads pins 0-7. The response is one byte.
func GPIOLower() Command { return Command{kind: kindGPIOLower} }

// GPIOUpper reads pins 8-15. The response is one byte.
func GPIOUpper() Command { return Command{kind: kindGPIOUpper} }

// EnableLoopback connects TDI/DO to TDO/DI internally.
func EnableLoopback() Command { return Command{kind: kindEnableLoopback} }

// DisableLoopback disconnects the internal loopback.
func DisableLoopback() Command { return Command{kind: kindDisableLoopback} }

// Enable3PhaseClocking makes data valid on both clock edges.
func Enable3PhaseClocking() Command { return Command{kind: kindEnable3Phase} }

// Disable3PhaseClocking restores 2-phase clocking.
func Disable3PhaseClocking() Command { return Command{kind: kindDisable3Phase} }

// EnableAdaptiveClocking gates TCK on the RTCK input.
func EnableAdaptiveClocking() Command { return Command{kind: kindEnableAdaptive} }

// DisableAdaptiveClocking stops waiting on RTCK.
func DisableAdaptiveClocking() Command { return Command{kind: kindDisableAdaptive} }

// SendImmediate asks the device to flush its response buffer.
func SendImmediate() Command { return Command{kind: kindSendImmediate} }

// WaitOnIOHigh stalls the engine until GPIOL1 is high.
func WaitOnIOHigh() Command { return Command{kind: kindWaitOnIOHigh} }

// WaitOnIOLow stalls the engine until GPIOL1 is low.
func WaitOnIOLow() Command { return Command{kind: kindWaitOnIOLow} }

// SetClock sets the clock divisor, optionally changing divide-by-5 first.
func SetClock(divisor uint32, div mpsse.ClockDivide) Command {
	return Command{kind: kindSetClock, div: divisor, clk: div}
}

// ClockDataOut clocks out up to mpsse.MaxDataLen bytes.
func ClockDataOut(mode mpsse.DataOutMode, data []byte) Command {
	return Command{kind: kindClockDataOut, mode: byte(mode), data: data, n: len(data)}
}

// ClockDataIn clocks in n bytes. The response is n bytes.
func ClockDataIn(mode mpsse.DataInMode, n int) Command {
	return Command{kind: kindClockDataIn, mode: byte(mode), n: n}
}

// ClockData clocks data out and the same number of bytes in.
func ClockData(mode mpsse.DataMode, data []byte) Command {
	return Command{kind: kindClockData, mode: byte(mode), data: data, n: len(data)}
}

// ClockBitsOut clocks out the first n bits of data.
func ClockBitsOut(mode mpsse.BitsOutMode, data byte, n int) Command {
	return Command{kind: kindClockBitsOut, mode: byte(mode), a: data, n: n}
}

// ClockBitsIn clocks in n bits. The response is one byte.
func ClockBitsIn(mode mpsse.BitsInMode, n int) Command {
	return Command{kind: kindClockBitsIn, mode: byte(mode), n: n}
}

// ClockBits clocks n bits out and in. The response is one byte.
func ClockBits(mode mpsse.BitsMode, data byte, n int) Command {
	return Command{kind: kindClockBits, mode: byte(mode), a: data, n: n}
}

// ClockTMSOut clocks n bits of data out on TMS with TDI/DO held at tdi.
func ClockTMSOut(mode mpsse.TMSOutMode, data byte, tdi bool, n int) Command {
	return Command{kind: kindClockTMSOut, mode: byte(mode), a: data, tdi: tdi, n: n}
}

// ClockTMS is ClockTMSOut with TDO sampled. The response is one byte.
func ClockTMS(mode mpsse.TMSMode, data byte, tdi bool, n int) Command {
	return Command{kind: kindClockTMS, mode: byte(mode), a: data, tdi: tdi, n: n}
}

// size returns the encoded length and response width of c, checking the same
// length limits as the mpsse encoders.
func (c Command) size() (encoded, response int) {
	switch c.kind {
	case kindSetGPIOLower, kindSetGPIOUpper:
		return 3, 0
	case kindGPIOLower, kindGPIOUpper:
		return 1, 1
	case kindSetClock:
		if c.clk == mpsse.DivideUnchanged {
			return 3, 0
		}
		return 4, 0
	case kindClockDataOut:
		return dataSize("clock data out", c.n, 3+c.n), 0
	case kindClockDataIn:
		return dataSize("clock data in", c.n, 3), c.n
	case kindClockData:
		return dataSize("clock data", c.n, 3+c.n), c.n
	case kindClockBitsOut:
		return bitSize("clock bits out", c.n, mpsse.MaxBitLen, 3), 0
	case kindClockBitsIn:
		n := bitSize("clock bits in", c.n, mpsse.MaxBitLen, 2)
		return n, min(n, 1)
	case kindClockBits:
		n := bitSize("clock bits", c.n, mpsse.MaxBitLen, 3)
		return n, min(n, 1)
	case kindClockTMSOut:
		return bitSize("clock tms out", c.n, mpsse.MaxTMSLen, 3), 0
	case kindClockTMS:
		n := bitSize("clock tms", c.n, mpsse.MaxTMSLen, 3)
		return n, min(n, 1)
	case kindEnableLoopback, kindDisableLoopback, kindEnable3Phase, kindDisable3Phase,
		kindEnableAdaptive, kindDisableAdaptive, kindSendImmediate, kindWaitOnIOHigh, kindWaitOnIOLow:
		return 1, 0
	default:
		panic(fmt.Sprintf("static: unknown command kind %d", c.kind))
	}
}

// encode appends c using the mpsse encoders.
func (c Command) encode(dst []byte) []byte {
	switch c.kind {
	case kindSetGPIOLower:
		return mpsse.AppendSetGPIOLower(dst, c.a, c.b)
	case kindSetGPIOUpper:
		return mpsse.AppendSetGPIOUpper(dst, c.a, c.b)
	case kindGPIOLower:
		return mpsse.AppendGPIOLower(dst)
	case kindGPIOUpper:
		return mpsse.AppendGPIOUpper(dst)
	case kindEnableLoopback:
		return mpsse.AppendEnableLoopback(dst)
	case kindDisableLoopback:
		return mpsse.AppendDisableLoopback(dst)
	case kindEnable3Phase:
		return mpsse.AppendEnable3PhaseClocking(dst)
	case kindDisable3Phase:
		return mpsse.AppendDisable3PhaseClocking(dst)
	case kindEnableAdaptive:
		return mpsse.AppendEnableAdaptiveClocking(dst)
	case kindDisableAdaptive:
		return mpsse.AppendDisableAdaptiveClocking(dst)
	case kindSendImmediate:
		return mpsse.AppendSendImmediate(dst)
	case kindWaitOnIOHigh:
		return mpsse.AppendWaitOnIOHigh(dst)
	case kindWaitOnIOLow:
		return mpsse.AppendWaitOnIOLow(dst)
	case kindSetClock:
		return mpsse.AppendSetClock(dst, c.div, c.clk)
	case kindClockDataOut:
		return mpsse.AppendClockDataOut(dst, mpsse.DataOutMode(c.mode), c.data)
	case kindClockDataIn:
		return mpsse.AppendClockDataIn(dst, mpsse.DataInMode(c.mode), c.n)
	case kindClockData:
		return mpsse.AppendClockData(dst, mpsse.DataMode(c.mode), c.data)
	case kindClockBitsOut:
		return mpsse.AppendClockBitsOut(dst, mpsse.BitsOutMode(c.mode), c.a, c.n)
	case kindClockBitsIn:
		return mpsse.AppendClockBitsIn(dst, mpsse.BitsInMode(c.mode), c.n)
	case kindClockBits:
		return mpsse.AppendClockBits(dst, mpsse.BitsMode(c.mode), c.a, c.n)
	case kindClockTMSOut:
		return mpsse.AppendClockTMSOut(dst, mpsse.TMSOutMode(c.mode), c.a, c.tdi, c.n)
	case kindClockTMS:
		return mpsse.AppendClockTMS(dst, mpsse.TMSMode(c.mode), c.a, c.tdi, c.n)
	default:
		panic(fmt.Sprintf("static: unknown command kind %d", c.kind))
	}
}

// dataSize checks a byte-granular count and returns the encoded size, or 0
// for an empty transfer.
func dataSize(op string, n, encoded int) int {
	if n < 0 || n > mpsse.MaxDataLen {
		panic(&mpsse.LengthError{Operation: op, Length: n, Max: mpsse.MaxDataLen})
	}
	if n == 0 {
		return 0
	}
	return encoded
}

func bitSize(op string, n, max, encoded int) int {
	if n < 0 || n > max {
		panic(&mpsse.LengthError{Operation: op, Length: n, Max: max})
	}
	if n == 0 {
		return 0
	}
	return encoded
}
