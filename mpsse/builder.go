package mpsse

import "encoding/hex"

// Builder accumulates an MPSSE command stream and the read ledger for it.
//
// Methods append one command and return the receiver so a sequence reads as a
// script:
//
//	b := mpsse.NewBuilder().
//	    SetGPIOLower(0x08, 0x0B).
//	    ClockDataOut(mpsse.DataOutMsbNeg, []byte{0x9F}).
//	    SendImmediate()
//
// Commands whose response must be located later have an ...At variant that
// also returns the response index or range.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	buf    []byte
	ledger Ledger
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderFrom returns a builder that appends after the commands already in
// buf. buf is assumed to produce no response bytes. The builder never writes
// into buf's spare capacity, so one prefix can seed several builders.
func NewBuilderFrom(buf []byte) *Builder {
	return &Builder{buf: buf[:len(buf):len(buf)]}
}

// Bytes returns the encoded command stream. The caller must not modify it.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the encoded length in bytes.
func (b *Builder) Len() int {
	return len(b.buf)
}

// ReadLen returns the number of response bytes the stream will produce.
func (b *Builder) ReadLen() int {
	return b.ledger.Len()
}

// Reset discards all commands and read accounting, keeping the buffer's storage.
func (b *Builder) Reset() *Builder {
	b.buf = b.buf[:0]
	b.ledger = Ledger{}
	return b
}

// String returns the command stream as lowercase hex.
func (b *Builder) String() string {
	return hex.EncodeToString(b.buf)
}

// SetClock sets the clock divisor, optionally changing the divide-by-5 setting
// first. Divisor values are device dependent; see ClockDivisor.
func (b *Builder) SetClock(divisor uint32, div ClockDivide) *Builder {
	b.buf = AppendSetClock(b.buf, divisor, div)
	return b
}

// EnableLoopback connects TDI/DO to TDO/DI internally.
func (b *Builder) EnableLoopback() *Builder {
	b.buf = AppendEnableLoopback(b.buf)
	return b
}

// DisableLoopback disconnects the internal loopback.
func (b *Builder) DisableLoopback() *Builder {
	b.buf = AppendDisableLoopback(b.buf)
	return b
}

// Enable3PhaseClocking makes data valid on both clock edges, as I2C needs.
func (b *Builder) Enable3PhaseClocking() *Builder {
	b.buf = AppendEnable3PhaseClocking(b.buf)
	return b
}

// Disable3PhaseClocking restores 2-phase clocking.
func (b *Builder) Disable3PhaseClocking() *Builder {
	b.buf = AppendDisable3PhaseClocking(b.buf)
	return b
}

// EnableAdaptiveClocking gates TCK on the RTCK input, as some ARM JTAG targets need.
func (b *Builder) EnableAdaptiveClocking() *Builder {
	b.buf = AppendEnableAdaptiveClocking(b.buf)
	return b
}

// DisableAdaptiveClocking stops waiting on RTCK.
func (b *Builder) DisableAdaptiveClocking() *Builder {
	b.buf = AppendDisableAdaptiveClocking(b.buf)
	return b
}

// SetGPIOLower sets state and direction of pins 0-7.
func (b *Builder) SetGPIOLower(state, direction byte) *Builder {
	b.buf = AppendSetGPIOLower(b.buf, state, direction)
	return b
}

// SetGPIOUpper sets state and direction of pins 8-15. Which pins exist is
// device dependent.
func (b *Builder) SetGPIOUpper(state, direction byte) *Builder {
	b.buf = AppendSetGPIOUpper(b.buf, state, direction)
	return b
}

// GPIOLower reads pins 0-7.
func (b *Builder) GPIOLower() *Builder {
	b.GPIOLowerAt()
	return b
}

// GPIOLowerAt reads pins 0-7 and returns the response index.
func (b *Builder) GPIOLowerAt() (*Builder, int) {
	b.buf = AppendGPIOLower(b.buf)
	return b, b.ledger.Advance(1).Start
}

// GPIOUpper reads pins 8-15.
func (b *Builder) GPIOUpper() *Builder {
	b.GPIOUpperAt()
	return b
}

// GPIOUpperAt reads pins 8-15 and returns the response index.
func (b *Builder) GPIOUpperAt() (*Builder, int) {
	b.buf = AppendGPIOUpper(b.buf)
	return b, b.ledger.Advance(1).Start
}

// SendImmediate asks the device to flush its response buffer.
func (b *Builder) SendImmediate() *Builder {
	b.buf = AppendSendImmediate(b.buf)
	return b
}

// WaitOnIOHigh stalls the engine until GPIOL1 is high.
func (b *Builder) WaitOnIOHigh() *Builder {
	b.buf = AppendWaitOnIOHigh(b.buf)
	return b
}

// WaitOnIOLow stalls the engine until GPIOL1 is low.
func (b *Builder) WaitOnIOLow() *Builder {
	b.buf = AppendWaitOnIOLow(b.buf)
	return b
}

// ClockDataOut clocks out up to MaxDataLen bytes.
func (b *Builder) ClockDataOut(mode DataOutMode, data []byte) *Builder {
	b.buf = AppendClockDataOut(b.buf, mode, data)
	return b
}

// ClockDataIn clocks in n bytes, 0 <= n <= MaxDataLen.
func (b *Builder) ClockDataIn(mode DataInMode, n int) *Builder {
	b.ClockDataInAt(mode, n)
	return b
}

// ClockDataInAt clocks in n bytes and returns their response range.
func (b *Builder) ClockDataInAt(mode DataInMode, n int) (*Builder, Range) {
	b.buf = AppendClockDataIn(b.buf, mode, n)
	return b, b.ledger.Advance(n)
}

// ClockData clocks data out and the same number of bytes in.
func (b *Builder) ClockData(mode DataMode, data []byte) *Builder {
	b.ClockDataAt(mode, data)
	return b
}

// ClockDataAt is ClockData returning the response range.
func (b *Builder) ClockDataAt(mode DataMode, data []byte) (*Builder, Range) {
	b.buf = AppendClockData(b.buf, mode, data)
	return b, b.ledger.Advance(len(data))
}

// ClockBitsOut clocks out the first n bits of data, 0 <= n <= MaxBitLen.
func (b *Builder) ClockBitsOut(mode BitsOutMode, data byte, n int) *Builder {
	b.buf = AppendClockBitsOut(b.buf, mode, data, n)
	return b
}

// ClockBitsIn clocks in n bits.
func (b *Builder) ClockBitsIn(mode BitsInMode, n int) *Builder {
	b.ClockBitsInAt(mode, n)
	return b
}

// ClockBitsInAt clocks in n bits and returns the index of the response byte.
// A zero count returns the current read offset and records nothing.
func (b *Builder) ClockBitsInAt(mode BitsInMode, n int) (*Builder, int) {
	b.buf = AppendClockBitsIn(b.buf, mode, n)
	return b, b.ledger.Advance(bitResponse(n)).Start
}

// ClockBits clocks n bits of data out while clocking n bits in.
func (b *Builder) ClockBits(mode BitsMode, data byte, n int) *Builder {
	b.ClockBitsAt(mode, data, n)
	return b
}

// ClockBitsAt is ClockBits returning the index of the response byte.
func (b *Builder) ClockBitsAt(mode BitsMode, data byte, n int) (*Builder, int) {
	b.buf = AppendClockBits(b.buf, mode, data, n)
	return b, b.ledger.Advance(bitResponse(n)).Start
}

// ClockTMSOut clocks n bits (0 <= n <= MaxTMSLen) of data out on TMS while
// holding TDI/DO at tdi.
func (b *Builder) ClockTMSOut(mode TMSOutMode, data byte, tdi bool, n int) *Builder {
	b.buf = AppendClockTMSOut(b.buf, mode, data, tdi, n)
	return b
}

// ClockTMS is ClockTMSOut with TDO sampled.
func (b *Builder) ClockTMS(mode TMSMode, data byte, tdi bool, n int) *Builder {
	b.ClockTMSAt(mode, data, tdi, n)
	return b
}

// ClockTMSAt is ClockTMS returning the index of the response byte.
func (b *Builder) ClockTMSAt(mode TMSMode, data byte, tdi bool, n int) (*Builder, int) {
	b.buf = AppendClockTMS(b.buf, mode, data, tdi, n)
	return b, b.ledger.Advance(bitResponse(n)).Start
}

// bitResponse is the response width of a bit-granular read: one byte for any
// nonzero count.
func bitResponse(n int) int {
	if n == 0 {
		return 0
	}
	return 1
}
