package mpsse

// Opcode is a single MPSSE command byte.
type Opcode byte

// Opcodes for commands that take no clocking mode.
const (
	// OpSetDataBitsLowbyte sets state and direction of GPIO pins 0-7.
	OpSetDataBitsLowbyte Opcode = 0x80

	// OpGetDataBitsLowbyte reads the state of GPIO pins 0-7 (1 response byte).
	OpGetDataBitsLowbyte Opcode = 0x81

	// OpSetDataBitsHighbyte sets state and direction of GPIO pins 8-15.
	OpSetDataBitsHighbyte Opcode = 0x82

	// OpGetDataBitsHighbyte reads the state of GPIO pins 8-15 (1 response byte).
	OpGetDataBitsHighbyte Opcode = 0x83

	// OpEnableLoopback connects TDI/DO to TDO/DI internally.
	OpEnableLoopback Opcode = 0x84

	// OpDisableLoopback disconnects the internal loopback.
	OpDisableLoopback Opcode = 0x85

	// OpSetClockFrequency sets the 16-bit clock divisor.
	OpSetClockFrequency Opcode = 0x86

	// OpSendImmediate flushes the device's response buffer to the host.
	OpSendImmediate Opcode = 0x87

	// OpWaitOnIOHigh pauses command execution until GPIOL1 is high.
	OpWaitOnIOHigh Opcode = 0x88

	// OpWaitOnIOLow pauses command execution until GPIOL1 is low.
	OpWaitOnIOLow Opcode = 0x89

	// OpDisableClockDivide selects the 60 MHz master clock (H-series only).
	OpDisableClockDivide Opcode = 0x8A

	// OpEnableClockDivide selects the 12 MHz (divide-by-5) master clock.
	OpEnableClockDivide Opcode = 0x8B

	// OpEnable3PhaseClocking enables 3-phase data clocking (H-series only).
	OpEnable3PhaseClocking Opcode = 0x8C

	// OpDisable3PhaseClocking restores the default 2-phase data clocking.
	OpDisable3PhaseClocking Opcode = 0x8D

	// OpEnableAdaptiveClocking enables adaptive (RTCK) clocking.
	OpEnableAdaptiveClocking Opcode = 0x96

	// OpDisableAdaptiveClocking disables adaptive clocking.
	OpDisableAdaptiveClocking Opcode = 0x97
)

// DataOutMode selects bit order and clock edge for ClockDataOut.
type DataOutMode byte

const (
	DataOutMsbPos DataOutMode = 0x10 // MSB first, out on rising edge
	DataOutMsbNeg DataOutMode = 0x11 // MSB first, out on falling edge
	DataOutLsbPos DataOutMode = 0x18 // LSB first, out on rising edge
	DataOutLsbNeg DataOutMode = 0x19 // LSB first, out on falling edge
)

// BitsOutMode selects bit order and clock edge for ClockBitsOut.
type BitsOutMode byte

const (
	BitsOutMsbPos BitsOutMode = 0x12
	BitsOutMsbNeg BitsOutMode = 0x13
	BitsOutLsbPos BitsOutMode = 0x1A
	BitsOutLsbNeg BitsOutMode = 0x1B
)

// DataInMode selects bit order and sampling edge for ClockDataIn.
type DataInMode byte

const (
	DataInMsbPos DataInMode = 0x20 // MSB first, sampled on rising edge
	DataInMsbNeg DataInMode = 0x24 // MSB first, sampled on falling edge
	DataInLsbPos DataInMode = 0x28 // LSB first, sampled on rising edge
	DataInLsbNeg DataInMode = 0x2C // LSB first, sampled on falling edge
)

// BitsInMode selects bit order and sampling edge for ClockBitsIn.
//
// MSB-first reads shift the sampled bits up from bit 0; LSB-first reads shift
// them down from bit 7. Bits that were not clocked are undefined.
type BitsInMode byte

const (
	BitsInMsbPos BitsInMode = 0x22
	BitsInMsbNeg BitsInMode = 0x26
	BitsInLsbPos BitsInMode = 0x2A
	BitsInLsbNeg BitsInMode = 0x2E
)

// DataMode selects bit order and edges for full-duplex ClockData.
// The name gives the input sampling edge; output is driven on the other edge.
type DataMode byte

const (
	DataMsbPosIn DataMode = 0x31 // MSB first, in on rising, out on falling
	DataMsbNegIn DataMode = 0x34 // MSB first, in on falling, out on rising
	DataLsbPosIn DataMode = 0x39 // LSB first, in on rising, out on falling
	DataLsbNegIn DataMode = 0x3C // LSB first, in on falling, out on rising
)

// BitsMode selects bit order and edges for full-duplex ClockBits.
type BitsMode byte

const (
	BitsMsbPosIn BitsMode = 0x33
	BitsMsbNegIn BitsMode = 0x36
	BitsLsbPosIn BitsMode = 0x3B
	BitsLsbNegIn BitsMode = 0x3E
)

// TMSOutMode selects the TMS clock edge for ClockTMSOut. TMS is always LSB first.
type TMSOutMode byte

const (
	TMSOutPosEdge TMSOutMode = 0x4A
	TMSOutNegEdge TMSOutMode = 0x4B
)

// TMSMode selects TMS output and TDO sampling edges for ClockTMS.
type TMSMode byte

const (
	TMSPosTMSPosTDO TMSMode = 0x6A
	TMSPosTMSNegTDO TMSMode = 0x6E
	TMSNegTMSPosTDO TMSMode = 0x6B
	TMSNegTMSNegTDO TMSMode = 0x6F
)

// ClockDivide is the optional divide-by-5 setting sent ahead of a clock divisor.
type ClockDivide int

const (
	// DivideUnchanged leaves the master clock divider as it is.
	DivideUnchanged ClockDivide = iota

	// DivideBy5Enable selects the 12 MHz master clock.
	DivideBy5Enable

	// DivideBy5Disable selects the 60 MHz master clock.
	DivideBy5Disable
)

// Length limits for the clocking command families.
const (
	// MaxDataLen is the largest byte count a byte-granular command can carry.
	MaxDataLen = 65536

	// MaxBitLen is the largest bit count for bit-granular commands.
	MaxBitLen = 8

	// MaxTMSLen is the largest bit count for TMS commands. Bit 7 of the
	// data byte holds the TDI/DO level.
	MaxTMSLen = 7

	// TMSDataOutBit is OR'd into the TMS data byte to hold TDI/DO high.
	TMSDataOutBit = 0x80
)
