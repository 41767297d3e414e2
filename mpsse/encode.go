package mpsse

// The Append functions encode one command onto dst and return the extended
// slice, in the manner of strconv.AppendInt. Byte and bit counts use the
// length-minus-one wire convention. A zero count appends nothing; a count
// above the family maximum panics with a *LengthError before dst is touched.
//
// Command layout:
//
//	[OPCODE][PARAMS...][PAYLOAD...]

// AppendSetGPIOLower appends a set-low-byte command.
// state: 1 = high, 0 = low. direction: 1 = output, 0 = input.
func AppendSetGPIOLower(dst []byte, state, direction byte) []byte {
	return append(dst, byte(OpSetDataBitsLowbyte), state, direction)
}

// AppendSetGPIOUpper appends a set-high-byte command.
func AppendSetGPIOUpper(dst []byte, state, direction byte) []byte {
	return append(dst, byte(OpSetDataBitsHighbyte), state, direction)
}

// AppendGPIOLower appends a get-low-byte command. The device returns one byte.
func AppendGPIOLower(dst []byte) []byte {
	return append(dst, byte(OpGetDataBitsLowbyte))
}

// AppendGPIOUpper appends a get-high-byte command. The device returns one byte.
func AppendGPIOUpper(dst []byte) []byte {
	return append(dst, byte(OpGetDataBitsHighbyte))
}

// AppendEnableLoopback appends a command connecting TDI/DO to TDO/DI internally.
func AppendEnableLoopback(dst []byte) []byte {
	return append(dst, byte(OpEnableLoopback))
}

// AppendDisableLoopback appends a command disconnecting the internal loopback.
func AppendDisableLoopback(dst []byte) []byte {
	return append(dst, byte(OpDisableLoopback))
}

// AppendEnable3PhaseClocking appends a command making data valid on both clock edges.
func AppendEnable3PhaseClocking(dst []byte) []byte {
	return append(dst, byte(OpEnable3PhaseClocking))
}

// AppendDisable3PhaseClocking appends a command restoring 2-phase clocking.
func AppendDisable3PhaseClocking(dst []byte) []byte {
	return append(dst, byte(OpDisable3PhaseClocking))
}

// AppendEnableAdaptiveClocking appends a command that gates TCK on the RTCK input.
func AppendEnableAdaptiveClocking(dst []byte) []byte {
	return append(dst, byte(OpEnableAdaptiveClocking))
}

// AppendDisableAdaptiveClocking appends a command that stops waiting on RTCK.
func AppendDisableAdaptiveClocking(dst []byte) []byte {
	return append(dst, byte(OpDisableAdaptiveClocking))
}

// AppendSendImmediate appends a command asking the device to flush its response buffer.
func AppendSendImmediate(dst []byte) []byte {
	return append(dst, byte(OpSendImmediate))
}

// AppendWaitOnIOHigh appends a command that stalls the engine until GPIOL1 is high.
func AppendWaitOnIOHigh(dst []byte) []byte {
	return append(dst, byte(OpWaitOnIOHigh))
}

// AppendWaitOnIOLow appends a command that stalls the engine until GPIOL1 is low.
func AppendWaitOnIOLow(dst []byte) []byte {
	return append(dst, byte(OpWaitOnIOLow))
}

// AppendSetClock appends an optional divide-by-5 command followed by the
// clock divisor command.
//
//	[0x8A|0x8B]?[0x86][DIV_L][DIV_H]
//
// Only the low 16 bits of divisor are transmitted; the device has no field
// for the rest.
func AppendSetClock(dst []byte, divisor uint32, div ClockDivide) []byte {
	switch div {
	case DivideBy5Enable:
		dst = append(dst, byte(OpEnableClockDivide))
	case DivideBy5Disable:
		dst = append(dst, byte(OpDisableClockDivide))
	}
	return append(dst, byte(OpSetClockFrequency), byte(divisor), byte(divisor>>8))
}

// AppendClockDataOut appends a byte-granular write.
//
//	[MODE][LEN_L][LEN_H][DATA...]
func AppendClockDataOut(dst []byte, mode DataOutMode, data []byte) []byte {
	checkLen("clock data out", len(data), MaxDataLen)
	if len(data) == 0 {
		return dst
	}
	dst = appendDataHeader(dst, byte(mode), len(data))
	return append(dst, data...)
}

// AppendClockDataIn appends a byte-granular read of n bytes.
//
//	[MODE][LEN_L][LEN_H]
func AppendClockDataIn(dst []byte, mode DataInMode, n int) []byte {
	checkLen("clock data in", n, MaxDataLen)
	if n == 0 {
		return dst
	}
	return appendDataHeader(dst, byte(mode), n)
}

// AppendClockData appends a full-duplex byte transfer. Every byte clocked out
// produces one byte clocked in.
//
//	[MODE][LEN_L][LEN_H][DATA...]
func AppendClockData(dst []byte, mode DataMode, data []byte) []byte {
	checkLen("clock data", len(data), MaxDataLen)
	if len(data) == 0 {
		return dst
	}
	dst = appendDataHeader(dst, byte(mode), len(data))
	return append(dst, data...)
}

// AppendClockBitsOut appends a write of the first n bits of data.
//
//	[MODE][N-1][DATA]
func AppendClockBitsOut(dst []byte, mode BitsOutMode, data byte, n int) []byte {
	checkLen("clock bits out", n, MaxBitLen)
	if n == 0 {
		return dst
	}
	return append(dst, byte(mode), byte(n-1), data)
}

// AppendClockBitsIn appends a read of n bits. The device returns one byte.
//
//	[MODE][N-1]
func AppendClockBitsIn(dst []byte, mode BitsInMode, n int) []byte {
	checkLen("clock bits in", n, MaxBitLen)
	if n == 0 {
		return dst
	}
	return append(dst, byte(mode), byte(n-1))
}

// AppendClockBits appends a full-duplex transfer of n bits. The device
// returns one byte.
func AppendClockBits(dst []byte, mode BitsMode, data byte, n int) []byte {
	checkLen("clock bits", n, MaxBitLen)
	if n == 0 {
		return dst
	}
	return append(dst, byte(mode), byte(n-1), data)
}

// AppendClockTMSOut appends n TMS bits taken LSB first from data. TDI/DO is
// held at tdi for the whole sequence.
//
//	[MODE][N-1][TDI<<7 | DATA]
func AppendClockTMSOut(dst []byte, mode TMSOutMode, data byte, tdi bool, n int) []byte {
	checkLen("clock tms out", n, MaxTMSLen)
	if n == 0 {
		return dst
	}
	return append(dst, byte(mode), byte(n-1), tmsData(data, tdi))
}

// AppendClockTMS is AppendClockTMSOut with TDO sampled on every bit. The
// device returns one byte.
func AppendClockTMS(dst []byte, mode TMSMode, data byte, tdi bool, n int) []byte {
	checkLen("clock tms", n, MaxTMSLen)
	if n == 0 {
		return dst
	}
	return append(dst, byte(mode), byte(n-1), tmsData(data, tdi))
}

// appendDataHeader writes the opcode and little-endian length-minus-one.
func appendDataHeader(dst []byte, op byte, n int) []byte {
	n--
	return append(dst, op, byte(n), byte(n>>8))
}

func tmsData(data byte, tdi bool) byte {
	if tdi {
		data |= TMSDataOutBit
	}
	return data
}
