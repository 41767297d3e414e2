// Package mpsse encodes command streams for the FTDI Multi-Protocol
// Synchronous Serial Engine (MPSSE).
//
// The package never talks to a device. It produces the exact bytes the engine
// expects and tracks how many response bytes those commands will produce, so
// the caller knows which part of a later read belongs to which command.
//
// # Command Format
//
// Every command is an opcode followed by fixed parameters and an optional
// payload:
//
//	[OPCODE][PARAMS...][PAYLOAD...]
//
// Counts are sent as count-1: byte transfers carry a 16-bit little-endian
// length (1..65536 bytes), bit transfers a single byte (1..8 bits, 1..7 for
// TMS).
//
// # Encoders
//
// The Append* functions encode one command onto a byte slice:
//
//	buf = mpsse.AppendSetGPIOLower(buf, 0xFF, 0xFF)
//	buf = mpsse.AppendClockDataIn(buf, mpsse.DataInMsbPos, 3)
//
// A zero count appends nothing. A count the wire format cannot carry panics
// with a *LengthError; it is a programming error, not a device error.
//
// # Builder
//
// Builder wraps the encoders with a growable buffer and a read Ledger:
//
//	b, adc := mpsse.NewBuilder().
//	    SetGPIOLower(0x00, 0x0B).
//	    ClockDataInAt(mpsse.DataInMsbPos, 2)
//	b, pins := b.SendImmediate().GPIOLowerAt()
//
//	rx := make([]byte, b.ReadLen())
//	// send b.Bytes(), then read len(rx) bytes into rx
//	sample := adc.Of(rx)
//	state := rx[pins]
//
// When the whole sequence is known up front, package static computes the
// size and read layout before allocating.
//
// # Reference
//
// FTDI AN_108 "Command Processor for MPSSE and MCU Host Bus Emulation Modes".
package mpsse
