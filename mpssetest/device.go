package mpssetest

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/moffa90/go-mpsse/mpsse"
)

// BadCommand is the byte an MPSSE engine returns, followed by the offending
// opcode, when it receives an opcode it does not recognize.
const BadCommand = 0xFA

// Device simulates an MPSSE engine behind an io.ReadWriter.
//
// Commands written to the device are decoded and their responses queued for
// Read. Partial commands are held until the rest arrives. Input data comes
// from MISO; with loopback enabled, full-duplex transfers return the bytes
// clocked out instead.
type Device struct {
	// LowerInputs and UpperInputs are the levels seen on pins configured as inputs
	LowerInputs byte
	UpperInputs byte

	// MISO supplies bytes for data reads. When it runs dry reads return 0xFF.
	MISO *bytes.Buffer

	Loopback   bool
	ThreePhase bool
	Adaptive   bool

	// Divisor and Div5 are the last clock settings received
	Divisor uint16
	Div5    bool

	lowerState, lowerDir byte
	upperState, upperDir byte

	pending  []byte
	out      bytes.Buffer
	written  bytes.Buffer
	resets   int
	commands int
}

// NewDevice returns a device with all pins as inputs and an empty MISO buffer.
func NewDevice() *Device {
	return &Device{MISO: new(bytes.Buffer)}
}

// Write decodes complete commands from p and queues their responses.
func (d *Device) Write(p []byte) (int, error) {
	d.written.Write(p)
	d.pending = append(d.pending, p...)

	for len(d.pending) > 0 {
		n := d.execute(d.pending)
		if n == 0 {
			break
		}
		d.pending = d.pending[n:]
		d.commands++
	}

	return len(p), nil
}

// Read returns queued response bytes, or io.EOF when there are none.
func (d *Device) Read(p []byte) (int, error) {
	if d.out.Len() == 0 {
		return 0, io.EOF
	}
	return d.out.Read(p)
}

// ResetMPSSE clears the engine state and any queued or partial data.
func (d *Device) ResetMPSSE() error {
	d.Loopback, d.ThreePhase, d.Adaptive = false, false, false
	d.Divisor, d.Div5 = 0, false
	d.lowerState, d.lowerDir, d.upperState, d.upperDir = 0, 0, 0, 0
	d.pending = nil
	d.out.Reset()
	d.resets++
	return nil
}

// Written returns every byte written to the device.
func (d *Device) Written() []byte {
	return d.written.Bytes()
}

// Commands returns the number of complete commands executed.
func (d *Device) Commands() int {
	return d.commands
}

// Resets returns the number of ResetMPSSE calls.
func (d *Device) Resets() int {
	return d.resets
}

// Pending returns the number of buffered response bytes.
func (d *Device) Pending() int {
	return d.out.Len()
}

// Lower returns the state and direction of pins 0-7.
func (d *Device) Lower() (state, direction byte) {
	return d.lowerState, d.lowerDir
}

// Upper returns the state and direction of pins 8-15.
func (d *Device) Upper() (state, direction byte) {
	return d.upperState, d.upperDir
}

// execute runs the command at the start of buf and returns its length, or 0
// if buf does not yet hold the whole command.
func (d *Device) execute(buf []byte) int {
	op := buf[0]

	switch mpsse.Opcode(op) {
	case mpsse.OpSetDataBitsLowbyte, mpsse.OpSetDataBitsHighbyte:
		if len(buf) < 3 {
			return 0
		}
		if mpsse.Opcode(op) == mpsse.OpSetDataBitsLowbyte {
			d.lowerState, d.lowerDir = buf[1], buf[2]
		} else {
			d.upperState, d.upperDir = buf[1], buf[2]
		}
		return 3
	case mpsse.OpGetDataBitsLowbyte:
		d.out.WriteByte(d.lowerState&d.lowerDir | d.LowerInputs&^d.lowerDir)
		return 1
	case mpsse.OpGetDataBitsHighbyte:
		d.out.WriteByte(d.upperState&d.upperDir | d.UpperInputs&^d.upperDir)
		return 1
	case mpsse.OpEnableLoopback:
		d.Loopback = true
		return 1
	case mpsse.OpDisableLoopback:
		d.Loopback = false
		return 1
	case mpsse.OpSetClockFrequency:
		if len(buf) < 3 {
			return 0
		}
		d.Divisor = binary.LittleEndian.Uint16(buf[1:3])
		return 3
	case mpsse.OpSendImmediate, mpsse.OpWaitOnIOHigh, mpsse.OpWaitOnIOLow:
		return 1
	case mpsse.OpDisableClockDivide:
		d.Div5 = false
		return 1
	case mpsse.OpEnableClockDivide:
		d.Div5 = true
		return 1
	case mpsse.OpEnable3PhaseClocking:
		d.ThreePhase = true
		return 1
	case mpsse.OpDisable3PhaseClocking:
		d.ThreePhase = false
		return 1
	case mpsse.OpEnableAdaptiveClocking:
		d.Adaptive = true
		return 1
	case mpsse.OpDisableAdaptiveClocking:
		d.Adaptive = false
		return 1
	}

	switch {
	case isDataOut(op):
		return dataLen(buf, true)
	case isDataIn(op):
		n := dataLen(buf, false)
		if n > 0 {
			d.readMISO(int(binary.LittleEndian.Uint16(buf[1:3])) + 1)
		}
		return n
	case isData(op):
		n := dataLen(buf, true)
		if n > 0 {
			d.duplex(buf[3:n])
		}
		return n
	case isBitsOut(op), isTMSOut(op):
		if len(buf) < 3 {
			return 0
		}
		return 3
	case isBitsIn(op):
		if len(buf) < 2 {
			return 0
		}
		d.out.WriteByte(d.misoByte())
		return 2
	case isBits(op):
		if len(buf) < 3 {
			return 0
		}
		bits := int(buf[1]) + 1
		if d.Loopback {
			d.out.WriteByte(loopBits(buf[2], bits, op&0x08 != 0))
		} else {
			d.out.WriteByte(d.misoByte())
		}
		return 3
	case isTMS(op):
		if len(buf) < 3 {
			return 0
		}
		bits := int(buf[1]) + 1
		if d.Loopback {
			// TDO follows TDI, which is held at bit 7 of the data byte.
			level := byte(0x00)
			if buf[2]&mpsse.TMSDataOutBit != 0 {
				level = 0xFF
			}
			d.out.WriteByte(loopBits(level, bits, true))
		} else {
			d.out.WriteByte(d.misoByte())
		}
		return 3
	}

	d.out.Write([]byte{BadCommand, op})
	return 1
}

// duplex queues the input side of a full-duplex byte transfer.
func (d *Device) duplex(data []byte) {
	if d.Loopback {
		d.out.Write(data)
		return
	}
	d.readMISO(len(data))
}

func (d *Device) readMISO(n int) {
	for i := 0; i < n; i++ {
		d.out.WriteByte(d.misoByte())
	}
}

func (d *Device) misoByte() byte {
	if d.MISO == nil {
		return 0xFF
	}
	b, err := d.MISO.ReadByte()
	if err != nil {
		return 0xFF
	}
	return b
}

// dataLen returns the length of a byte-granular command, or 0 if incomplete.
func dataLen(buf []byte, payload bool) int {
	if len(buf) < 3 {
		return 0
	}
	n := 3
	if payload {
		n += int(binary.LittleEndian.Uint16(buf[1:3])) + 1
	}
	if len(buf) < n {
		return 0
	}
	return n
}

// loopBits returns the byte read back when n bits of data are clocked out and
// straight back in. MSB-first reads shift in from bit 0, LSB-first reads from
// bit 7; unclocked bits read as 0.
func loopBits(data byte, n int, lsbFirst bool) byte {
	if lsbFirst {
		return data << (8 - n)
	}
	return data >> (8 - n)
}

func isDataOut(op byte) bool {
	switch mpsse.DataOutMode(op) {
	case mpsse.DataOutMsbPos, mpsse.DataOutMsbNeg, mpsse.DataOutLsbPos, mpsse.DataOutLsbNeg:
		return true
	}
	return false
}

func isDataIn(op byte) bool {
	switch mpsse.DataInMode(op) {
	case mpsse.DataInMsbPos, mpsse.DataInMsbNeg, mpsse.DataInLsbPos, mpsse.DataInLsbNeg:
		return true
	}
	return false
}

func isData(op byte) bool {
	switch mpsse.DataMode(op) {
	case mpsse.DataMsbPosIn, mpsse.DataMsbNegIn, mpsse.DataLsbPosIn, mpsse.DataLsbNegIn:
		return true
	}
	return false
}

func isBitsOut(op byte) bool {
	switch mpsse.BitsOutMode(op) {
	case mpsse.BitsOutMsbPos, mpsse.BitsOutMsbNeg, mpsse.BitsOutLsbPos, mpsse.BitsOutLsbNeg:
		return true
	}
	return false
}

func isBitsIn(op byte) bool {
	switch mpsse.BitsInMode(op) {
	case mpsse.BitsInMsbPos, mpsse.BitsInMsbNeg, mpsse.BitsInLsbPos, mpsse.BitsInLsbNeg:
		return true
	}
	return false
}

func isBits(op byte) bool {
	switch mpsse.BitsMode(op) {
	case mpsse.BitsMsbPosIn, mpsse.BitsMsbNegIn, mpsse.BitsLsbPosIn, mpsse.BitsLsbNegIn:
		return true
	}
	return false
}

func isTMSOut(op byte) bool {
	switch mpsse.TMSOutMode(op) {
	case mpsse.TMSOutPosEdge, mpsse.TMSOutNegEdge:
		return true
	}
	return false
}

func isTMS(op byte) bool {
	switch mpsse.TMSMode(op) {
	case mpsse.TMSPosTMSPosTDO, mpsse.TMSPosTMSNegTDO, mpsse.TMSNegTMSPosTDO, mpsse.TMSNegTMSNegTDO:
		return true
	}
	return false
}
