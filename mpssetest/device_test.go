package mpssetest

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-mpsse/mpsse"
)

func readAll(t *testing.T, d *Device) []byte {
	t.Helper()
	buf := make([]byte, d.Pending())
	if len(buf) == 0 {
		return nil
	}
	n, err := d.Read(buf)
	require.NoError(t, err)
	return buf[:n]
}

func TestDeviceGPIO(t *testing.T) {
	d := NewDevice()
	d.LowerInputs = 0xF0
	d.UpperInputs = 0x0C

	b := mpsse.NewBuilder().
		SetGPIOLower(0x05, 0x0F).
		SetGPIOUpper(0x01, 0x03).
		GPIOLower().
		GPIOUpper()
	_, err := d.Write(b.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []byte{0xF5, 0x0D}, readAll(t, d))

	state, dir := d.Lower()
	assert.Equal(t, byte(0x05), state)
	assert.Equal(t, byte(0x0F), dir)

	state, dir = d.Upper()
	assert.Equal(t, byte(0x01), state)
	assert.Equal(t, byte(0x03), dir)
	assert.Equal(t, 4, d.Commands())
}

func TestDeviceEngineFlags(t *testing.T) {
	d := NewDevice()

	b := mpsse.NewBuilder().
		EnableLoopback().
		Enable3PhaseClocking().
		EnableAdaptiveClocking().
		SetClock(0x1234, mpsse.DivideBy5Enable)
	d.Write(b.Bytes())

	assert.True(t, d.Loopback)
	assert.True(t, d.ThreePhase)
	assert.True(t, d.Adaptive)
	assert.True(t, d.Div5)
	assert.Equal(t, uint16(0x1234), d.Divisor)

	b.Reset().
		DisableLoopback().
		Disable3PhaseClocking().
		DisableAdaptiveClocking().
		SetClock(1, mpsse.DivideBy5Disable).
		WaitOnIOHigh().
		WaitOnIOLow().
		SendImmediate()
	d.Write(b.Bytes())

	assert.False(t, d.Loopback)
	assert.False(t, d.ThreePhase)
	assert.False(t, d.Adaptive)
	assert.False(t, d.Div5)
	assert.Equal(t, 0, d.Pending())
}

func TestDeviceDataIn(t *testing.T) {
	d := NewDevice()
	d.MISO.Write([]byte{0x01, 0x02})

	d.Write(mpsse.NewBuilder().
		ClockDataIn(mpsse.DataInMsbPos, 3).
		ClockBitsIn(mpsse.BitsInLsbNeg, 4).
		Bytes())

	assert.Equal(t, []byte{0x01, 0x02, 0xFF, 0xFF}, readAll(t, d))
}

func TestDeviceLoopback(t *testing.T) {
	d := NewDevice()

	b := mpsse.NewBuilder().
		EnableLoopback().
		ClockData(mpsse.DataLsbPosIn, []byte{0x11, 0x22, 0x33}).
		ClockBits(mpsse.BitsMsbPosIn, 0xC0, 2).
		ClockBits(mpsse.BitsLsbPosIn, 0x03, 2).
		ClockTMS(mpsse.TMSPosTMSPosTDO, 0x01, true, 3).
		ClockTMS(mpsse.TMSPosTMSPosTDO, 0x01, false, 3)
	d.Write(b.Bytes())

	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x03, 0xC0, 0xE0, 0x00}, readAll(t, d))
}

func TestDeviceDuplexWithoutLoopback(t *testing.T) {
	d := NewDevice()
	d.MISO.Write([]byte{0xAB, 0xCD, 0xEF})

	d.Write(mpsse.NewBuilder().
		ClockData(mpsse.DataMsbNegIn, []byte{0x00, 0x00}).
		ClockBits(mpsse.BitsMsbNegIn, 0x00, 8).
		Bytes())

	assert.Equal(t, []byte{0xAB, 0xCD, 0xEF}, readAll(t, d))
}

func TestDeviceOutputOnly(t *testing.T) {
	d := NewDevice()

	d.Write(mpsse.NewBuilder().
		ClockDataOut(mpsse.DataOutMsbNeg, []byte{0x9F, 0x00}).
		ClockBitsOut(mpsse.BitsOutLsbPos, 0x0F, 4).
		ClockTMSOut(mpsse.TMSOutNegEdge, 0x1F, true, 5).
		Bytes())

	assert.Equal(t, 0, d.Pending())
	assert.Equal(t, 3, d.Commands())
}

func TestDevicePartialWrites(t *testing.T) {
	d := NewDevice()
	cmd := mpsse.NewBuilder().
		EnableLoopback().
		ClockData(mpsse.DataMsbNegIn, []byte{0x5A, 0xA5}).
		Bytes()

	for _, b := range cmd {
		_, err := d.Write([]byte{b})
		require.NoError(t, err)
	}

	assert.Equal(t, []byte{0x5A, 0xA5}, readAll(t, d))
	assert.Equal(t, cmd, d.Written())
	assert.Equal(t, 2, d.Commands())
}

func TestDeviceBadCommand(t *testing.T) {
	d := NewDevice()
	d.Write([]byte{0xAB, 0x87})

	assert.Equal(t, []byte{BadCommand, 0xAB}, readAll(t, d))
}

func TestDeviceReadEmpty(t *testing.T) {
	_, err := NewDevice().Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestDeviceReset(t *testing.T) {
	d := NewDevice()
	d.Write(mpsse.NewBuilder().EnableLoopback().SetGPIOLower(0xFF, 0xFF).GPIOLower().Bytes())
	d.Write([]byte{0x10, 0x05})

	require.NoError(t, d.ResetMPSSE())

	assert.False(t, d.Loopback)
	assert.Equal(t, 0, d.Pending())
	assert.Equal(t, 1, d.Resets())

	state, dir := d.Lower()
	assert.Zero(t, state)
	assert.Zero(t, dir)

	d.Write([]byte{0x81})
	assert.Equal(t, []byte{0x00}, readAll(t, d))
}
