package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-mpsse/mpsse"
	"github.com/moffa90/go-mpsse/mpssetest"
	"github.com/moffa90/go-mpsse/static"
)

func TestRunLoopback(t *testing.T) {
	dev := mpssetest.NewDevice()
	dev.LowerInputs = 0xA0
	ex := NewStream(dev)
	ctx := context.Background()

	b, echo := mpsse.NewBuilder().
		EnableLoopback().
		SetGPIOLower(0x01, 0x0F).
		ClockDataAt(mpsse.DataMsbNegIn, []byte{0xDE, 0xAD})
	b, pins := b.GPIOLowerAt()
	b, bits := b.ClockBitsAt(mpsse.BitsMsbPosIn, 0xA0, 3)
	b.SendImmediate()

	resp, err := Run(ctx, ex, b)
	require.NoError(t, err)
	require.Len(t, resp, b.ReadLen())

	assert.Equal(t, []byte{0xDE, 0xAD}, resp.Slice(echo))
	assert.Equal(t, byte(0xA1), resp.Byte(pins))
	assert.Equal(t, byte(0x05), resp.Byte(bits))
	assert.Equal(t, 0, dev.Pending())
}

func TestRunWithoutResponse(t *testing.T) {
	dev := mpssetest.NewDevice()

	resp, err := Run(context.Background(), NewStream(dev), mpsse.NewBuilder().SetGPIOLower(0xFF, 0xFF))
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, []byte{0x80, 0xFF, 0xFF}, dev.Written())
}

func TestRunEmpty(t *testing.T) {
	_, err := Run(context.Background(), NewStream(mpssetest.NewDevice()), mpsse.NewBuilder())
	assert.Error(t, err)
}

func TestRunProgram(t *testing.T) {
	prog := static.MustCompile(
		static.SetGPIOLower(0x00, 0x0B),
		static.ClockDataOut(mpsse.DataOutMsbNeg, []byte{0x9F}),
		static.ClockDataIn(mpsse.DataInMsbPos, 3).As("id"),
		static.SetGPIOLower(0x08, 0x0B),
		static.SendImmediate(),
	)

	dev := mpssetest.NewDevice()
	dev.MISO.Write([]byte{0xEF, 0x40, 0x18})

	resp, err := RunProgram(context.Background(), NewStream(dev), prog)
	require.NoError(t, err)

	r, ok := prog.Range("id")
	require.True(t, ok)
	assert.Equal(t, []byte{0xEF, 0x40, 0x18}, resp.Slice(r))
	assert.Equal(t, prog.Bytes, dev.Written())
}

func TestRunMISOExhausted(t *testing.T) {
	dev := mpssetest.NewDevice()
	dev.MISO.WriteByte(0x42)

	b := mpsse.NewBuilder().GPIOLower().ClockDataIn(mpsse.DataInMsbPos, 2)

	resp, err := Run(context.Background(), NewStream(dev), b)
	require.NoError(t, err)
	assert.Equal(t, Response{0x00, 0x42, 0xFF}, resp)
}

func TestXferShortResponse(t *testing.T) {
	rx := make([]byte, 3)
	err := Xfer(context.Background(), NewStream(mpssetest.NewDevice()), []byte{0x83}, rx)

	var rerr *RecvError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Read)
	assert.Equal(t, 3, rerr.Len)
}
