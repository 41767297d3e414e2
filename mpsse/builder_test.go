package mpsse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderGPIOSequence(t *testing.T) {
	b := NewBuilder().
		SetGPIOLower(0xFF, 0xFF).
		SetGPIOLower(0x00, 0xFF).
		SendImmediate()

	assert.Equal(t, []byte{0x80, 0xFF, 0xFF, 0x80, 0x00, 0xFF, 0x87}, b.Bytes())
	assert.Equal(t, 7, b.Len())
	assert.Equal(t, 0, b.ReadLen())
	assert.Equal(t, "80ffff8000ff87", b.String())
}

func TestBuilderReadOffsets(t *testing.T) {
	b, data := NewBuilder().ClockDataInAt(DataInMsbPos, 3)
	assert.Equal(t, []byte{0x20, 0x02, 0x00}, b.Bytes())
	assert.Equal(t, Range{Start: 0, End: 3}, data)

	b, pins := b.SendImmediate().GPIOLowerAt()
	assert.Equal(t, 3, pins)

	b, bits := b.ClockBitsInAt(BitsInMsbPos, 5)
	assert.Equal(t, 4, bits)

	b, duplex := b.ClockDataAt(DataMsbPosIn, []byte{0x01, 0x02})
	assert.Equal(t, Range{Start: 5, End: 7}, duplex)

	b, upper := b.GPIOUpperAt()
	assert.Equal(t, 7, upper)

	b, tms := b.ClockTMSAt(TMSPosTMSPosTDO, 0x01, false, 1)
	assert.Equal(t, 8, tms)

	b, full := b.ClockBitsAt(BitsLsbPosIn, 0xAA, 8)
	assert.Equal(t, 9, full)

	assert.Equal(t, 10, b.ReadLen())
}

func TestBuilderOutputOnlyCommandsDoNotRead(t *testing.T) {
	b := NewBuilder().
		SetGPIOLower(0x00, 0x0B).
		SetGPIOUpper(0x00, 0x00).
		EnableLoopback().
		DisableLoopback().
		Enable3PhaseClocking().
		Disable3PhaseClocking().
		EnableAdaptiveClocking().
		DisableAdaptiveClocking().
		SetClock(29, DivideBy5Disable).
		ClockDataOut(DataOutMsbNeg, []byte{0x9F}).
		ClockBitsOut(BitsOutMsbPos, 0x0A, 4).
		ClockTMSOut(TMSOutPosEdge, 0x1F, false, 5).
		WaitOnIOHigh().
		WaitOnIOLow().
		SendImmediate()

	assert.Equal(t, 0, b.ReadLen())
	assert.Equal(t, 3+3+6+4+4+3+3+3, b.Len())
}

func TestBuilderZeroLengthReads(t *testing.T) {
	b, r := NewBuilder().GPIOLower().ClockDataInAt(DataInMsbPos, 0)
	assert.Equal(t, Range{Start: 1, End: 1}, r)
	assert.Equal(t, 0, r.Len())

	b, idx := b.ClockBitsInAt(BitsInMsbPos, 0)
	assert.Equal(t, 1, idx)

	b, idx = b.ClockTMSAt(TMSPosTMSPosTDO, 0, false, 0)
	assert.Equal(t, 1, idx)

	assert.Equal(t, []byte{0x81}, b.Bytes())
	assert.Equal(t, 1, b.ReadLen())
}

func TestBuilderPanicLeavesStateUntouched(t *testing.T) {
	b := NewBuilder().GPIOLower()

	err := capturePanic(func() { b.ClockDataIn(DataInMsbPos, MaxDataLen+1) })
	require.Error(t, err)
	assert.True(t, IsLengthError(err))

	err = capturePanic(func() { b.ClockBits(BitsMsbPosIn, 0, MaxBitLen+1) })
	require.Error(t, err)

	err = capturePanic(func() { b.ClockTMS(TMSPosTMSPosTDO, 0, false, MaxTMSLen+1) })
	require.Error(t, err)

	assert.Equal(t, []byte{0x81}, b.Bytes())
	assert.Equal(t, 1, b.ReadLen())
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder().GPIOLower().ClockDataIn(DataInLsbPos, 4)
	require.Equal(t, 5, b.ReadLen())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.ReadLen())

	_, idx := b.GPIOUpperAt()
	assert.Equal(t, 0, idx)
}

func TestNewBuilderFrom(t *testing.T) {
	prefix := AppendDisableLoopback(make([]byte, 0, 16))
	b := NewBuilderFrom(prefix).GPIOLower()

	assert.Equal(t, []byte{0x85, 0x81}, b.Bytes())
	assert.Equal(t, 1, b.ReadLen())
}

func TestNewBuilderFromSharedPrefix(t *testing.T) {
	prefix := AppendDisableLoopback(make([]byte, 0, 16))

	a := NewBuilderFrom(prefix).GPIOLower()
	b := NewBuilderFrom(prefix).SendImmediate()

	assert.Equal(t, []byte{0x85, 0x81}, a.Bytes())
	assert.Equal(t, []byte{0x85, 0x87}, b.Bytes())
	assert.Equal(t, []byte{0x85}, prefix)
	assert.Equal(t, byte(0), prefix[:2][1])
}

func TestLedger(t *testing.T) {
	var l Ledger
	widths := []int{1, 0, 3, 1, 65536}

	sum := 0
	for _, w := range widths {
		r := l.Advance(w)
		assert.Equal(t, sum, r.Start)
		assert.Equal(t, w, r.Len())
		sum += w
	}
	assert.Equal(t, sum, l.Len())
}

func TestRange(t *testing.T) {
	buf := []byte{0, 1, 2, 3, 4, 5}
	r := Range{Start: 2, End: 5}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []byte{2, 3, 4}, r.Of(buf))
	assert.Equal(t, "2..5", r.String())
	assert.Empty(t, Range{Start: 4, End: 4}.Of(buf))
}

func BenchmarkBuilderTransaction(b *testing.B) {
	payload := make([]byte, 256)
	bld := NewBuilder()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		bld.Reset().
			SetGPIOLower(0x00, 0x0B).
			ClockDataOut(DataOutMsbNeg, payload).
			ClockDataIn(DataInMsbPos, 256).
			SetGPIOLower(0x08, 0x0B).
			SendImmediate()
	}
}
