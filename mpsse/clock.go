package mpsse

import "fmt"

// Clock sources of H-series devices. The engine clock is half the master
// clock, divided by (1 + divisor).
const (
	// MaxClockHz is the fastest engine clock (60 MHz master, divisor 0).
	MaxClockHz = 30_000_000

	// Div5ClockHz is the engine clock with divide-by-5 enabled and divisor 0.
	Div5ClockHz = 6_000_000

	maxDivisor = 0xFFFF
)

// ClockDivisor returns the divisor and divide-by-5 setting for the fastest
// engine clock that does not exceed hz. The 60 MHz master clock is preferred;
// divide-by-5 is only selected when hz is below its 16-bit divisor range.
//
// Example:
//
//	div, clkdiv, err := mpsse.ClockDivisor(1_000_000)
//	b := mpsse.NewBuilder().SetClock(div, clkdiv)
func ClockDivisor(hz uint32) (uint32, ClockDivide, error) {
	if hz == 0 {
		return 0, DivideUnchanged, fmt.Errorf("clock frequency cannot be zero")
	}
	if hz > MaxClockHz {
		return 0, DivideUnchanged, fmt.Errorf("clock frequency %d Hz exceeds maximum %d Hz", hz, MaxClockHz)
	}

	if div := ceilDiv(MaxClockHz, hz) - 1; div <= maxDivisor {
		return div, DivideBy5Disable, nil
	}
	if div := ceilDiv(Div5ClockHz, hz) - 1; div <= maxDivisor {
		return div, DivideBy5Enable, nil
	}

	return 0, DivideUnchanged, fmt.Errorf("clock frequency %d Hz is below minimum %d Hz",
		hz, ceilDiv(Div5ClockHz, maxDivisor+1))
}

// ClockHz returns the engine clock produced by divisor and the divide-by-5
// setting. DivideUnchanged is treated as the 60 MHz master clock.
func ClockHz(divisor uint32, div ClockDivide) uint32 {
	base := uint32(MaxClockHz)
	if div == DivideBy5Enable {
		base = Div5ClockHz
	}
	return base / (1 + divisor&maxDivisor)
}

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}
