package executor

import (
	"fmt"
	"time"

	"github.com/moffa90/go-mpsse/mpsse"
)

// Settings describes how an executor should configure the device for MPSSE mode.
type Settings struct {
	// Reset resets the MPSSE controller before configuring it
	Reset bool

	// InTransferSize is the USB IN transfer size in bytes
	InTransferSize uint32

	// ReadTimeout bounds each receive
	ReadTimeout time.Duration

	// WriteTimeout bounds each send
	WriteTimeout time.Duration

	// LatencyTimer is the device's latency timer interval
	LatencyTimer time.Duration

	// Mask is the initial GPIO direction of pins 0-7 (1 = output)
	Mask byte

	// ClockFrequency is the initial engine clock in Hz.
	// Nil leaves the clock unchanged.
	ClockFrequency *uint32
}

// Device limits for Settings validation.
const (
	MinTransferSize = 64
	MaxTransferSize = 65536

	// MaxLatencyTimer is the largest latency timer the device accepts (255 ms)
	MaxLatencyTimer = 255 * time.Millisecond
)

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Reset:          true,
		InTransferSize: 4096,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		LatencyTimer:   16 * time.Millisecond,
		Mask:           0x00,
	}
}

// WithClockFrequency returns a copy of s with the clock frequency set.
func (s Settings) WithClockFrequency(hz uint32) Settings {
	s.ClockFrequency = &hz
	return s
}

// Validate reports the first setting the device cannot accept.
func (s Settings) Validate() error {
	if s.InTransferSize < MinTransferSize || s.InTransferSize > MaxTransferSize {
		return fmt.Errorf("in transfer size %d out of range %d-%d", s.InTransferSize, MinTransferSize, MaxTransferSize)
	}
	if s.InTransferSize%64 != 0 {
		return fmt.Errorf("in transfer size %d is not a multiple of 64", s.InTransferSize)
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if s.LatencyTimer < time.Millisecond || s.LatencyTimer > MaxLatencyTimer {
		return fmt.Errorf("latency timer %s out of range 1ms-%s", s.LatencyTimer, MaxLatencyTimer)
	}
	if s.ClockFrequency != nil {
		if _, _, err := mpsse.ClockDivisor(*s.ClockFrequency); err != nil {
			return err
		}
	}
	return nil
}

// Commands returns the MPSSE command stream that applies s to the engine:
// loopback off, pins 0-7 driven low with direction Mask, and the clock
// divisor when ClockFrequency is set. Reset, timeouts and transfer sizes are
// transport settings and produce no commands.
func (s Settings) Commands() (*mpsse.Builder, error) {
	b := mpsse.NewBuilder().
		DisableLoopback().
		SetGPIOLower(0x00, s.Mask)

	if s.ClockFrequency != nil {
		div, clkdiv, err := mpsse.ClockDivisor(*s.ClockFrequency)
		if err != nil {
			return nil, err
		}
		b.SetClock(div, clkdiv)
	}

	return b, nil
}
