package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.Reset)
	assert.Equal(t, uint32(4096), s.InTransferSize)
	assert.Equal(t, time.Second, s.ReadTimeout)
	assert.Equal(t, time.Second, s.WriteTimeout)
	assert.Equal(t, 16*time.Millisecond, s.LatencyTimer)
	assert.Equal(t, byte(0), s.Mask)
	assert.Nil(t, s.ClockFrequency)
	assert.NoError(t, s.Validate())
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"transfer size minimum", func(s *Settings) { s.InTransferSize = MinTransferSize }, false},
		{"transfer size maximum", func(s *Settings) { s.InTransferSize = MaxTransferSize }, false},
		{"transfer size too small", func(s *Settings) { s.InTransferSize = 32 }, true},
		{"transfer size too large", func(s *Settings) { s.InTransferSize = MaxTransferSize + 64 }, true},
		{"transfer size not aligned", func(s *Settings) { s.InTransferSize = 100 }, true},
		{"negative read timeout", func(s *Settings) { s.ReadTimeout = -time.Second }, true},
		{"zero write timeout", func(s *Settings) { s.WriteTimeout = 0 }, false},
		{"latency too short", func(s *Settings) { s.LatencyTimer = 0 }, true},
		{"latency maximum", func(s *Settings) { s.LatencyTimer = MaxLatencyTimer }, false},
		{"latency too long", func(s *Settings) { s.LatencyTimer = 256 * time.Millisecond }, true},
		{"clock valid", func(s *Settings) { *s = s.WithClockFrequency(1_000_000) }, false},
		{"clock zero", func(s *Settings) { *s = s.WithClockFrequency(0) }, true},
		{"clock too fast", func(s *Settings) { *s = s.WithClockFrequency(60_000_000) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)

			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsCommands(t *testing.T) {
	s := DefaultSettings()
	s.Mask = 0x0B

	b, err := s.Commands()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x85, 0x80, 0x00, 0x0B}, b.Bytes())
	assert.Equal(t, 0, b.ReadLen())

	b, err = s.WithClockFrequency(1_000_000).Commands()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x85, 0x80, 0x00, 0x0B, 0x8A, 0x86, 0x1D, 0x00}, b.Bytes())

	_, err = s.WithClockFrequency(10).Commands()
	assert.Error(t, err)
}

func TestWithClockFrequencyCopies(t *testing.T) {
	s := DefaultSettings()
	c := s.WithClockFrequency(100_000)

	assert.Nil(t, s.ClockFrequency)
	require.NotNil(t, c.ClockFrequency)
	assert.Equal(t, uint32(100_000), *c.ClockFrequency)
}
