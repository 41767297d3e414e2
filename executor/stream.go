package executor

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
)

// Resetter is implemented by transports that can reset the MPSSE controller.
// Stream.Init calls it when Settings.Reset is true.
type Resetter interface {
	ResetMPSSE() error
}

// ReadDeadliner is implemented by transports with read deadlines, such as
// net.Conn and most serial port types.
type ReadDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// WriteDeadliner is implemented by transports with write deadlines.
type WriteDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Stream is an Executor over any io.ReadWriter connected to an engine that is
// already in MPSSE mode: a D2XX handle wrapper, a USB bulk endpoint pair, a
// network bridge, or a simulated device.
//
// Stream is safe for concurrent use. Send and Recv are serialized
// individually; use Xfer (or Run) when a command stream and its response must
// not interleave with another goroutine's transfer.
type Stream struct {
	mu       sync.Mutex
	rw       io.ReadWriter
	config   Config
	settings Settings
	xfer     ksuid.KSUID
}

// NewStream creates a Stream over rw.
//
// Example:
//
//	ex := executor.NewStream(port,
//	    executor.WithLogger(logger),
//	    executor.WithCommandDelay(time.Millisecond),
//	)
//	err := ex.Init(ctx, executor.DefaultSettings())
func NewStream(rw io.ReadWriter, opts ...Option) *Stream {
	if rw == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Stream{
		rw:       rw,
		config:   cfg,
		settings: DefaultSettings(),
	}
}

// Settings returns the settings passed to the last Init that got past
// validation, or DefaultSettings.
func (s *Stream) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Init validates settings, resets the controller if requested and supported,
// and sends the engine setup commands from Settings.Commands. The settings
// take effect only when the setup commands were sent.
func (s *Stream) Init(ctx context.Context, settings Settings) (err error) {
	start := time.Now()
	defer func() { s.config.Metrics.observe(opInit, 0, start, err) }()

	if err := settings.Validate(); err != nil {
		return &InitError{Err: err}
	}

	cmds, err := settings.Commands()
	if err != nil {
		return &InitError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &InitError{Err: err}
	}

	if r, ok := s.rw.(Resetter); ok && settings.Reset {
		if err := r.ResetMPSSE(); err != nil {
			return &InitError{Err: fmt.Errorf("reset: %w", err)}
		}
	}

	if err := s.send(ctx, cmds.Bytes(), settings.WriteTimeout); err != nil {
		return &InitError{Err: err}
	}
	s.settings = settings

	s.config.Logger.Debug().
		Bool("reset", settings.Reset).
		Str("mask", fmt.Sprintf("0x%02X", settings.Mask)).
		Str("commands", cmds.String()).
		Msg("mpsse initialized")

	return nil
}

// Send writes data to the device.
func (s *Stream) Send(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.send(ctx, data, s.settings.WriteTimeout)
}

// Xfer sends tx and receives into rx while holding the stream, so no other
// transfer can take rx's bytes.
func (s *Stream) Xfer(ctx context.Context, tx, rx []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.send(ctx, tx, s.settings.WriteTimeout); err != nil {
		return err
	}
	return s.recv(ctx, rx)
}

// Recv reads exactly len(data) bytes. A short read is a *RecvError wrapping
// io.ErrUnexpectedEOF.
func (s *Stream) Recv(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recv(ctx, data)
}

// recv reads data; the caller holds s.mu.
func (s *Stream) recv(ctx context.Context, data []byte) (err error) {
	start := time.Now()
	n := 0
	defer func() { s.config.Metrics.observe(opRecv, n, start, err) }()

	if err := ctx.Err(); err != nil {
		return &RecvError{Len: len(data), Err: err}
	}

	if d, ok := s.rw.(ReadDeadliner); ok && s.settings.ReadTimeout > 0 {
		if err := d.SetReadDeadline(time.Now().Add(s.settings.ReadTimeout)); err != nil {
			return &RecvError{Len: len(data), Err: fmt.Errorf("set read deadline: %w", err)}
		}
	}

	n, err = io.ReadFull(s.rw, data)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.config.Logger.Error().Err(err).
			Str("xfer", s.xfer.String()).
			Int("read", n).
			Int("len", len(data)).
			Msg("recv failed")
		return &RecvError{Len: len(data), Read: n, Err: err}
	}

	s.config.Logger.Debug().
		Str("xfer", s.xfer.String()).
		Int("len", n).
		Str("rx", hex.EncodeToString(data)).
		Msg("recv")

	return nil
}

// send writes data with the given write timeout; the caller holds s.mu.
func (s *Stream) send(ctx context.Context, data []byte, timeout time.Duration) (err error) {
	start := time.Now()
	written := 0
	defer func() { s.config.Metrics.observe(opSend, written, start, err) }()

	if err := ctx.Err(); err != nil {
		return &SendError{Len: len(data), Err: err}
	}

	s.xfer = ksuid.New()

	if d, ok := s.rw.(WriteDeadliner); ok && timeout > 0 {
		if err := d.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return &SendError{Len: len(data), Err: fmt.Errorf("set write deadline: %w", err)}
		}
	}

	for written < len(data) {
		n, err := s.rw.Write(data[written:])
		written += n
		if err != nil {
			s.config.Logger.Error().Err(err).
				Str("xfer", s.xfer.String()).
				Int("written", written).
				Int("len", len(data)).
				Msg("send failed")
			return &SendError{Len: len(data), Written: written, Err: err}
		}
		if n == 0 {
			return &SendError{Len: len(data), Written: written, Err: io.ErrShortWrite}
		}
	}

	s.config.Logger.Debug().
		Str("xfer", s.xfer.String()).
		Int("len", len(data)).
		Str("tx", hex.EncodeToString(data)).
		Msg("send")

	if s.config.CommandDelay > 0 {
		time.Sleep(s.config.CommandDelay)
	}

	return nil
}
