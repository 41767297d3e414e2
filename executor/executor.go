package executor

import "context"

// Executor writes MPSSE command streams to a device and reads its responses.
//
// Implementations own the transport: USB handles, timeouts, latency timer and
// any retry policy. Errors from Init, Send and Recv should be *InitError,
// *SendError and *RecvError respectively.
type Executor interface {
	// Init configures the device for MPSSE mode.
	Init(ctx context.Context, s Settings) error

	// Send writes a complete command stream.
	Send(ctx context.Context, data []byte) error

	// Recv fills data with exactly len(data) response bytes.
	Recv(ctx context.Context, data []byte) error
}

// Transferer is implemented by executors that can send a command stream and
// receive its response as one uninterruptible operation.
type Transferer interface {
	Xfer(ctx context.Context, tx, rx []byte) error
}

// Xfer sends tx and then receives into rx. It uses e's own Xfer when e is a
// Transferer. It stops at the first failure and does not retry.
func Xfer(ctx context.Context, e Executor, tx, rx []byte) error {
	if t, ok := e.(Transferer); ok {
		return t.Xfer(ctx, tx, rx)
	}
	if err := e.Send(ctx, tx); err != nil {
		return err
	}
	return e.Recv(ctx, rx)
}
