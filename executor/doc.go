// Package executor connects MPSSE command streams to a device.
//
// # Overview
//
// Executor is the contract a transport implements: Init configures the
// engine from Settings, Send writes a command stream, and Recv reads exactly
// the number of response bytes the stream produces. Xfer combines the two.
//
// Stream implements Executor over any io.ReadWriter:
//
//	ex := executor.NewStream(port, executor.WithLogger(logger))
//	if err := ex.Init(ctx, executor.DefaultSettings().WithClockFrequency(1_000_000)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Running Commands
//
// Run sends a builder's bytes and allocates the response buffer from the
// builder's read ledger:
//
//	b, pins := mpsse.NewBuilder().GPIOLowerAt()
//	resp, err := executor.Run(ctx, ex, b.SendImmediate())
//	state := resp.Byte(pins)
//
// # Error Handling
//
// Transport failures are reported as typed errors wrapping the cause:
//   - InitError: the device could not be configured
//   - SendError: a command stream could not be written
//   - RecvError: the response was short or the read failed
//
// Nothing in this package retries. Retry policy belongs to the caller or the
// transport.
//
// # Hardware Independence
//
// This package does NOT open USB devices. Supply an io.ReadWriter for your
// hardware, or use mpssetest.Device for tests.
package executor
