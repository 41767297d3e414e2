package executor

import (
	"context"
	"fmt"

	"github.com/moffa90/go-mpsse/mpsse"
	"github.com/moffa90/go-mpsse/static"
)

// Response is the raw response to a command stream, indexed with the offsets
// and ranges captured while building it.
type Response []byte

// Byte returns the response byte at idx.
func (r Response) Byte(idx int) byte {
	return r[idx]
}

// Slice returns the response bytes in rg.
func (r Response) Slice(rg mpsse.Range) []byte {
	return rg.Of(r)
}

// Run sends the builder's command stream and receives its full response.
// The receive is skipped when the stream produces no response bytes.
//
// Example:
//
//	b, id := mpsse.NewBuilder().
//	    SetGPIOLower(0x00, 0x0B).
//	    ClockDataOut(mpsse.DataOutMsbNeg, []byte{0x9F}).
//	    ClockDataInAt(mpsse.DataInMsbPos, 3)
//	b.SetGPIOLower(0x08, 0x0B).SendImmediate()
//
//	resp, err := executor.Run(ctx, ex, b)
//	jedec := resp.Slice(id)
func Run(ctx context.Context, e Executor, b *mpsse.Builder) (Response, error) {
	return run(ctx, e, b.Bytes(), b.ReadLen())
}

// RunProgram is Run for a compiled static program.
func RunProgram(ctx context.Context, e Executor, p *static.Program) (Response, error) {
	return run(ctx, e, p.Bytes, p.ReadLen)
}

func run(ctx context.Context, e Executor, tx []byte, readLen int) (Response, error) {
	if len(tx) == 0 {
		return nil, fmt.Errorf("command stream is empty")
	}

	if readLen == 0 {
		return nil, e.Send(ctx, tx)
	}

	rx := make(Response, readLen)
	if err := Xfer(ctx, e, tx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}
