package executor

import "fmt"

// InitError indicates that the device could not be configured.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("mpsse init failed: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// SendError indicates that a command stream could not be written.
type SendError struct {
	// Len is the size of the command stream
	Len int

	// Written is the number of bytes accepted before the failure
	Written int

	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mpsse send failed after %d/%d bytes: %v", e.Written, e.Len, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// RecvError indicates that the expected response could not be read.
type RecvError struct {
	// Len is the number of bytes expected
	Len int

	// Read is the number of bytes received before the failure
	Read int

	Err error
}

func (e *RecvError) Error() string {
	return fmt.Sprintf("mpsse recv failed after %d/%d bytes: %v", e.Read, e.Len, e.Err)
}

func (e *RecvError) Unwrap() error { return e.Err }
