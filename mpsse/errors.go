package mpsse

import "fmt"

// LengthError describes a length the wire format cannot represent.
//
// Encoders panic with a *LengthError rather than returning it: a length
// outside the family's range is a programming error, and clamping it would
// corrupt the command stream.
type LengthError struct {
	// Operation is the encoder that rejected the length
	Operation string

	// Length is the requested count
	Length int

	// Max is the largest count the operation accepts
	Max int
}

// Error implements the error interface.
func (e *LengthError) Error() string {
	if e.Length < 0 {
		return fmt.Sprintf("%s: negative length %d", e.Operation, e.Length)
	}
	return fmt.Sprintf("%s: length %d exceeds maximum %d", e.Operation, e.Length, e.Max)
}

// IsLengthError returns true if the error is a LengthError.
func IsLengthError(err error) bool {
	_, ok := err.(*LengthError)
	return ok
}

// checkLen panics if n is outside 0..max. A negative n is reported the same way.
func checkLen(op string, n, max int) {
	if n < 0 || n > max {
		panic(&LengthError{Operation: op, Length: n, Max: max})
	}
}
