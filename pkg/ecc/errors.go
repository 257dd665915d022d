package ecc

import "fmt"

// OpError records the operation and curve that failed.
// It lets callers tell which step of a multi-step flow rejected its input
// while errors.Is still matches the underlying sentinel.
type OpError struct {
	Op    string
	Curve string
	Err   error
}

func (e *OpError) Error() string {
	if e.Curve != "" {
		return fmt.Sprintf("%s %s: %v", e.Curve, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates a new OpError.
func NewOpError(op string, curve Curve, err error) *OpError {
	name := ""
	if curve != nil {
		name = curve.Name()
	}
	return &OpError{
		Op:    op,
		Curve: name,
		Err:   err,
	}
}
