package trace

import "errors"

var (
	// ErrNilStep indicates that a nil Step was passed where a step is required.
	ErrNilStep = errors.New("trace: step is nil")

	// ErrIndexOutOfRange indicates an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("trace: index out of range")
)
