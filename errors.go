package stylizer

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodeFailure reports input that could not be turned into a PixelBuffer.
	ErrDecodeFailure = errors.New("stylizer: decode failure")
	// ErrSurfaceUnavailable reports a pixel buffer that could not be allocated.
	ErrSurfaceUnavailable = errors.New("stylizer: surface unavailable")
	// ErrInvalidParameters reports parameters rejected before any pixel work.
	ErrInvalidParameters = errors.New("stylizer: invalid parameters")
)

// StageError is returned by Pipeline.Apply when a stage fails.
// It unwraps to one of the sentinel errors above.
type StageError struct {
	Pipeline string
	Stage    string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Pipeline, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameters}, args...)...)
}
