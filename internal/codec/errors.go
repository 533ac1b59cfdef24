package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every [*FormatError].
	ErrFormat = errors.New("malformed delta stream")
	// ErrEncode is matched by every error returned from the encoders.
	ErrEncode = errors.New("delta cannot be encoded")
	// ErrInvalidString is returned when an identifier, column name or string
	// value is not valid UTF-8.
	ErrInvalidString = fmt.Errorf("%w: invalid utf-8 string", ErrEncode)
)

// FormatError reports where and why a stream could not be decoded.
type FormatError struct {
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrFormat, e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
