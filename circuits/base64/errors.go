package cb64

import "errors"

var (
	// ErrShapeInconsistency is returned when the derived circuit shape does
	// not match the standard base64 length for the decoded byte size.
	ErrShapeInconsistency = errors.New("base64 shape inconsistency")

	// ErrInvalidValue is returned for 6-bit values outside 0..63.
	ErrInvalidValue = errors.New("invalid base64 6-bit value")

	// ErrInvalidCharacter is returned for characters outside the RFC 4648
	// standard alphabet.
	ErrInvalidCharacter = errors.New("invalid base64 character")

	ErrTableNotLoaded = errors.New("base64 lookup table not loaded")
	ErrTableLoaded    = errors.New("base64 lookup table already loaded")
	ErrInputSize      = errors.New("unexpected input size")
	ErrLaneSize       = errors.New("unexpected lane size")
)
