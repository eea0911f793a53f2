package mapitem

import "errors"

var (
	// ErrIncompleteBuffer is returned when there are fewer than NumPixels
	// colors
	ErrIncompleteBuffer = errors.New("not enough color data")
	// ErrTooMuchData is returned when there are more than NumPixels colors
	ErrTooMuchData = errors.New("too much color data")
	// ErrMissingField is returned when a required field is absent
	ErrMissingField = errors.New("missing field")
	// ErrWrongType is returned when a field has an unexpected tag type
	ErrWrongType = errors.New("wrong tag type")
	// ErrOutOfRange is returned when a field holds an impossible value
	ErrOutOfRange = errors.New("value out of range")
)

// DecodeError records a failure to decode a map item.
type DecodeError struct {
	// Field is the path of the offending field, empty if the failure is
	// not specific to one field
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return "mapitem: " + e.Err.Error()
	}
	return "mapitem: " + e.Field + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
