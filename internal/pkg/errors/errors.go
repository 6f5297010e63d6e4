package errors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalid           = errors.New("invalid")
	ErrUnavailable       = errors.New("ai provider unavailable")
	ErrExtraction        = errors.New("text extraction failed")
	ErrEmptyContent      = errors.New("document has no extractable text")
	ErrProvider          = errors.New("provider call failed")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
