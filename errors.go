package inslide

import "errors"

var (
	// ErrGeneric is the generic failure. Every error reported for a bad
	// digit index, a digit that is not well formed or a chain of the wrong
	// length matches it with errors.Is.
	ErrGeneric = errors.New("inslide: error")

	// ErrTooManyDigits means discovery never saw the marker bit come back:
	// the device has more than MaxDigits digits, or none are connected.
	ErrTooManyDigits = errors.New("inslide: unable to detect number of digits")

	// ErrInvalidDigit is reserved. No operation currently returns it.
	ErrInvalidDigit = errors.New("inslide: invalid digit")
)

// Specific causes of ErrGeneric.
var (
	ErrNotInitialized = &kindError{"inslide: device not initialized", ErrGeneric}
	ErrMalformedChain = &kindError{"inslide: chain length is not a whole number of digits", ErrGeneric}
	ErrDigitRange     = &kindError{"inslide: digit out of range", ErrGeneric}
	ErrMalformedDigit = &kindError{"inslide: not a well formed digit", ErrGeneric}
)

// kindError is a specific error that also matches a broader one.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Legacy status codes, as used by the InSlide Arduino library.
const (
	CodeError         = -1
	CodeTooManyDigits = -2
	CodeInvalidDigit  = -3
)

// Code maps err to its legacy status code. It returns 0 for a nil error.
// Line I/O errors map to CodeError.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrTooManyDigits):
		return CodeTooManyDigits
	case errors.Is(err, ErrInvalidDigit):
		return CodeInvalidDigit
	}
	return CodeError
}
