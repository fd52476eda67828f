package inslide

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		generic bool
		code    int
	}{
		{"generic", ErrGeneric, true, CodeError},
		{"not initialized", ErrNotInitialized, true, CodeError},
		{"malformed chain", ErrMalformedChain, true, CodeError},
		{"digit range", ErrDigitRange, true, CodeError},
		{"malformed digit", ErrMalformedDigit, true, CodeError},
		{"wrapped malformed digit", fmt.Errorf("%w: digit 1", ErrMalformedDigit), true, CodeError},
		{"too many digits", ErrTooManyDigits, false, CodeTooManyDigits},
		{"invalid digit", ErrInvalidDigit, false, CodeInvalidDigit},
		{"nil", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, ErrGeneric); got != tt.generic {
				t.Errorf("errors.Is(%v, ErrGeneric) = %v, want %v", tt.err, got, tt.generic)
			}
			if got := Code(tt.err); got != tt.code {
				t.Errorf("Code(%v) = %d, want %d", tt.err, got, tt.code)
			}
		})
	}
}

func TestErrorsDistinct(t *testing.T) {
	errs := []error{ErrGeneric, ErrTooManyDigits, ErrInvalidDigit}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

func TestSensorMask(t *testing.T) {
	if sensorMask != 0x7F {
		t.Errorf("sensorMask = 0x%02X, want 0x7F", sensorMask)
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{Input, "in"},
		{Output, "out"},
		{Direction(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", int(tt.d), got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	d := &Dev{nDigits: countTooManyDigits}
	if err := d.check(0); !errors.Is(err, ErrDigitRange) {
		t.Errorf("check(0) on failed device = %v, want ErrDigitRange", err)
	}
	d = &Dev{nDigits: 2}
	if err := d.check(1); err != nil {
		t.Errorf("check(1) = %v", err)
	}
	if err := d.check(2); !errors.Is(err, ErrDigitRange) {
		t.Errorf("check(2) = %v, want ErrDigitRange", err)
	}
}
