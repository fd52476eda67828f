package inslide

import "periph.io/x/conn/v3/gpio"

// Direction is the configured direction of a line.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	}
	return "unknown"
}

// Lines is the host capability the driver needs: configuring, driving and
// sampling numbered digital lines.
//
// Implementations for periph.io, go-rpio and the Linux GPIO character device
// live in the periphlines, rpiolines and gpiodlines packages. The inslidetest
// package provides a simulated device.
type Lines interface {
	// SetDirection configures line as an input or an output.
	SetDirection(line int, dir Direction) error
	// Write drives an output line to level l.
	Write(line int, l gpio.Level) error
	// Read samples the current level of line.
	Read(line int) (gpio.Level, error)
}
