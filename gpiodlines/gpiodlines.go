// Package gpiodlines drives InSlide lines through the Linux GPIO character
// device. Line numbers are offsets on the chip.
package gpiodlines

import (
	"fmt"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/inslide"
)

// Consumer is the label the requested lines carry.
const Consumer = "inslide"

// Lines implements inslide.Lines on one GPIO chip. Each line is requested
// the first time its direction is set.
type Lines struct {
	chip  *gpiod.Chip
	lines map[int]*gpiod.Line
}

// Open opens chip, e.g. "gpiochip0".
func Open(chip string) (*Lines, error) {
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("gpiodlines: failed to open %s: %w", chip, err)
	}
	return &Lines{
		chip:  c,
		lines: make(map[int]*gpiod.Line),
	}, nil
}

// Close releases all requested lines and the chip.
func (l *Lines) Close() error {
	for offset, ln := range l.lines {
		ln.Close()
		delete(l.lines, offset)
	}
	if l.chip == nil {
		return nil
	}
	return l.chip.Close()
}

// SetDirection implements inslide.Lines.
func (l *Lines) SetDirection(offset int, dir inslide.Direction) error {
	ln, requested := l.lines[offset]
	var err error
	switch dir {
	case inslide.Input:
		if requested {
			return ln.Reconfigure(gpiod.AsInput)
		}
		ln, err = l.request(offset, gpiod.AsInput)
	case inslide.Output:
		if requested {
			return ln.Reconfigure(gpiod.AsOutput(0))
		}
		ln, err = l.request(offset, gpiod.AsOutput(0))
	default:
		return fmt.Errorf("gpiodlines: unknown direction %d", dir)
	}
	if err != nil {
		return err
	}
	l.lines[offset] = ln
	return nil
}

func (l *Lines) request(offset int, opt gpiod.LineReqOption) (*gpiod.Line, error) {
	if l.chip == nil {
		return nil, fmt.Errorf("gpiodlines: chip not open")
	}
	ln, err := l.chip.RequestLine(offset, opt)
	if err != nil {
		return nil, fmt.Errorf("gpiodlines: failed to request line %d: %w", offset, err)
	}
	return ln, nil
}

func (l *Lines) line(offset int) (*gpiod.Line, error) {
	ln, ok := l.lines[offset]
	if !ok {
		return nil, fmt.Errorf("gpiodlines: line %d not configured", offset)
	}
	return ln, nil
}

// Write implements inslide.Lines.
func (l *Lines) Write(offset int, level gpio.Level) error {
	ln, err := l.line(offset)
	if err != nil {
		return err
	}
	v := 0
	if level == gpio.High {
		v = 1
	}
	return ln.SetValue(v)
}

// Read implements inslide.Lines.
func (l *Lines) Read(offset int) (gpio.Level, error) {
	ln, err := l.line(offset)
	if err != nil {
		return gpio.Low, err
	}
	v, err := ln.Value()
	if err != nil {
		return gpio.Low, err
	}
	return v != 0, nil
}
