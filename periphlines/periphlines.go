// Package periphlines drives InSlide lines through periph.io GPIO pins.
//
// Call host.Init from periph.io/x/host/v3 before looking up pins.
package periphlines

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/flavioheleno/inslide"
)

// Lines implements inslide.Lines over gpio.PinIO.
type Lines struct {
	lookup func(n int) gpio.PinIO
	pins   map[int]gpio.PinIO
}

// New returns lines resolved by lookup. A nil lookup finds pins by number in
// the periph.io GPIO registry.
func New(lookup func(n int) gpio.PinIO) *Lines {
	if lookup == nil {
		lookup = ByNumber
	}
	return &Lines{
		lookup: lookup,
		pins:   make(map[int]gpio.PinIO),
	}
}

// ByNumber returns the registered pin with GPIO number n, or nil.
func ByNumber(n int) gpio.PinIO {
	return gpioreg.ByName(strconv.Itoa(n))
}

func (l *Lines) pin(n int) (gpio.PinIO, error) {
	if p, ok := l.pins[n]; ok {
		return p, nil
	}
	p := l.lookup(n)
	if p == nil {
		return nil, fmt.Errorf("periphlines: GPIO%d not found", n)
	}
	l.pins[n] = p
	return p, nil
}

// SetDirection implements inslide.Lines. An output keeps the level the pin
// currently reads.
func (l *Lines) SetDirection(n int, dir inslide.Direction) error {
	p, err := l.pin(n)
	if err != nil {
		return err
	}
	switch dir {
	case inslide.Input:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case inslide.Output:
		return p.Out(p.Read())
	}
	return fmt.Errorf("periphlines: unknown direction %d", dir)
}

// Write implements inslide.Lines.
func (l *Lines) Write(n int, level gpio.Level) error {
	p, err := l.pin(n)
	if err != nil {
		return err
	}
	return p.Out(level)
}

// Read implements inslide.Lines.
func (l *Lines) Read(n int) (gpio.Level, error) {
	p, err := l.pin(n)
	if err != nil {
		return gpio.Low, err
	}
	return p.Read(), nil
}
