// Package rpiolines drives InSlide lines on a Raspberry Pi through go-rpio
// memory mapped GPIO. Line numbers are BCM GPIO numbers.
package rpiolines

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/inslide"
)

// Lines implements inslide.Lines with go-rpio.
type Lines struct{}

// Open maps the GPIO memory. Close must be called once done.
func Open() (*Lines, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "rpiolines: failed to open rpio")
	}
	return &Lines{}, nil
}

// Close unmaps the GPIO memory.
func (l *Lines) Close() error {
	return rpio.Close()
}

func pin(n int) (rpio.Pin, error) {
	if n < 0 || n > 255 {
		return 0, errors.Errorf("rpiolines: line %d out of range (rpio takes uint8 pin)", n)
	}
	return rpio.Pin(n), nil
}

// SetDirection implements inslide.Lines.
func (l *Lines) SetDirection(n int, dir inslide.Direction) error {
	p, err := pin(n)
	if err != nil {
		return err
	}
	switch dir {
	case inslide.Input:
		p.Input()
	case inslide.Output:
		p.Output()
	default:
		return errors.Errorf("rpiolines: unknown direction %d", dir)
	}
	return nil
}

// Write implements inslide.Lines.
func (l *Lines) Write(n int, level gpio.Level) error {
	p, err := pin(n)
	if err != nil {
		return err
	}
	p.Write(toState(level))
	return nil
}

// Read implements inslide.Lines.
func (l *Lines) Read(n int) (gpio.Level, error) {
	p, err := pin(n)
	if err != nil {
		return gpio.Low, err
	}
	return toLevel(p.Read()), nil
}

func toState(l gpio.Level) rpio.State {
	if l == gpio.High {
		return rpio.High
	}
	return rpio.Low
}

func toLevel(s rpio.State) gpio.Level {
	return s == rpio.High
}
