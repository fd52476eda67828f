package gpiodlines

import (
	"testing"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/inslide"
)

func TestUnconfiguredLine(t *testing.T) {
	l := &Lines{lines: make(map[int]*gpiod.Line)}

	if err := l.Write(3, gpio.High); err == nil {
		t.Error("Write should fail before SetDirection")
	}
	if _, err := l.Read(3); err == nil {
		t.Error("Read should fail before SetDirection")
	}
}

func TestSetDirectionWithoutChip(t *testing.T) {
	l := &Lines{lines: make(map[int]*gpiod.Line)}

	if err := l.SetDirection(3, inslide.Output); err == nil {
		t.Error("SetDirection should fail without an open chip")
	}
	if _, ok := l.lines[3]; ok {
		t.Error("failed request should not be recorded")
	}
	if err := l.SetDirection(3, inslide.Direction(5)); err == nil {
		t.Error("SetDirection should reject an unknown direction")
	}
}

func TestCloseWithoutChip(t *testing.T) {
	l := &Lines{lines: make(map[int]*gpiod.Line)}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
