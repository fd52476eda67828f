package periphlines

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/flavioheleno/inslide"
)

func newTestLines() (*Lines, map[int]*gpiotest.Pin) {
	pins := map[int]*gpiotest.Pin{
		4: {N: "GPIO4", Num: 4},
		5: {N: "GPIO5", Num: 5},
	}
	l := New(func(n int) gpio.PinIO {
		if p, ok := pins[n]; ok {
			return p
		}
		return nil
	})
	return l, pins
}

func TestWriteRead(t *testing.T) {
	l, pins := newTestLines()

	if err := l.SetDirection(4, inslide.Output); err != nil {
		t.Fatalf("SetDirection() error = %v", err)
	}
	for _, want := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := l.Write(4, want); err != nil {
			t.Fatalf("Write(%s) error = %v", want, err)
		}
		if got := pins[4].Read(); got != want {
			t.Errorf("pin level = %s, want %s", got, want)
		}
		got, err := l.Read(4)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got != want {
			t.Errorf("Read() = %s, want %s", got, want)
		}
	}
}

func TestSetDirectionKeepsLevel(t *testing.T) {
	l, pins := newTestLines()
	pins[5].L = gpio.High

	if err := l.SetDirection(5, inslide.Output); err != nil {
		t.Fatalf("SetDirection() error = %v", err)
	}
	if got := pins[5].Read(); got != gpio.High {
		t.Errorf("pin level = %s after SetDirection, want High", got)
	}
}

func TestSetDirectionInput(t *testing.T) {
	l, _ := newTestLines()
	if err := l.SetDirection(5, inslide.Input); err != nil {
		t.Errorf("SetDirection(Input) error = %v", err)
	}
	if err := l.SetDirection(5, inslide.Direction(9)); err == nil {
		t.Error("SetDirection should reject an unknown direction")
	}
}

func TestMissingPin(t *testing.T) {
	l, _ := newTestLines()

	if err := l.SetDirection(17, inslide.Output); err == nil {
		t.Error("SetDirection should fail for a missing pin")
	}
	if err := l.Write(17, gpio.High); err == nil {
		t.Error("Write should fail for a missing pin")
	}
	if _, err := l.Read(17); err == nil {
		t.Error("Read should fail for a missing pin")
	}
}

func TestPinLookupCached(t *testing.T) {
	calls := 0
	p := &gpiotest.Pin{N: "GPIO6", Num: 6}
	l := New(func(n int) gpio.PinIO {
		calls++
		return p
	})
	for i := 0; i < 3; i++ {
		if _, err := l.Read(6); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("lookup called %d times, want 1", calls)
	}
}
