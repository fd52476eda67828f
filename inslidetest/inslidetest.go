// Package inslidetest simulates an InSlide device for tests.
//
// Chain implements inslide.Lines with a software model of the shift register
// chain: each digit module is an 8-bit parallel-in serial-out register, and
// all modules are clocked together on the rising edge of the clock line.
package inslidetest

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/inslide"
	"github.com/flavioheleno/inslide/segments"
)

// Chain is a simulated chain of digit modules wired to four numbered lines.
//
// Stage 0 of the chain is fed from serial-in and the last stage drives
// serial-out. Digit 0 is the module nearest serial-in. While parallel load
// is low, a rising clock edge loads every module from its sensors instead of
// shifting. Sensors are active low on the wire.
type Chain struct {
	clk, plBar, sIn, sOut int

	modules  int
	skew     int // Extra stages between serial-in and digit 0
	stages   []gpio.Level
	patterns []segments.Pattern
	unused   gpio.Level // Level of each module's eighth parallel input

	dirs   map[int]inslide.Direction
	levels map[int]gpio.Level
	fail   map[int]error
	pulses int
}

// NewChain returns a chain of modules digit modules wired to the given lines.
// A chain with no modules always reads low on serial-out.
func NewChain(clk, plBar, sIn, sOut, modules int) *Chain {
	c := &Chain{
		clk:      clk,
		plBar:    plBar,
		sIn:      sIn,
		sOut:     sOut,
		modules:  modules,
		patterns: make([]segments.Pattern, modules),
		unused:   gpio.Low,
		dirs:     make(map[int]inslide.Direction),
		levels:   make(map[int]gpio.Level),
		fail:     make(map[int]error),
	}
	c.stages = make([]gpio.Level, c.length())
	return c
}

func (c *Chain) length() int {
	return c.skew + c.modules*inslide.BitsPerDigit
}

// SetSkew inserts n extra register stages ahead of digit 0, so that the
// chain length is no longer a whole number of digits. It resets the chain.
func (c *Chain) SetSkew(n int) {
	c.skew = n
	c.stages = make([]gpio.Level, c.length())
}

// SetPattern sets the sensors of module digit to p.
func (c *Chain) SetPattern(digit int, p segments.Pattern) {
	if digit < 0 || digit >= c.modules {
		panic(fmt.Sprintf("inslidetest: digit %d out of range", digit))
	}
	c.patterns[digit] = p & segments.Mask
}

// SetUnused sets the level of the unused eighth parallel input of every
// module.
func (c *Chain) SetUnused(l gpio.Level) {
	c.unused = l
}

// Fail makes every later operation on line return err. A nil err clears it.
func (c *Chain) Fail(line int, err error) {
	if err == nil {
		delete(c.fail, line)
		return
	}
	c.fail[line] = err
}

// Pulses returns the number of rising clock edges seen so far.
func (c *Chain) Pulses() int {
	return c.pulses
}

// Level returns the last level driven on line.
func (c *Chain) Level(line int) gpio.Level {
	return c.levels[line]
}

// Direction returns the configured direction of line.
func (c *Chain) Direction(line int) (inslide.Direction, bool) {
	d, ok := c.dirs[line]
	return d, ok
}

// SetDirection implements inslide.Lines.
func (c *Chain) SetDirection(line int, dir inslide.Direction) error {
	if err := c.fail[line]; err != nil {
		return err
	}
	c.dirs[line] = dir
	return nil
}

// Write implements inslide.Lines.
func (c *Chain) Write(line int, l gpio.Level) error {
	if err := c.fail[line]; err != nil {
		return err
	}
	if d, ok := c.dirs[line]; !ok || d != inslide.Output {
		return fmt.Errorf("inslidetest: line %d is not an output", line)
	}
	prev := c.levels[line]
	c.levels[line] = l
	if line == c.clk && prev == gpio.Low && l == gpio.High {
		c.clock()
	}
	return nil
}

// Read implements inslide.Lines.
func (c *Chain) Read(line int) (gpio.Level, error) {
	if err := c.fail[line]; err != nil {
		return gpio.Low, err
	}
	if line != c.sOut {
		return c.levels[line], nil
	}
	if d, ok := c.dirs[line]; !ok || d != inslide.Input {
		return gpio.Low, errors.New("inslidetest: serial-out is not an input")
	}
	if len(c.stages) == 0 {
		return gpio.Low, nil
	}
	return c.stages[len(c.stages)-1], nil
}

func (c *Chain) clock() {
	c.pulses++
	if c.levels[c.plBar] == gpio.Low {
		c.load()
		return
	}
	if len(c.stages) == 0 {
		return
	}
	copy(c.stages[1:], c.stages[:len(c.stages)-1])
	c.stages[0] = c.levels[c.sIn]
}

// load copies every module's sensor state into its register. Bit b of a
// module sits at stage skew+8*digit+b, so the highest bit of the last digit
// is the one on serial-out.
func (c *Chain) load() {
	for digit, p := range c.patterns {
		base := c.skew + digit*inslide.BitsPerDigit
		for b := 0; b < inslide.BitsPerDigit; b++ {
			l := gpio.High
			if b >= inslide.SensorsPerDigit {
				l = c.unused
			} else if p&(1<<uint(b)) != 0 {
				l = gpio.Low
			}
			c.stages[base+b] = l
		}
	}
}
