package inslide

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/inslide/segments"
)

const (
	// MaxDigits is the largest number of digit modules a device may have.
	MaxDigits = 4
	// SensorsPerDigit is the number of sensors on each digit module.
	SensorsPerDigit = 7
	// BitsPerDigit is the number of bits each module shifts out.
	BitsPerDigit = 8
)

// sensorMask trims the unused bit(s) of a shifted byte.
const sensorMask = byte(0xFF >> (BitsPerDigit - SensorsPerDigit))

// Digit count sentinels. A valid count is always >= 1.
const (
	countUninitialized = 0
	countError         = -1
	countTooManyDigits = -2
)

// Opts is the configuration for the device.
type Opts struct {
	// Logger receives a debug trace of discovery and reads (optional, nil
	// keeps the driver silent).
	Logger *log.Logger
}

// Dev is the handle of an InSlide device.
type Dev struct {
	l Lines

	// Line numbers
	clk   int
	plBar int // Parallel load, active low
	sIn   int
	sOut  int

	nDigits int
	err     error // Why nDigits < 1
	sensors [MaxDigits]byte

	logger *log.Logger
}

// New returns a device bound to the clock, parallel load, serial-in and
// serial-out lines of l. No I/O happens until Begin.
//
// opts can be nil.
func New(l Lines, clk, plBar, sIn, sOut int, opts *Opts) *Dev {
	d := &Dev{
		l:       l,
		clk:     clk,
		plBar:   plBar,
		sIn:     sIn,
		sOut:    sOut,
		nDigits: countUninitialized,
		err:     ErrNotInitialized,
	}
	if opts != nil {
		d.logger = opts.Logger
	}
	return d
}

// Begin configures the lines and discovers how many digits the device has.
//
// It clears the chain, then shifts in a single 1 and counts clock pulses
// until it comes out on serial-out. Calling Begin again probes the device
// again.
//
// It returns ErrTooManyDigits when the marker never comes back and an error
// matching ErrGeneric when the chain length is not a whole number of digits.
func (d *Dev) Begin() (int, error) {
	d.sensors = [MaxDigits]byte{}
	n, err := d.discover()
	d.nDigits, d.err = n, err
	if err != nil {
		return 0, err
	}
	if n == 1 {
		d.debug("Initialized device with one digit")
	} else {
		d.debug("Initialized device", "digits", n)
	}
	return n, nil
}

// discover returns the digit count or a sentinel with the matching error.
func (d *Dev) discover() (int, error) {
	if err := d.setup(); err != nil {
		return countError, err
	}

	// Fill the chain with zeroes.
	budget := MaxDigits * BitsPerDigit
	for i := 0; i < budget; i++ {
		if err := d.pulse(); err != nil {
			return countError, err
		}
	}

	// Put ones in and count clock pulses until the first one comes out.
	if err := d.write(d.sIn, gpio.High); err != nil {
		return countError, err
	}
	bit := gpio.Low
	pulses := 0
	for ; pulses < budget; pulses++ {
		if err := d.pulse(); err != nil {
			return countError, err
		}
		var err error
		if bit, err = d.read(d.sOut); err != nil {
			return countError, err
		}
		if bit == gpio.High {
			break
		}
	}
	pulses++

	switch {
	case bit == gpio.Low:
		d.debug("Unable to detect how many digits in device")
		return countTooManyDigits, ErrTooManyDigits
	case pulses%BitsPerDigit != 0:
		d.debug("Marker bit not on a digit boundary", "pulses", pulses, "bitsPerDigit", BitsPerDigit)
		return countError, fmt.Errorf("%w: marker bit after %d clock pulses", ErrMalformedChain, pulses)
	}
	return pulses / BitsPerDigit, nil
}

// setup sets directions and idle levels of all four lines.
func (d *Dev) setup() error {
	outputs := []struct {
		line  int
		level gpio.Level
	}{
		{d.clk, gpio.Low},
		{d.plBar, gpio.High},
		{d.sIn, gpio.Low},
	}
	for _, o := range outputs {
		if err := d.l.SetDirection(o.line, Output); err != nil {
			return fmt.Errorf("inslide: failed to configure line %d: %w", o.line, err)
		}
		if err := d.write(o.line, o.level); err != nil {
			return err
		}
	}
	if err := d.l.SetDirection(d.sOut, Input); err != nil {
		return fmt.Errorf("inslide: failed to configure line %d: %w", d.sOut, err)
	}
	return nil
}

// DigitCount returns the number of digits found by Begin. Until Begin
// succeeds it returns the error that stopped it, or ErrNotInitialized.
func (d *Dev) DigitCount() (int, error) {
	if d.nDigits < 1 {
		return 0, d.err
	}
	return d.nDigits, nil
}

// Update latches the current sensor state of every digit and shifts it in.
// It does nothing when the device has not been initialized successfully.
//
// Only line I/O failures are reported.
func (d *Dev) Update() error {
	if d.nDigits < 1 {
		return nil
	}
	if err := d.write(d.plBar, gpio.Low); err != nil {
		return err
	}
	if err := d.pulse(); err != nil {
		return err
	}
	if err := d.write(d.plBar, gpio.High); err != nil {
		return err
	}

	// The highest digit comes out first, MSB first. Sensors are active low.
	for digit := d.nDigits - 1; digit >= 0; digit-- {
		var raw byte
		for bit := BitsPerDigit - 1; bit >= 0; bit-- {
			l, err := d.read(d.sOut)
			if err != nil {
				return err
			}
			if l == gpio.Low {
				raw |= 1 << uint(bit)
			}
			if err := d.pulse(); err != nil {
				return err
			}
		}
		d.sensors[digit] = raw & sensorMask
	}

	if d.logger != nil {
		d.debug("Raw sensor data", "data", d.rawString())
	}
	return nil
}

// DigitValue returns the decoded value (0x0-0xF) of digit dNo.
//
// The error matches ErrGeneric when dNo is not a digit of the device or when
// the digit's sliders do not form a valid digit.
func (d *Dev) DigitValue(dNo int) (int, error) {
	if err := d.check(dNo); err != nil {
		return 0, err
	}
	v, ok := segments.Decode(d.sensors[dNo])
	if !ok {
		d.warn("Digit is not well formed", "digit", dNo, "data", fmt.Sprintf("0x%02X", d.sensors[dNo]))
		return 0, fmt.Errorf("%w: digit %d sensor data 0x%02X", ErrMalformedDigit, dNo, d.sensors[dNo])
	}
	return v, nil
}

// Value returns the decoded value of digit 0.
func (d *Dev) Value() (int, error) {
	return d.DigitValue(0)
}

// SensorState returns the raw 7-bit sensor data of digit dNo as read by the
// last Update. Sensor E is bit 6, sensor D is bit 0.
func (d *Dev) SensorState(dNo int) (byte, error) {
	if err := d.check(dNo); err != nil {
		return 0, err
	}
	return d.sensors[dNo], nil
}

// State returns the raw sensor data of digit 0.
func (d *Dev) State() (byte, error) {
	return d.SensorState(0)
}

// Values returns the decoded value of every digit, digit 0 first. On error
// the values decoded so far are returned with it.
func (d *Dev) Values() ([]int, error) {
	n, err := d.DigitCount()
	if err != nil {
		return nil, err
	}
	values := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.DigitValue(i)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Number returns all digits read as one hexadecimal number, digit 0 being
// the least significant.
func (d *Dev) Number() (uint64, error) {
	values, err := d.Values()
	if err != nil {
		return 0, err
	}
	var n uint64
	for i := len(values) - 1; i >= 0; i-- {
		n = n<<4 | uint64(values[i])
	}
	return n, nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	n := d.nDigits
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("inslide.Dev{digits: %d}", n)
}

// check validates digit number dNo.
func (d *Dev) check(dNo int) error {
	if d.nDigits < 1 {
		if d.nDigits == countUninitialized {
			return ErrNotInitialized
		}
		return fmt.Errorf("%w: digit %d, device not usable", ErrDigitRange, dNo)
	}
	if dNo < 0 || dNo >= d.nDigits {
		return fmt.Errorf("%w: digit %d, device has %d", ErrDigitRange, dNo, d.nDigits)
	}
	return nil
}

// pulse strobes the clock: rising then falling edge.
func (d *Dev) pulse() error {
	if err := d.write(d.clk, gpio.High); err != nil {
		return err
	}
	return d.write(d.clk, gpio.Low)
}

func (d *Dev) write(line int, l gpio.Level) error {
	if err := d.l.Write(line, l); err != nil {
		return fmt.Errorf("inslide: failed to drive line %d %s: %w", line, l, err)
	}
	return nil
}

func (d *Dev) read(line int) (gpio.Level, error) {
	l, err := d.l.Read(line)
	if err != nil {
		return gpio.Low, fmt.Errorf("inslide: failed to read line %d: %w", line, err)
	}
	return l, nil
}

// rawString formats the sensor data in read order, highest digit first.
func (d *Dev) rawString() string {
	parts := make([]string, 0, d.nDigits)
	for digit := d.nDigits - 1; digit >= 0; digit-- {
		parts = append(parts, fmt.Sprintf("0x%02X", d.sensors[digit]))
	}
	return strings.Join(parts, " ")
}

func (d *Dev) debug(msg string, keyvals ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, keyvals...)
	}
}

func (d *Dev) warn(msg string, keyvals ...interface{}) {
	if d.logger != nil {
		d.logger.Warn(msg, keyvals...)
	}
}
