// Package inslide reads an InSlide mechanical seven-segment input device.
//
// An InSlide device is a row of digit modules. Each module looks like a
// seven-segment display, but its segments are set by hand with three
// sliders, and seven Hall effect sensors (A through G) report their
// positions. Every module has a 74HC165 style parallel-in serial-out shift
// register, and the registers are chained so the whole device is read over
// four lines.
//
// # Hardware Connection
//
//	Device Pin → System Pin
//	GND        → GND
//	VCC        → 3.3V
//	CLK        → GPIO (output)
//	PL         → GPIO (output, active low parallel load)
//	SIN        → GPIO (output, serial input of the first module)
//	SOUT       → GPIO (input, serial output of the last module)
//
// # Discovery
//
// Begin finds out how many digits the device has. It clocks zeroes through
// the whole chain, then holds serial-in high and counts clock pulses until
// the first 1 comes out of serial-out. A chain of n modules returns the
// marker after 8×n pulses. Up to MaxDigits modules are supported.
//
// # Reading
//
// Update latches the sensors of every module with one parallel load and
// shifts the bits in, highest digit first. Sensors pull their line low when
// active, so a low level reads as a 1. The eighth bit of every module is
// unused and cleared.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/flavioheleno/inslide"
//		"github.com/flavioheleno/inslide/periphlines"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// CLK, PL, SIN and SOUT on GPIO4, GPIO7, GPIO6 and GPIO5
//		dev := inslide.New(periphlines.New(nil), 4, 7, 6, 5, nil)
//		if _, err := dev.Begin(); err != nil {
//			fmt.Println(err)
//			return
//		}
//
//		dev.Update()
//		v, err := dev.Value()
//		fmt.Println(v, err)
//	}
//
// # Errors
//
// Begin, DigitCount, DigitValue and SensorState return errors instead of the
// negative codes of the InSlide Arduino library. Bad digit numbers,
// malformed digits and chains whose length is not a whole number of digits
// all match ErrGeneric. A chain where the marker never shows up returns
// ErrTooManyDigits. Code maps an error back to the old numeric code.
//
// # Diagnostics
//
// Set Opts.Logger to a charmbracelet/log logger at debug level to trace the
// discovered digit count, the raw data read by every Update and digits that
// are not well formed.
//
// # Testing
//
// The inslidetest package simulates a chain of any length, with sensor
// patterns set per digit, so code using the driver can be tested without
// hardware.
package inslide
