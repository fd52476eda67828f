// Package segments maps the raw sensor patterns of an InSlide digit module to
// hexadecimal values.
//
// Each digit module has seven Hall effect sensors, one per slider position,
// lettered A through G. A raw pattern holds one bit per sensor in EFGABCD
// order: sensor E is bit 6 and sensor D is bit 0. Bit 7 is never used.
package segments

// Pattern is a 7-bit raw sensor pattern of one digit module.
type Pattern byte

// Mask selects the meaningful sensor bits of a pattern.
const Mask Pattern = 0x7F

// Patterns recognized as the hexadecimal digits 0 through F.
//
//	                 EFGABCD
const (
	Digit0 Pattern = 0b1011010
	Digit1 Pattern = 0b0001011
	Digit2 Pattern = 0b1110001
	Digit3 Pattern = 0b1111011
	Digit4 Pattern = 0b0101000
	Digit5 Pattern = 0b1110100
	Digit6 Pattern = 0b1110110
	Digit7 Pattern = 0b0011011
	Digit8 Pattern = 0b1111010
	Digit9 Pattern = 0b1111000
	DigitA Pattern = 0b0111010
	DigitB Pattern = 0b1100110
	DigitC Pattern = 0b1011110
	DigitD Pattern = 0b1101001
	DigitE Pattern = 0b1111110
	DigitF Pattern = 0b0111110
)

// table is indexed by digit value.
var table = [16]Pattern{
	Digit0, Digit1, Digit2, Digit3,
	Digit4, Digit5, Digit6, Digit7,
	Digit8, Digit9, DigitA, DigitB,
	DigitC, DigitD, DigitE, DigitF,
}

// Decode returns the digit value (0-15) shown by raw sensor data b.
// The second result is false when b is not a well-formed digit; bits outside
// Mask make a pattern malformed.
func Decode(b byte) (int, bool) {
	for v, p := range table {
		if Pattern(b) == p {
			return v, true
		}
	}
	return 0, false
}

// Encode returns the pattern for digit value v (0-15).
func Encode(v int) (Pattern, bool) {
	if v < 0 || v >= len(table) {
		return 0, false
	}
	return table[v], true
}

// Sensor identifies one of the seven sensors of a digit module by its bit
// position in a Pattern.
type Sensor uint8

const (
	SensorD Sensor = iota
	SensorC
	SensorB
	SensorA
	SensorG
	SensorF
	SensorE
)

const letters = "DCBAGFE"

// String returns the sensor letter.
func (s Sensor) String() string {
	if int(s) >= len(letters) {
		return "?"
	}
	return letters[s : s+1]
}

// Has reports whether sensor s is active in p.
func (p Pattern) Has(s Sensor) bool {
	return s <= SensorE && p&(1<<s) != 0
}

// Valid reports whether p is one of the 16 digit patterns.
func (p Pattern) Valid() bool {
	_, ok := Decode(byte(p))
	return ok
}

// String lists the sensors in EFGABCD order, using the sensor letter when
// the sensor is active and '-' when it is not.
func (p Pattern) String() string {
	var out [7]byte
	for i := range out {
		s := SensorE - Sensor(i)
		if p.Has(s) {
			out[i] = letters[s]
		} else {
			out[i] = '-'
		}
	}
	return string(out[:])
}
