// internal/payload/decode.go
package payload

import (
	"math"
	"strconv"
)

// DecodeFloat combines two holding registers into one engineering value.
// The four bytes high||low are read as a big-endian IEEE-754 float32.
// Bit patterns that do not encode a finite number decode to 0.
func DecodeFloat(high, low uint16) float64 {
	v := float64(math.Float32frombits(uint32(high)<<16 | uint32(low)))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round rounds v to places fractional digits using the exact binary value
// of v. Exact ties go to the even digit (20.03125 -> 20.0312).
// Non-finite input is returned as is.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
