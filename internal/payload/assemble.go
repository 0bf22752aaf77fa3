// internal/payload/assemble.go
package payload

import (
	"strconv"
	"time"

	"github.com/yug2601/plc/internal/status"
)

// Precision is the number of fractional digits kept in published values.
const Precision = 4

// TimeLayout is ISO-8601 with microseconds and zone offset.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Assemble maps a register block onto logical addresses.
//
// Pairs are taken at offsets 0, 2, 4, ... and the pair at offset i is
// published under base+i+1. A trailing unpaired register is dropped.
// The first address above upperBound stops assembly: later pairs are not
// published even if they would fit.
func Assemble(block []uint16, base, upperBound int) map[string]float64 {
	out := make(map[string]float64, len(block)/2)

	for i := 0; i+1 < len(block); i += 2 {
		addr := base + i + 1
		if addr > upperBound {
			break
		}
		out[strconv.Itoa(addr)] = Round(DecodeFloat(block[i], block[i+1]), Precision)
	}

	return out
}

// Document is one full snapshot of the controller as stored remotely.
type Document struct {
	Values      map[string]float64
	LastUpdated time.Time
	Status      status.Code
}

// NewDocument attaches metadata to assembled values.
func NewDocument(values map[string]float64, code status.Code, at time.Time) Document {
	return Document{
		Values:      values,
		LastUpdated: at,
		Status:      code,
	}
}

// Fields flattens the document into the shape written to the store.
// Numeric keys are logical addresses; metadata keys never collide with them.
func (d Document) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Values)+2)
	for k, v := range d.Values {
		out[k] = v
	}
	out[status.FieldLastUpdated] = d.LastUpdated.Format(TimeLayout)
	out[status.FieldStatus] = string(d.Status)
	return out
}
