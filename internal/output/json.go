package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/neoscan/runtime/pkg/neo"
)

// JSONWriter renders a result stream as a single JSON array. Each element
// nests the object fields under a "neo" key and, unlike the CSV form, does
// not repeat the approach designation at the top level. Elements are
// encoded one at a time, so the stream is never materialized.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter returns a JSONWriter rendering to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// approachDoc is the serialized shape of one close approach.
type approachDoc struct {
	DatetimeUTC string  `json:"datetime_utc"`
	DistanceAU  float64 `json:"distance_au"`
	VelocityKmS float64 `json:"velocity_km_s"`
	NEO         neoDoc  `json:"neo"`
}

type neoDoc struct {
	Designation string     `json:"designation"`
	Name        string     `json:"name"`
	DiameterKm  nullableKm `json:"diameter_km"`
	Hazardous   bool       `json:"potentially_hazardous"`
}

// nullableKm encodes an unknown (NaN) diameter as JSON null, keeping the
// document valid JSON.
type nullableKm float64

func (v nullableKm) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(v)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

// Write implements Writer.
func (j *JSONWriter) Write(results neo.ApproachSeq) (int, error) {
	if _, err := io.WriteString(j.w, "["); err != nil {
		return 0, fmt.Errorf("writing json output: %w", err)
	}

	count := 0
	for approach, err := range results {
		if err != nil {
			// Close the array so the partial document stays parseable.
			if _, werr := io.WriteString(j.w, "]"); werr != nil {
				return count, errors.Join(err, werr)
			}
			return count, err
		}

		if count > 0 {
			if _, err := io.WriteString(j.w, ","); err != nil {
				return count, fmt.Errorf("writing json output: %w", err)
			}
		}

		doc := approachDoc{
			DatetimeUTC: neo.FormatTime(approach.Time),
			DistanceAU:  approach.Distance,
			VelocityKmS: approach.Velocity,
			NEO: neoDoc{
				Designation: approach.NEO.Designation,
				Name:        approach.NEO.Name,
				DiameterKm:  nullableKm(approach.NEO.Diameter),
				Hazardous:   approach.NEO.Hazardous,
			},
		}
		encoded, err := json.Marshal(doc)
		if err != nil {
			return count, fmt.Errorf("encoding approach %d: %w", count+1, err)
		}
		if _, err := j.w.Write(encoded); err != nil {
			return count, fmt.Errorf("writing json output: %w", err)
		}
		count++
	}

	if _, err := io.WriteString(j.w, "]"); err != nil {
		return count, fmt.Errorf("writing json output: %w", err)
	}
	return count, nil
}
