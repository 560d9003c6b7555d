package output

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/neoscan/runtime/pkg/neo"
)

func TestJSONWriterSingleApproach(t *testing.T) {
	object := &neo.NearEarthObject{
		Designation: "433",
		Name:        "",
		Diameter:    0.2,
		Hazardous:   true,
	}
	approach := testApproach(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0.3, 5.0, object)

	var sb strings.Builder
	count, err := NewJSONWriter(&sb).Write(seqOf(approach))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("Write() count = %d, want 1", count)
	}

	want := `[{"datetime_utc":"2020-01-01 00:00","distance_au":0.3,"velocity_km_s":5,` +
		`"neo":{"designation":"433","name":"","diameter_km":0.2,"potentially_hazardous":true}}]`
	if sb.String() != want {
		t.Errorf("Write() output:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestJSONWriterOutputIsParseable(t *testing.T) {
	named := &neo.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84, Hazardous: false}
	unnamed := &neo.NearEarthObject{Designation: "2020 AB", Diameter: math.NaN(), Hazardous: true}
	approaches := []*neo.CloseApproach{
		testApproach(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0.3, 5, named),
		testApproach(time.Date(2020, 2, 2, 18, 45, 0, 0, time.UTC), 0.02, 12.5, unnamed),
	}

	var sb strings.Builder
	count, err := NewJSONWriter(&sb).Write(seqOf(approaches...))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Write() count = %d, want 2", count)
	}

	var decoded []struct {
		DatetimeUTC string  `json:"datetime_utc"`
		DistanceAU  float64 `json:"distance_au"`
		VelocityKmS float64 `json:"velocity_km_s"`
		NEO         struct {
			Designation string   `json:"designation"`
			Name        string   `json:"name"`
			DiameterKm  *float64 `json:"diameter_km"`
			Hazardous   bool     `json:"potentially_hazardous"`
		} `json:"neo"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, sb.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d elements, want 2", len(decoded))
	}

	if decoded[0].NEO.Name != "Eros" || decoded[0].NEO.DiameterKm == nil {
		t.Errorf("first element lost its NEO fields: %+v", decoded[0])
	}
	// The unknown diameter must decode as null, keeping the document valid.
	if decoded[1].NEO.DiameterKm != nil {
		t.Errorf("unknown diameter = %v, want null", *decoded[1].NEO.DiameterKm)
	}
	if decoded[1].DatetimeUTC != "2020-02-02 18:45" {
		t.Errorf("datetime_utc = %q, want canonical form", decoded[1].DatetimeUTC)
	}
}

func TestJSONWriterEmptyStream(t *testing.T) {
	var sb strings.Builder
	count, err := NewJSONWriter(&sb).Write(seqOf())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("Write() count = %d, want 0", count)
	}
	if sb.String() != "[]" {
		t.Errorf("empty stream output = %q, want []", sb.String())
	}
}

// callLimitedWriter fails every write after the first n calls.
type callLimitedWriter struct {
	calls int
	limit int
	err   error
}

func (w *callLimitedWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.limit {
		return 0, w.err
	}
	return len(p), nil
}

func TestJSONWriterStreamErrorWithFailingDestination(t *testing.T) {
	object := &neo.NearEarthObject{Designation: "433", Diameter: 0.2}
	good := testApproach(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0.3, 5, object)
	streamErr := errors.New("evaluation failed")
	writeErr := errors.New("disk full")

	// The destination accepts the opening bracket and the first element,
	// then rejects the closing bracket written on the error path. Both
	// failures must surface, the stream error first.
	w := &callLimitedWriter{limit: 2, err: writeErr}
	_, err := NewJSONWriter(w).Write(failingSeq(good, streamErr))
	if !errors.Is(err, streamErr) {
		t.Fatalf("Write() error = %v, want the stream error", err)
	}
	if !errors.Is(err, writeErr) {
		t.Fatalf("Write() error = %v, want the destination error as well", err)
	}
}

func TestJSONWriterStreamError(t *testing.T) {
	object := &neo.NearEarthObject{Designation: "433", Diameter: 0.2}
	good := testApproach(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0.3, 5, object)
	streamErr := errors.New("evaluation failed")

	var sb strings.Builder
	count, err := NewJSONWriter(&sb).Write(failingSeq(good, streamErr))
	if !errors.Is(err, streamErr) {
		t.Fatalf("Write() error = %v, want %v", err, streamErr)
	}
	if count != 1 {
		t.Errorf("Write() count = %d, want 1 element before the error", count)
	}
}
