// Package neo provides the public domain types for the neoscan runtime.
// This package is intended to be importable by external projects that need
// to consume query results without pulling in the runtime internals.
package neo

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"time"
)

// TimeLayout is the canonical rendering of a close-approach timestamp:
// calendar date and wall time to minute precision, UTC, locale-independent.
// Every serialized output uses this form.
const TimeLayout = "2006-01-02 15:04"

// FormatTime renders t in the canonical timestamp form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// NearEarthObject is a physical body that passes near Earth.
//
// Name is empty when the object has no IAU name. Diameter is in kilometers
// and is NaN when no measurement is published. One NearEarthObject is
// referenced by every CloseApproach of that body.
type NearEarthObject struct {
	// Designation is the primary designation, unique across the dataset
	Designation string `json:"designation"`

	// Name is the IAU name, empty if the object is unnamed
	Name string `json:"name"`

	// Diameter is the object diameter in kilometers, NaN if unknown
	Diameter float64 `json:"diameter_km"`

	// Hazardous reports whether NASA classifies the object as
	// potentially hazardous
	Hazardous bool `json:"potentially_hazardous"`

	// Approaches are the known close approaches of this object
	Approaches []*CloseApproach `json:"-"`
}

// FullName returns the designation together with the name, when one exists.
func (n *NearEarthObject) FullName() string {
	if n.Name == "" {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
}

func (n *NearEarthObject) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NEO %s", n.FullName())
	if !math.IsNaN(n.Diameter) {
		fmt.Fprintf(&sb, " has a diameter of %.3f km and", n.Diameter)
	}
	if n.Hazardous {
		sb.WriteString(" is potentially hazardous")
	} else {
		sb.WriteString(" is not potentially hazardous")
	}
	return sb.String()
}

// CloseApproach is a single near-passage of a NearEarthObject by Earth.
//
// Distance is the nominal approach distance in astronomical units and
// Velocity the relative approach velocity in km/s. NEO is resolved by the
// record source before the approach is handed to any consumer and is never
// nil. A CloseApproach is immutable once constructed.
type CloseApproach struct {
	// Designation is the primary designation of the approaching object
	Designation string `json:"designation"`

	// Time is the approach time, UTC
	Time time.Time `json:"-"`

	// Distance is the nominal approach distance in astronomical units
	Distance float64 `json:"distance_au"`

	// Velocity is the relative approach velocity in km/s
	Velocity float64 `json:"velocity_km_s"`

	// NEO is the object making the approach, never nil
	NEO *NearEarthObject `json:"-"`
}

func (a *CloseApproach) String() string {
	return fmt.Sprintf("On %s, %q approaches Earth at a distance of %.2f au and a velocity of %.2f km/s",
		FormatTime(a.Time), a.NEO.FullName(), a.Distance, a.Velocity)
}

// ApproachSeq is a lazy, single-use stream of close approaches. A non-nil
// error terminates the stream; no further pairs follow it. Producers must
// not read ahead of the consumer, so a bounded consumer never forces an
// unbounded source.
type ApproachSeq = iter.Seq2[*CloseApproach, error]
