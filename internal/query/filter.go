// Package query implements the predicate-filter algebra at the heart of the
// neoscan runtime: single-attribute comparison filters, their construction
// from user criteria, conjunctive evaluation over a stream of close
// approaches, and bounded limiting of the result stream.
package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/neoscan/runtime/pkg/neo"
)

// ErrUnsupportedCriterion is returned when a filter's attribute has no
// extraction rule wired into Evaluate. It marks a missing variant wiring,
// a defect in the program rather than in the data, and is never swallowed.
var ErrUnsupportedCriterion = errors.New("unsupported filter criterion")

// Comparator is the binary comparison a filter applies between the
// extracted attribute value and its reference value.
type Comparator int

const (
	// Equal matches when the attribute equals the reference value
	Equal Comparator = iota
	// GreaterOrEqual matches when the attribute is at least the reference value
	GreaterOrEqual
	// LessOrEqual matches when the attribute is at most the reference value
	LessOrEqual
)

func (c Comparator) String() string {
	switch c {
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// Attribute identifies which value a filter extracts from a close approach.
// The set is closed: every member must have a case in Filter.Evaluate. The
// zero value is deliberately unwired so that a Filter constructed without
// going through one of the New*Filter constructors fails loudly.
type Attribute int

const (
	// AttrUnspecified is the zero value; evaluating it yields
	// ErrUnsupportedCriterion
	AttrUnspecified Attribute = iota
	// AttrDate extracts the calendar date of the approach time
	AttrDate
	// AttrDistance extracts the nominal approach distance (au)
	AttrDistance
	// AttrVelocity extracts the relative approach velocity (km/s)
	AttrVelocity
	// AttrDiameter extracts the diameter of the approaching object (km)
	AttrDiameter
	// AttrHazardous extracts the hazard classification of the object
	AttrHazardous
)

func (a Attribute) String() string {
	switch a {
	case AttrDate:
		return "date"
	case AttrDistance:
		return "distance"
	case AttrVelocity:
		return "velocity"
	case AttrDiameter:
		return "diameter"
	case AttrHazardous:
		return "hazardous"
	default:
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
}

// Predicate is a reusable boolean test over a close approach. Evaluation is
// pure: no side effects, same answer for the same approach every time.
type Predicate interface {
	Evaluate(approach *neo.CloseApproach) (bool, error)
}

// Filter is a single-attribute comparison test: it extracts the value named
// by Attr from an approach and compares it against the reference value with
// Op. Exactly one of the reference fields is meaningful for a given Attr.
// A Filter is an immutable value, safe to share across passes.
type Filter struct {
	// Attr selects the extraction rule
	Attr Attribute
	// Op is the comparison applied as `extracted Op reference`
	Op Comparator

	// Date is the reference value for AttrDate
	Date time.Time
	// Number is the reference value for the scalar attributes
	Number float64
	// Flag is the reference value for AttrHazardous
	Flag bool
}

func (f Filter) String() string {
	switch f.Attr {
	case AttrDate:
		return fmt.Sprintf("Filter(%s %s %s)", f.Attr, f.Op, f.Date.Format(time.DateOnly))
	case AttrHazardous:
		return fmt.Sprintf("Filter(%s %s %t)", f.Attr, f.Op, f.Flag)
	default:
		return fmt.Sprintf("Filter(%s %s %v)", f.Attr, f.Op, f.Number)
	}
}

// Evaluate applies the filter to a single approach. The only error it can
// produce is ErrUnsupportedCriterion, for an attribute with no extraction
// rule; everything else is a plain boolean answer. Comparisons against an
// unknown (NaN) diameter are false for every comparator, so diameter
// criteria never match objects with no published size.
func (f Filter) Evaluate(approach *neo.CloseApproach) (bool, error) {
	switch f.Attr {
	case AttrDate:
		return compareDate(dateOf(approach.Time), f.Op, f.Date), nil
	case AttrDistance:
		return compareNumber(approach.Distance, f.Op, f.Number), nil
	case AttrVelocity:
		return compareNumber(approach.Velocity, f.Op, f.Number), nil
	case AttrDiameter:
		return compareNumber(approach.NEO.Diameter, f.Op, f.Number), nil
	case AttrHazardous:
		// Booleans have no ordering here; only equality is wired.
		if f.Op != Equal {
			return false, fmt.Errorf("%w: %s comparison on %s", ErrUnsupportedCriterion, f.Op, f.Attr)
		}
		return approach.NEO.Hazardous == f.Flag, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedCriterion, f.Attr)
	}
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func compareDate(actual time.Time, op Comparator, ref time.Time) bool {
	switch op {
	case Equal:
		return actual.Equal(ref)
	case GreaterOrEqual:
		return !actual.Before(ref)
	case LessOrEqual:
		return !actual.After(ref)
	default:
		return false
	}
}

func compareNumber(actual float64, op Comparator, ref float64) bool {
	switch op {
	case Equal:
		return actual == ref
	case GreaterOrEqual:
		return actual >= ref
	case LessOrEqual:
		return actual <= ref
	default:
		return false
	}
}

// NewDateFilter matches approaches occurring on exactly the given date.
func NewDateFilter(date time.Time) Filter {
	return Filter{Attr: AttrDate, Op: Equal, Date: dateOf(date)}
}

// NewStartDateFilter matches approaches occurring on or after the given date.
func NewStartDateFilter(date time.Time) Filter {
	return Filter{Attr: AttrDate, Op: GreaterOrEqual, Date: dateOf(date)}
}

// NewEndDateFilter matches approaches occurring on or before the given date.
func NewEndDateFilter(date time.Time) Filter {
	return Filter{Attr: AttrDate, Op: LessOrEqual, Date: dateOf(date)}
}

// NewMinDistanceFilter matches approaches at least this far away, in au.
func NewMinDistanceFilter(distance float64) Filter {
	return Filter{Attr: AttrDistance, Op: GreaterOrEqual, Number: distance}
}

// NewMaxDistanceFilter matches approaches at most this far away, in au.
func NewMaxDistanceFilter(distance float64) Filter {
	return Filter{Attr: AttrDistance, Op: LessOrEqual, Number: distance}
}

// NewMinVelocityFilter matches approaches at least this fast, in km/s.
func NewMinVelocityFilter(velocity float64) Filter {
	return Filter{Attr: AttrVelocity, Op: GreaterOrEqual, Number: velocity}
}

// NewMaxVelocityFilter matches approaches at most this fast, in km/s.
func NewMaxVelocityFilter(velocity float64) Filter {
	return Filter{Attr: AttrVelocity, Op: LessOrEqual, Number: velocity}
}

// NewMinDiameterFilter matches objects at least this large, in km.
func NewMinDiameterFilter(diameter float64) Filter {
	return Filter{Attr: AttrDiameter, Op: GreaterOrEqual, Number: diameter}
}

// NewMaxDiameterFilter matches objects at most this large, in km.
func NewMaxDiameterFilter(diameter float64) Filter {
	return Filter{Attr: AttrDiameter, Op: LessOrEqual, Number: diameter}
}

// NewHazardousFilter matches objects whose hazard classification equals
// hazardous. Note that NewHazardousFilter(false) is a real constraint,
// selecting only non-hazardous objects.
func NewHazardousFilter(hazardous bool) Filter {
	return Filter{Attr: AttrHazardous, Op: Equal, Flag: hazardous}
}
