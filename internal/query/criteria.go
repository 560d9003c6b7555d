package query

import "time"

// Criteria is the set of optional, mutually independent search criteria a
// caller may request. Each field is resolved by the CLI or a saved-search
// file before it reaches Build.
//
// The zero value of every field means "not requested". For the date and
// scalar fields a zero threshold is non-restrictive in this domain, so zero
// doubles as the unset sentinel. Hazardous is tri-state: nil requests no
// hazard constraint at all, while a pointer to false selects only
// non-hazardous objects. The two must never be conflated, which is why the
// field is a pointer and not a plain bool.
type Criteria struct {
	// Date selects approaches on exactly this calendar date
	Date time.Time
	// StartDate selects approaches on or after this date
	StartDate time.Time
	// EndDate selects approaches on or before this date
	EndDate time.Time

	// DistanceMin and DistanceMax bound the approach distance, in au
	DistanceMin float64
	DistanceMax float64

	// VelocityMin and VelocityMax bound the approach velocity, in km/s
	VelocityMin float64
	VelocityMax float64

	// DiameterMin and DiameterMax bound the object diameter, in km
	DiameterMin float64
	DiameterMax float64

	// Hazardous constrains the hazard classification; nil means no constraint
	Hazardous *bool
}

// Build constructs one Filter per requested criterion, in a fixed order:
// date, start date, end date, distance bounds, velocity bounds, diameter
// bounds, hazard flag. Criteria left at their unset sentinel produce no
// filter, so an empty Criteria yields an empty collection that matches
// every approach. Build does not cross-validate criteria; a caller asking
// for DistanceMin > DistanceMax gets exactly that (empty) match set.
func Build(c Criteria) []Filter {
	var filters []Filter

	if !c.Date.IsZero() {
		filters = append(filters, NewDateFilter(c.Date))
	}
	if !c.StartDate.IsZero() {
		filters = append(filters, NewStartDateFilter(c.StartDate))
	}
	if !c.EndDate.IsZero() {
		filters = append(filters, NewEndDateFilter(c.EndDate))
	}
	if c.DistanceMin != 0 {
		filters = append(filters, NewMinDistanceFilter(c.DistanceMin))
	}
	if c.DistanceMax != 0 {
		filters = append(filters, NewMaxDistanceFilter(c.DistanceMax))
	}
	if c.VelocityMin != 0 {
		filters = append(filters, NewMinVelocityFilter(c.VelocityMin))
	}
	if c.VelocityMax != 0 {
		filters = append(filters, NewMaxVelocityFilter(c.VelocityMax))
	}
	if c.DiameterMin != 0 {
		filters = append(filters, NewMinDiameterFilter(c.DiameterMin))
	}
	if c.DiameterMax != 0 {
		filters = append(filters, NewMaxDiameterFilter(c.DiameterMax))
	}
	if c.Hazardous != nil {
		filters = append(filters, NewHazardousFilter(*c.Hazardous))
	}

	return filters
}

// Predicates converts a built filter collection to the Predicate slice the
// conjunctive matcher consumes, so callers can append further predicate
// kinds (for example an expression filter) behind the attribute filters.
func Predicates(filters []Filter) []Predicate {
	preds := make([]Predicate, 0, len(filters))
	for _, f := range filters {
		preds = append(preds, f)
	}
	return preds
}
