package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/internal/query"
)

// Search is a fully resolved saved search: the filter criteria plus the
// output settings that accompany them.
type Search struct {
	// Criteria are the attribute criteria to filter on
	Criteria query.Criteria
	// Where is an optional free-form boolean expression, empty if unset
	Where string
	// Limit caps the number of results, 0 for unlimited
	Limit int
	// Outfile is the destination file, empty for stdout
	Outfile string
}

// LoadSearch reads, validates and resolves a saved-search file. Schema
// violations are joined into a single error so the caller sees every
// problem at once.
func LoadSearch(path string) (*Search, error) {
	data, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	if violations := Validate(data); len(violations) > 0 {
		errs := make([]error, 0, len(violations))
		for _, v := range violations {
			errs = append(errs, v)
		}
		return nil, fmt.Errorf("invalid search file %s: %w", path, errors.Join(errs...))
	}

	search, err := resolve(data)
	if err != nil {
		return nil, fmt.Errorf("invalid search file %s: %w", path, err)
	}

	logger.Debug("loaded saved search", "path", path)
	return search, nil
}

// resolve converts the validated document into a Search. The schema has
// already pinned every field's type, so the assertions here cannot fail on
// schema-valid input; date values still need parsing.
func resolve(data map[string]interface{}) (*Search, error) {
	search := &Search{}

	var err error
	if search.Criteria.Date, err = dateField(data, "date"); err != nil {
		return nil, err
	}
	if search.Criteria.StartDate, err = dateField(data, "start_date"); err != nil {
		return nil, err
	}
	if search.Criteria.EndDate, err = dateField(data, "end_date"); err != nil {
		return nil, err
	}

	search.Criteria.DistanceMin = numberField(data, "min_distance")
	search.Criteria.DistanceMax = numberField(data, "max_distance")
	search.Criteria.VelocityMin = numberField(data, "min_velocity")
	search.Criteria.VelocityMax = numberField(data, "max_velocity")
	search.Criteria.DiameterMin = numberField(data, "min_diameter")
	search.Criteria.DiameterMax = numberField(data, "max_diameter")

	// Presence of the key is what distinguishes "only non-hazardous"
	// from "no hazard constraint", so the raw document is consulted
	// rather than a defaulted value.
	if raw, ok := data["hazardous"]; ok {
		hazardous := raw.(bool)
		search.Criteria.Hazardous = &hazardous
	}

	if raw, ok := data["where"]; ok {
		search.Where = raw.(string)
	}
	search.Limit = int(numberField(data, "limit"))
	if raw, ok := data["outfile"]; ok {
		search.Outfile = raw.(string)
	}

	return search, nil
}

func dateField(data map[string]interface{}, key string) (time.Time, error) {
	raw, ok := data[key]
	if !ok {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw.(string), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", key, err)
	}
	return t, nil
}

func numberField(data map[string]interface{}, key string) float64 {
	raw, ok := data[key]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
