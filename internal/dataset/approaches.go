package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/pkg/neo"
)

// approachTimeLayout is the timestamp form used by the JPL close-approach
// export ("2020-Jan-01 00:06", UTC). Rendering on output uses the canonical
// neo.TimeLayout instead; this layout exists only for parsing the dataset.
const approachTimeLayout = "2006-Jan-02 15:04"

// ParseApproachTime parses a timestamp in the close-approach dataset form.
func ParseApproachTime(s string) (time.Time, error) {
	return time.ParseInLocation(approachTimeLayout, s, time.UTC)
}

// Columns of interest in the close-approach JSON export.
const (
	fieldDesignation = "des"
	fieldTime        = "cd"
	fieldDistance    = "dist"
	fieldVelocity    = "v_rel"
)

// approachDocument is the envelope shape of the close-approach export: a
// column-name list plus row-oriented data arrays.
type approachDocument struct {
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}

// LoadApproaches reads the close approaches from a JSON export at path.
// The NEO references of the returned approaches are unresolved; NewDatabase
// links them.
func LoadApproaches(path string) ([]*neo.CloseApproach, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening approach dataset: %w", err)
	}

	var doc approachDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("reading approach dataset %s: %w", path, err)
	}

	cols := make(map[string]int, len(doc.Fields))
	for i, name := range doc.Fields {
		cols[name] = i
	}
	for _, required := range []string{fieldDesignation, fieldTime, fieldDistance, fieldVelocity} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("approach dataset %s: missing field %q", path, required)
		}
	}

	approaches := make([]*neo.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		if len(row) < len(doc.Fields) {
			return nil, fmt.Errorf("approach dataset %s: row %d has %d of %d fields",
				path, i, len(row), len(doc.Fields))
		}

		t, err := ParseApproachTime(row[cols[fieldTime]])
		if err != nil {
			return nil, fmt.Errorf("approach dataset %s: row %d: bad time %q: %w",
				path, i, row[cols[fieldTime]], err)
		}
		distance, err := strconv.ParseFloat(row[cols[fieldDistance]], 64)
		if err != nil {
			return nil, fmt.Errorf("approach dataset %s: row %d: bad distance %q: %w",
				path, i, row[cols[fieldDistance]], err)
		}
		velocity, err := strconv.ParseFloat(row[cols[fieldVelocity]], 64)
		if err != nil {
			return nil, fmt.Errorf("approach dataset %s: row %d: bad velocity %q: %w",
				path, i, row[cols[fieldVelocity]], err)
		}

		approaches = append(approaches, &neo.CloseApproach{
			Designation: row[cols[fieldDesignation]],
			Time:        t,
			Distance:    distance,
			Velocity:    velocity,
		})
	}

	logger.Debug("loaded close approaches", "path", path, "count", len(approaches))
	return approaches, nil
}
