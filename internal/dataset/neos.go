// Package dataset loads the NASA/JPL small-body datasets and exposes them
// as a queryable in-memory database of close approaches. It is the record
// source for the query core: every approach it yields carries a resolved,
// non-nil NearEarthObject reference.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/pkg/neo"
)

// Columns of interest in the NEO CSV export. The file carries dozens of
// columns; they are located by header name, not position, so column
// reordering in a newer export does not break loading.
const (
	colDesignation = "pdes"
	colName        = "name"
	colHazardous   = "pha"
	colDiameter    = "diameter"
)

// LoadNEOs reads the near-Earth objects from a CSV export at path.
// An empty diameter column loads as NaN, an empty pha column as
// non-hazardous.
func LoadNEOs(path string) ([]*neo.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening NEO dataset: %w", err)
	}
	defer f.Close()

	neos, err := readNEOs(f)
	if err != nil {
		return nil, fmt.Errorf("reading NEO dataset %s: %w", path, err)
	}

	logger.Debug("loaded near-Earth objects", "path", path, "count", len(neos))
	return neos, nil
}

func readNEOs(r io.Reader) ([]*neo.NearEarthObject, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colDesignation, colName, colHazardous, colDiameter} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var neos []*neo.NearEarthObject
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		diameter := math.NaN()
		if raw := record[cols[colDiameter]]; raw != "" {
			diameter, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad diameter %q: %w", line, raw, err)
			}
		}

		neos = append(neos, &neo.NearEarthObject{
			Designation: record[cols[colDesignation]],
			Name:        record[cols[colName]],
			Diameter:    diameter,
			Hazardous:   record[cols[colHazardous]] == "Y",
		})
	}

	return neos, nil
}
