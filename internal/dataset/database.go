package dataset

import (
	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/internal/query"
	"github.com/neoscan/runtime/pkg/neo"
)

// Database holds the loaded dataset with every close approach linked to its
// near-Earth object. It is immutable after construction and safe for
// repeated query passes.
type Database struct {
	neos       []*neo.NearEarthObject
	approaches []*neo.CloseApproach

	byDesignation map[string]*neo.NearEarthObject
	byName        map[string]*neo.NearEarthObject
}

// NewDatabase links approaches to their objects by designation and builds
// the lookup indexes. Approaches referring to a designation absent from the
// NEO set are dropped with a warning; everything downstream relies on the
// NEO reference never being nil.
func NewDatabase(neos []*neo.NearEarthObject, approaches []*neo.CloseApproach) *Database {
	db := &Database{
		neos:          neos,
		byDesignation: make(map[string]*neo.NearEarthObject, len(neos)),
		byName:        make(map[string]*neo.NearEarthObject),
	}

	for _, n := range neos {
		db.byDesignation[n.Designation] = n
		if n.Name != "" {
			db.byName[n.Name] = n
		}
	}

	db.approaches = make([]*neo.CloseApproach, 0, len(approaches))
	dropped := 0
	for _, a := range approaches {
		n, ok := db.byDesignation[a.Designation]
		if !ok {
			dropped++
			continue
		}
		a.NEO = n
		n.Approaches = append(n.Approaches, a)
		db.approaches = append(db.approaches, a)
	}
	if dropped > 0 {
		logger.Warn("dropped approaches with unknown designations", "count", dropped)
	}

	return db
}

// Load reads both dataset files and returns the linked database.
func Load(neoPath, approachPath string) (*Database, error) {
	neos, err := LoadNEOs(neoPath)
	if err != nil {
		return nil, err
	}
	approaches, err := LoadApproaches(approachPath)
	if err != nil {
		return nil, err
	}
	return NewDatabase(neos, approaches), nil
}

// NEOs returns every loaded near-Earth object.
func (db *Database) NEOs() []*neo.NearEarthObject {
	return db.neos
}

// FindDesignation looks up an object by its primary designation.
func (db *Database) FindDesignation(designation string) (*neo.NearEarthObject, bool) {
	n, ok := db.byDesignation[designation]
	return n, ok
}

// FindName looks up an object by its IAU name.
func (db *Database) FindName(name string) (*neo.NearEarthObject, bool) {
	n, ok := db.byName[name]
	return n, ok
}

// Query returns a lazy stream of the approaches matching every predicate,
// in dataset order. Each pull evaluates one candidate at a time, so a
// bounded consumer stops the scan early. A predicate evaluation error is
// yielded once and terminates the stream.
func (db *Database) Query(predicates []query.Predicate) neo.ApproachSeq {
	return func(yield func(*neo.CloseApproach, error) bool) {
		for _, a := range db.approaches {
			ok, err := query.Matches(a, predicates)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				continue
			}
			if !yield(a, nil) {
				return
			}
		}
	}
}
