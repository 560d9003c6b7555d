package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neoscan/runtime/internal/logger"
)

func init() {
	logger.SetOutput(io.Discard, slog.LevelError)
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestLoadSearchYAML(t *testing.T) {
	search, err := LoadSearch(fixture("january.yaml"))
	if err != nil {
		t.Fatalf("LoadSearch() error = %v", err)
	}

	wantStart := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	if !search.Criteria.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", search.Criteria.StartDate, wantStart)
	}
	if !search.Criteria.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", search.Criteria.EndDate, wantEnd)
	}
	if search.Criteria.Hazardous == nil || !*search.Criteria.Hazardous {
		t.Errorf("Hazardous = %v, want pointer to true", search.Criteria.Hazardous)
	}
	if search.Limit != 10 {
		t.Errorf("Limit = %d, want 10", search.Limit)
	}
	if search.Outfile != "january.csv" {
		t.Errorf("Outfile = %q, want january.csv", search.Outfile)
	}
	if !search.Criteria.Date.IsZero() {
		t.Errorf("Date = %v, want unset", search.Criteria.Date)
	}
}

func TestLoadSearchJSON(t *testing.T) {
	search, err := LoadSearch(fixture("nearby.json"))
	if err != nil {
		t.Fatalf("LoadSearch() error = %v", err)
	}

	if search.Criteria.DistanceMax != 0.1 {
		t.Errorf("DistanceMax = %v, want 0.1", search.Criteria.DistanceMax)
	}
	if search.Criteria.VelocityMin != 5 {
		t.Errorf("VelocityMin = %v, want 5", search.Criteria.VelocityMin)
	}
	// hazardous: false is a real constraint, not an unset field.
	if search.Criteria.Hazardous == nil || *search.Criteria.Hazardous {
		t.Errorf("Hazardous = %v, want pointer to false", search.Criteria.Hazardous)
	}
	if search.Where != "neo.diameter > 0.5" {
		t.Errorf("Where = %q, want the configured expression", search.Where)
	}
	if search.Limit != 5 {
		t.Errorf("Limit = %d, want 5", search.Limit)
	}
}

func TestLoadSearchInvalid(t *testing.T) {
	_, err := LoadSearch(fixture("invalid.yaml"))
	if err == nil {
		t.Fatal("LoadSearch(invalid) succeeded, want validation errors")
	}

	// All violations are reported at once, with their locations.
	msg := err.Error()
	for _, field := range []string{"start_date", "limit", "hazardous", "frequency"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error %q does not mention offending field %s", msg, field)
		}
	}
}

func TestLoadSearchMissingFile(t *testing.T) {
	_, err := LoadSearch(fixture("does-not-exist.yaml"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Type != ErrorTypeIO {
		t.Fatalf("LoadSearch(missing) error = %v, want io ParseError", err)
	}
}

func TestLoadSearchUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.toml")
	if err := os.WriteFile(path, []byte("limit = 5"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSearch(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Type != ErrorTypeFormat {
		t.Fatalf("LoadSearch(.toml) error = %v, want format ParseError", err)
	}
}

func TestLoadSearchMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	if err := os.WriteFile(path, []byte("limit: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSearch(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Type != ErrorTypeSyntax {
		t.Fatalf("LoadSearch(malformed) error = %v, want syntax ParseError", err)
	}
}

func TestLoadSearchEmptyDocumentMeansNoCriteria(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	search, err := LoadSearch(path)
	if err != nil {
		t.Fatalf("LoadSearch({}) error = %v", err)
	}
	if search.Criteria.Hazardous != nil || search.Limit != 0 || search.Outfile != "" {
		t.Errorf("empty document resolved to %+v, want zero Search", search)
	}
}
