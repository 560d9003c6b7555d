package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neoscan/runtime/pkg/neo"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"results.csv", FormatCSV, false},
		{"results.json", FormatJSON, false},
		{"results.CSV", FormatCSV, false},
		{"dir/results.json", FormatJSON, false},
		{"results.xml", "", true},
		{"results", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := FormatForPath(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FormatForPath(%q) = %q, want error", tt.filename, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatForPath(%q) error = %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("FormatForPath(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	if _, err := New("parquet", os.Stdout); err == nil {
		t.Fatal("New(parquet) succeeded, want error")
	}
}

func TestWriteFile(t *testing.T) {
	object := &neo.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84}
	approach := testApproach(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0.3, 5, object)

	for _, ext := range []string{"csv", "json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "results."+ext)
			count, err := WriteFile(path, seqOf(approach))
			if err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if count != 1 {
				t.Errorf("WriteFile() count = %d, want 1", count)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if !strings.Contains(string(content), "433") {
				t.Errorf("output %q missing the written approach", content)
			}
		})
	}
}

func TestWriteFileOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "results.csv")
	if _, err := WriteFile(path, seqOf()); err == nil {
		t.Fatal("WriteFile() into a missing directory succeeded, want error")
	}
}

func TestWriteFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")
	if _, err := WriteFile(path, seqOf()); err == nil {
		t.Fatal("WriteFile() with unsupported extension succeeded, want error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("WriteFile() created a file despite rejecting the format")
	}
}
