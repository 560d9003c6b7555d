// Package output implements the result serializers: consumers of a filtered
// and possibly limited stream of close approaches that render it to an
// external representation. Writers are registered by format name so new
// representations can be added without touching the selection logic.
package output

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/neoscan/runtime/pkg/neo"
)

// Writer serializes a result stream to its destination in a single pass.
type Writer interface {
	// Write consumes the stream and renders every approach it yields.
	// It returns the number of approaches written. A stream error aborts
	// the pass; whatever was rendered before the error stays written.
	Write(results neo.ApproachSeq) (int, error)
}

// Constructor creates a Writer rendering to w.
type Constructor func(w io.Writer) Writer

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Constructor)
)

func init() {
	Register(FormatCSV, func(w io.Writer) Writer { return NewCSVWriter(w) })
	Register(FormatJSON, func(w io.Writer) Writer { return NewJSONWriter(w) })
}

// Supported format names.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Register adds a writer constructor under the given format name,
// replacing any previous registration.
func Register(format string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[format] = ctor
}

// New returns a Writer for the given format rendering to w.
func New(format string, w io.Writer) (Writer, error) {
	registryMu.RLock()
	ctor, ok := registry[format]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)",
			format, strings.Join(Formats(), ", "))
	}
	return ctor(w), nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	formats := make([]string, 0, len(registry))
	for f := range registry {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// FormatForPath derives the output format from a file extension.
func FormatForPath(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return "", fmt.Errorf("cannot infer output format: %q has no extension", filename)
	}
	registryMu.RLock()
	_, ok := registry[ext]
	registryMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unsupported output format %q (supported: %s)",
			ext, strings.Join(Formats(), ", "))
	}
	return ext, nil
}

// WriteFile serializes the result stream to filename, choosing the format
// from the file extension. The file is created (or truncated), written and
// closed on every exit path; on a mid-stream error the partial output is
// left in place.
func WriteFile(filename string, results neo.ApproachSeq) (count int, err error) {
	format, err := FormatForPath(filename)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filename, cerr)
		}
	}()

	w, err := New(format, f)
	if err != nil {
		return 0, err
	}
	return w.Write(results)
}
