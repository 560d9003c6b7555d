// Package config loads saved-search files: JSON or YAML documents holding
// the same optional criteria the query command accepts as flags, validated
// against an embedded JSON schema before use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Parse error types.
const (
	ErrorTypeIO     = "io"
	ErrorTypeSyntax = "syntax"
	ErrorTypeFormat = "format"
)

// ParseError is a parsing failure with file context.
type ParseError struct {
	// Path is the file that failed to parse
	Path string
	// Message is the underlying parser message
	Message string
	// Type categorizes the error (io, syntax, format)
	Type string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ParseFile reads a saved-search document from path, auto-detecting the
// format from the extension (.json, .yaml, .yml). The result is the raw
// key/value document, not yet validated.
func ParseFile(filepath string) (map[string]interface{}, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, &ParseError{Path: filepath, Message: err.Error(), Type: ErrorTypeIO}
	}

	switch ext := strings.ToLower(path.Ext(filepath)); ext {
	case ".json":
		return parseJSON(filepath, content)
	case ".yaml", ".yml":
		return parseYAML(filepath, content)
	default:
		return nil, &ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("unsupported search file extension %q (expected .json, .yaml or .yml)", ext),
			Type:    ErrorTypeFormat,
		}
	}
}

func parseJSON(filepath string, content []byte) (map[string]interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, &ParseError{Path: filepath, Message: err.Error(), Type: ErrorTypeSyntax}
	}
	return asObject(filepath, data)
}

func parseYAML(filepath string, content []byte) (map[string]interface{}, error) {
	var data interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, &ParseError{Path: filepath, Message: err.Error(), Type: ErrorTypeSyntax}
	}
	return asObject(filepath, normalizeYAML(data))
}

func asObject(filepath string, data interface{}) (map[string]interface{}, error) {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil, &ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("expected a mapping at the top level, got %T", data),
			Type:    ErrorTypeFormat,
		}
	}
	return obj, nil
}

// normalizeYAML aligns YAML decoding output with the JSON object model the
// schema validator expects. yaml.v3 resolves unquoted ISO dates to
// time.Time; the schema treats dates as strings, so they are rendered back.
func normalizeYAML(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = normalizeYAML(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, value := range v {
			out[i] = normalizeYAML(value)
		}
		return out
	case time.Time:
		return v.Format(time.DateOnly)
	case int:
		return float64(v)
	default:
		return v
	}
}
