package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/search-schema.json
var embeddedSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaInitErr  error
)

// getCompiledSchema returns the compiled search schema, compiling it on
// first use.
func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var schemaDoc interface{}
		if err := json.Unmarshal(embeddedSchema, &schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		schemaURL := "https://neoscan.io/schemas/search/v1/search-schema.json"
		if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}

		var err error
		compiledSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to compile schema: %w", err)
		}
	})

	if schemaInitErr != nil {
		return nil, schemaInitErr
	}
	return compiledSchema, nil
}

// ValidationError is a schema violation at a specific location in the
// search document.
type ValidationError struct {
	// Path is the JSON-pointer location of the violation (e.g. "/limit")
	Path string
	// Message describes the violation
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" && e.Path != "/" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validate checks a parsed search document against the embedded schema.
// It returns one ValidationError per violation.
func Validate(data map[string]interface{}) []ValidationError {
	schema, err := getCompiledSchema()
	if err != nil {
		return []ValidationError{{Path: "/", Message: err.Error()}}
	}

	err = schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []ValidationError{{Path: "/", Message: err.Error()}}
	}

	return flattenErrors(validationErr)
}

// errorPrinter renders schema violation messages.
var errorPrinter = message.NewPrinter(language.English)

// flattenErrors converts the nested jsonschema error tree into a flat list
// of leaf violations.
func flattenErrors(err *jsonschema.ValidationError) []ValidationError {
	if len(err.Causes) == 0 {
		return []ValidationError{{
			Path:    pointer(err.InstanceLocation),
			Message: err.ErrorKind.LocalizedString(errorPrinter),
		}}
	}

	var out []ValidationError
	for _, cause := range err.Causes {
		out = append(out, flattenErrors(cause)...)
	}
	return out
}

func pointer(location []string) string {
	if len(location) == 0 {
		return "/"
	}
	return "/" + strings.Join(location, "/")
}
