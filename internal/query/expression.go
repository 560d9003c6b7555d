package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/neoscan/runtime/pkg/neo"
)

// Common errors for expression filters
var (
	// ErrEmptyExpression is returned when the expression source is blank
	ErrEmptyExpression = errors.New("expression cannot be empty")
	// ErrInvalidExpression is returned when the expression does not compile
	ErrInvalidExpression = errors.New("invalid expression syntax")
	// ErrNotBoolean is returned when an expression evaluates to a
	// non-boolean value
	ErrNotBoolean = errors.New("expression did not evaluate to a boolean")
)

// ExpressionFilter is a Predicate compiled from a free-form boolean
// expression over the fields of a close approach, for criteria the fixed
// attribute filters cannot express (for example combining attributes:
// `distance < 0.2 && neo.hazardous`).
//
// The expression environment exposes:
//
//	date          approach date, "YYYY-MM-DD"
//	datetime_utc  canonical approach timestamp
//	designation   approach designation
//	distance      nominal distance, au
//	velocity      relative velocity, km/s
//	neo.designation, neo.name, neo.diameter, neo.hazardous
//
// The program is compiled once at construction; evaluation runs it per
// approach. Unlike the attribute filters, evaluation can fail per record:
// a non-boolean result is an error, not a truthiness guess.
type ExpressionFilter struct {
	source  string
	program *vm.Program
}

// NewExpressionFilter compiles source into an ExpressionFilter. Compilation
// failures are reported at construction so a bad expression never reaches
// the query pass.
func NewExpressionFilter(source string) (*ExpressionFilter, error) {
	if isBlank(source) {
		return nil, ErrEmptyExpression
	}

	// AllowUndefinedVariables keeps references to absent fields evaluable
	// (they resolve to nil) instead of failing compilation. The date
	// builtin is disabled so the env's date field is not shadowed by it.
	program, err := expr.Compile(source,
		expr.AllowUndefinedVariables(),
		expr.DisableBuiltin("date"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return &ExpressionFilter{source: source, program: program}, nil
}

// Source returns the expression text the filter was compiled from.
func (f *ExpressionFilter) Source() string {
	return f.source
}

func (f *ExpressionFilter) String() string {
	return fmt.Sprintf("ExpressionFilter(%q)", f.source)
}

// Evaluate implements Predicate.
func (f *ExpressionFilter) Evaluate(approach *neo.CloseApproach) (bool, error) {
	output, err := expr.Run(f.program, environment(approach))
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", f.source, err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q evaluated to %T", ErrNotBoolean, f.source, output)
	}
	return result, nil
}

// environment builds the per-approach evaluation environment.
func environment(approach *neo.CloseApproach) map[string]any {
	return map[string]any{
		"date":         dateOf(approach.Time).Format(time.DateOnly),
		"datetime_utc": neo.FormatTime(approach.Time),
		"designation":  approach.Designation,
		"distance":     approach.Distance,
		"velocity":     approach.Velocity,
		"neo": map[string]any{
			"designation": approach.NEO.Designation,
			"name":        approach.NEO.Name,
			"diameter":    approach.NEO.Diameter,
			"hazardous":   approach.NEO.Hazardous,
		},
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
