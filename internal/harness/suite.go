package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sqlbook/sqlbook/internal/catalog"
)

// Suite is a conformance suite loaded from YAML.
// It names the catalog queries to execute and the checks to evaluate
// against each query's output.
type Suite struct {
	// Name identifies the suite in results and logs.
	Name string `yaml:"name"`

	// Description explains what the suite validates.
	Description string `yaml:"description"`

	// Queries lists the catalog entries to run, in execution order.
	// Order matters: record-sale mutates stock, so checks on entries
	// listed after it see the post-sale database.
	Queries []QueryChecks `yaml:"queries"`
}

// QueryChecks binds one catalog query to the checks on its output.
type QueryChecks struct {
	// Query is the catalog slug to execute.
	Query string `yaml:"query"`

	// Checks are evaluated against the query's result set in order.
	Checks []Check `yaml:"checks"`
}

// Check is one declarative check on a query's output.
// Type selects the check; the remaining fields are type-specific.
type Check struct {
	// Type is one of the Check* constants.
	Type string `yaml:"type"`

	// Count, Min, and Max bound the result size (row_count).
	// Pointers distinguish an absent bound from an explicit zero.
	Count *int `yaml:"count,omitempty"`
	Min   *int `yaml:"min,omitempty"`
	Max   *int `yaml:"max,omitempty"`

	// Column names the projected column for column checks.
	Column string `yaml:"column,omitempty"`

	// Value is the comparand for all_equal, greater_than, and sum.
	Value interface{} `yaml:"value,omitempty"`

	// Table, Where, and Expect describe a final_state probe of the
	// database after the query ran.
	Table  string                 `yaml:"table,omitempty"`
	Where  map[string]interface{} `yaml:"where,omitempty"`
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Check types supported by the harness.
const (
	CheckRowCount        = "row_count"
	CheckAllEqual        = "all_equal"
	CheckNonIncreasing   = "non_increasing"
	CheckNonDecreasing   = "non_decreasing"
	CheckGreaterThan     = "greater_than"
	CheckSum             = "sum"
	CheckNoDuplicateRows = "no_duplicate_rows"
	CheckFinalState      = "final_state"
)

//go:embed suite.yaml
var defaultSuiteYAML []byte

// LoadSuite reads and validates a suite from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite decodes and validates suite YAML.
// Unknown fields are rejected so a typo in a check definition fails
// loudly instead of silently passing.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &suite, nil
}

// DefaultSuite returns the embedded conformance suite, which covers the
// documented output properties of every catalog entry.
func DefaultSuite() (*Suite, error) {
	return ParseSuite(defaultSuiteYAML)
}

// validateSuite checks required fields and that every referenced query
// exists in the catalog.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and cannot be empty")
	}

	for i, qc := range s.Queries {
		if qc.Query == "" {
			return fmt.Errorf("queries[%d]: query is required", i)
		}
		if _, ok := catalog.BySlug(qc.Query); !ok {
			return fmt.Errorf("queries[%d]: unknown catalog query %q", i, qc.Query)
		}
		if len(qc.Checks) == 0 {
			return fmt.Errorf("queries[%d]: checks list is required and cannot be empty", i)
		}
		for j, check := range qc.Checks {
			if err := validateCheck(check); err != nil {
				return fmt.Errorf("queries[%d].checks[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

// validateCheck validates the type-specific required fields of a check.
func validateCheck(c Check) error {
	switch c.Type {
	case "":
		return fmt.Errorf("type is required")

	case CheckRowCount:
		if c.Count == nil && c.Min == nil && c.Max == nil {
			return fmt.Errorf("row_count requires count, min, or max")
		}
		bounds := []struct {
			name string
			v    *int
		}{{"count", c.Count}, {"min", c.Min}, {"max", c.Max}}
		for _, b := range bounds {
			if b.v != nil && *b.v < 0 {
				return fmt.Errorf("row_count: %s cannot be negative", b.name)
			}
		}
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return fmt.Errorf("row_count: min %d exceeds max %d", *c.Min, *c.Max)
		}

	case CheckAllEqual:
		if c.Column == "" {
			return fmt.Errorf("all_equal requires column")
		}
		if c.Value == nil {
			return fmt.Errorf("all_equal requires value")
		}

	case CheckNonIncreasing, CheckNonDecreasing:
		if c.Column == "" {
			return fmt.Errorf("%s requires column", c.Type)
		}

	case CheckGreaterThan:
		if c.Column == "" {
			return fmt.Errorf("greater_than requires column")
		}
		if c.Value == nil {
			return fmt.Errorf("greater_than requires value")
		}

	case CheckSum:
		if c.Column == "" {
			return fmt.Errorf("sum requires column")
		}
		if c.Value == nil {
			return fmt.Errorf("sum requires value")
		}

	case CheckNoDuplicateRows:
		// No additional fields.

	case CheckFinalState:
		if c.Table == "" {
			return fmt.Errorf("final_state requires table")
		}
		if len(c.Expect) == 0 {
			return fmt.Errorf("final_state requires expect")
		}

	default:
		return fmt.Errorf("unknown check type %q", c.Type)
	}

	return nil
}
