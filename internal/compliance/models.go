// Package compliance evaluates carbon intensity against versioned
// benchmark band tables for multiple independent rating frameworks.
package compliance

import (
	"encoding/json"
	"fmt"
	"math"
)

// ProjectType selects which benchmark bands apply.
type ProjectType string

const (
	ProjectTypeResidential    ProjectType = "residential"
	ProjectTypeCommercial     ProjectType = "commercial"
	ProjectTypeIndustrial     ProjectType = "industrial"
	ProjectTypeInfrastructure ProjectType = "infrastructure"
)

// Valid reports whether p is one of the known project types. The enum is
// closed: a misspelled type must fail a calculation, never pass through as
// a project no framework happens to cover.
func (p ProjectType) Valid() bool {
	switch p {
	case ProjectTypeResidential, ProjectTypeCommercial, ProjectTypeIndustrial, ProjectTypeInfrastructure:
		return true
	}
	return false
}

// FrameworkID identifies a rating framework.
type FrameworkID string

const (
	FrameworkNCC        FrameworkID = "ncc"        // code-compliance intensity bands
	FrameworkNABERS     FrameworkID = "nabers"     // 0-6 star rating
	FrameworkGreenStar  FrameworkID = "greenstar"  // points toward a certification tier
	FrameworkDisclosure FrameworkID = "disclosure" // reporting-threshold check
)

// Ceiling is a band's upper bound in kg CO2-e/m². The worst band of every
// table uses +Inf as a sentinel; it marshals as "inf" since JSON has no
// infinity literal.
type Ceiling float64

// IsInf reports whether the ceiling is the +Inf sentinel.
func (c Ceiling) IsInf() bool {
	return math.IsInf(float64(c), 1)
}

// MarshalJSON renders the +Inf sentinel as the string "inf".
func (c Ceiling) MarshalJSON() ([]byte, error) {
	if c.IsInf() {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float64(c))
}

// UnmarshalJSON accepts a number or the string "inf".
func (c *Ceiling) UnmarshalJSON(data []byte) error {
	if string(data) == `"inf"` {
		*c = Ceiling(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid ceiling: %w", err)
	}
	*c = Ceiling(v)
	return nil
}

// Verdict is the framework-specific outcome of a band. Label is always
// present; the remaining fields are populated per framework (stars for a
// star rating, points and tier for points-based certification, compliant
// for pass/fail checks).
type Verdict struct {
	Label     string `json:"label" yaml:"label"`
	Stars     *int   `json:"stars,omitempty" yaml:"stars,omitempty"`
	Points    *int   `json:"points,omitempty" yaml:"points,omitempty"`
	Tier      string `json:"tier,omitempty" yaml:"tier,omitempty"`
	Compliant *bool  `json:"compliant,omitempty" yaml:"compliant,omitempty"`
}

// Band maps an intensity ceiling to a verdict. Bands are ordered ascending
// by ceiling; a value maps to the first band whose ceiling is >= the value.
type Band struct {
	Ceiling Ceiling `json:"ceiling" yaml:"ceiling"`
	Verdict Verdict `json:"verdict" yaml:",inline"`
}

// Framework is one versioned benchmark table: bands per project type.
// Tables are configuration data, swappable without touching the evaluator.
type Framework struct {
	ID      FrameworkID            `json:"id" yaml:"id"`
	Name    string                 `json:"name" yaml:"name"`
	Metric  string                 `json:"metric" yaml:"metric"`
	Version string                 `json:"version" yaml:"version"`
	Bands   map[ProjectType][]Band `json:"bands" yaml:"bands"`
}

// Result is the outcome of evaluating one framework.
type Result struct {
	Framework     FrameworkID `json:"framework"`
	FrameworkName string      `json:"framework_name"`
	Version       string      `json:"version"`
	MetricUsed    string      `json:"metric_used"`
	MetricValue   float64     `json:"metric_value"`
	ProjectType   ProjectType `json:"project_type"`
	Thresholds    []Band      `json:"thresholds_applied"`
	Verdict       Verdict     `json:"verdict"`
}

// UnknownFrameworkError reports a framework id absent from the table set.
type UnknownFrameworkError struct {
	Framework FrameworkID
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("unknown compliance framework: %s", e.Framework)
}

// UnsupportedProjectTypeError reports a project type a framework carries no
// bands for. There is deliberately no fallback band: a silent default would
// classify the project against the wrong benchmark.
type UnsupportedProjectTypeError struct {
	Framework   FrameworkID
	ProjectType ProjectType
}

func (e *UnsupportedProjectTypeError) Error() string {
	return fmt.Sprintf("framework %s does not support project type %q", e.Framework, e.ProjectType)
}
