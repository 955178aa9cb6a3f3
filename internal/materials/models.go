package materials

import (
	"fmt"
	"math"
)

// Stage identifies an EN 15978 lifecycle stage boundary.
type Stage string

const (
	StageA1A3 Stage = "a1a3" // product: raw material supply, transport, manufacturing
	StageA4   Stage = "a4"   // transport to site
	StageA5   Stage = "a5"   // construction / installation
	StageC1C4 Stage = "c1c4" // end of life
	StageD    Stage = "d"    // benefits beyond the system boundary
)

// SplitTolerance is the allowed deviation of the core stage fractions from 1.0.
const SplitTolerance = 0.005

// StageSplit apportions a material's embodied carbon across lifecycle stages.
// The core fractions (A1A3, A4, A5) must sum to 1.0 within SplitTolerance.
// C1C4 and D sit outside the cradle-to-site boundary, are not part of the
// normalization, and may be negative (e.g. recycling credit).
type StageSplit struct {
	A1A3 float64  `json:"a1a3" yaml:"a1a3"`
	A4   float64  `json:"a4" yaml:"a4"`
	A5   float64  `json:"a5" yaml:"a5"`
	C1C4 *float64 `json:"c1c4,omitempty" yaml:"c1c4,omitempty"`
	D    *float64 `json:"d,omitempty" yaml:"d,omitempty"`
}

// DefaultStageSplit is the documented fallback applied at load time to a
// record that declares no split: 90% product, 5% transport, 5% install.
var DefaultStageSplit = StageSplit{A1A3: 0.90, A4: 0.05, A5: 0.05}

// Record is one material's carbon profile. EmbodiedCarbon is expressed in
// kg CO2-e per Unit and may be negative for biogenic-storing materials.
// Records are read-only to the calculation engine.
type Record struct {
	ID          string `json:"id" yaml:"id" db:"id"`
	Name        string `json:"name" yaml:"name" db:"name"`
	Category    string `json:"category" yaml:"category" db:"category"`
	Subcategory string `json:"subcategory,omitempty" yaml:"subcategory,omitempty" db:"subcategory"`
	Unit        string `json:"unit" yaml:"unit" db:"unit"`

	EmbodiedCarbon float64     `json:"embodied_carbon" yaml:"embodied_carbon" db:"embodied_carbon"`
	StageSplit     *StageSplit `json:"stage_split,omitempty" yaml:"stage_split,omitempty"`

	// Carbon stored in the material, tracked separately from EmbodiedCarbon
	// so it can be reported without double-counting into the project total.
	BiogenicCarbon      *float64 `json:"biogenic_carbon,omitempty" yaml:"biogenic_carbon,omitempty" db:"biogenic_carbon"`
	CarbonSequestration *float64 `json:"carbon_sequestration,omitempty" yaml:"carbon_sequestration,omitempty" db:"carbon_sequestration"`

	Source string `json:"source,omitempty" yaml:"source,omitempty" db:"source"`
}

// EffectiveSplit returns the record's stage split, or DefaultStageSplit when
// the record declares none.
func (r *Record) EffectiveSplit() StageSplit {
	if r.StageSplit == nil {
		return DefaultStageSplit
	}
	return *r.StageSplit
}

// MalformedMaterialRecordError reports a record rejected at load time,
// before it can reach a calculation.
type MalformedMaterialRecordError struct {
	ID     string
	Reason string
}

func (e *MalformedMaterialRecordError) Error() string {
	return fmt.Sprintf("malformed material record %q: %s", e.ID, e.Reason)
}

// Validate checks the invariants a record must satisfy before it is admitted
// to a Store.
func (r *Record) Validate() error {
	if r.ID == "" {
		return &MalformedMaterialRecordError{ID: r.ID, Reason: "missing id"}
	}
	if r.Unit == "" {
		return &MalformedMaterialRecordError{ID: r.ID, Reason: "missing unit"}
	}
	if math.IsNaN(r.EmbodiedCarbon) {
		return &MalformedMaterialRecordError{ID: r.ID, Reason: "embodied carbon must not be NaN"}
	}
	if r.StageSplit != nil {
		sum := r.StageSplit.A1A3 + r.StageSplit.A4 + r.StageSplit.A5
		// NaN fractions would pass the range check below: NaN compares false.
		if math.IsNaN(sum) {
			return &MalformedMaterialRecordError{ID: r.ID, Reason: "core stage fractions must not be NaN"}
		}
		if sum < 1.0-SplitTolerance || sum > 1.0+SplitTolerance {
			return &MalformedMaterialRecordError{
				ID:     r.ID,
				Reason: fmt.Sprintf("core stage fractions sum to %.4f, expected 1.0 ±%.3f", sum, SplitTolerance),
			}
		}
		if r.StageSplit.A1A3 < 0 || r.StageSplit.A4 < 0 || r.StageSplit.A5 < 0 {
			return &MalformedMaterialRecordError{ID: r.ID, Reason: "core stage fractions must be non-negative"}
		}
		if (r.StageSplit.C1C4 != nil && math.IsNaN(*r.StageSplit.C1C4)) ||
			(r.StageSplit.D != nil && math.IsNaN(*r.StageSplit.D)) {
			return &MalformedMaterialRecordError{ID: r.ID, Reason: "optional stage fractions must not be NaN"}
		}
	}
	return nil
}
