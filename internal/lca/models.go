package lca

import "carbonconstruct/calculator-backend/internal/materials"

// BOMLine is one user-entered bill-of-materials row. Quantity is expressed
// in the referenced material's declared unit; the engine performs no unit
// conversion. Zero quantity is valid and contributes nothing.
type BOMLine struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

// ProjectMetadata is the calculation context.
type ProjectMetadata struct {
	GrossFloorArea  float64 `json:"gross_floor_area"` // m², required for intensity metrics
	DesignLifeYears int     `json:"design_life_years,omitempty"`
}

// Options selects the accounting view. IncludeBiogenic enables the
// whole-life view, which reports gross embodied carbon plus stored biogenic
// carbon as a distinct WholeLifeCarbon figure. It never changes the gross
// total; the choice of view is always explicit, never inferred.
type Options struct {
	IncludeBiogenic bool `json:"include_biogenic"`
}

// StageBreakdown is embodied carbon per lifecycle stage in kg CO2-e.
// C1C4 and D sit beyond the cradle-to-site boundary and are informational:
// they are reported for whole-of-life transparency but are never added to
// the core total.
type StageBreakdown struct {
	A1A3 float64 `json:"a1a3"`
	A4   float64 `json:"a4"`
	A5   float64 `json:"a5"`
	C1C4 float64 `json:"c1c4"`
	D    float64 `json:"d"`
}

// Result is the output of one LCA calculation. All figures in kg CO2-e.
type Result struct {
	// TotalEmbodiedCarbon is the cradle-to-site/install (A1-A5) total.
	TotalEmbodiedCarbon float64        `json:"total_embodied_carbon"`
	StageBreakdown      StageBreakdown `json:"stage_breakdown"`

	// Biogenic storage, accumulated separately so it can be reported
	// without double-counting into the project total.
	TotalBiogenicCarbon float64 `json:"total_biogenic_carbon"`
	TotalSequestration  float64 `json:"total_sequestration"`

	// WholeLifeCarbon = TotalEmbodiedCarbon + TotalBiogenicCarbon,
	// populated only when Options.IncludeBiogenic was set.
	WholeLifeCarbon  *float64 `json:"whole_life_carbon,omitempty"`
	IncludesBiogenic bool     `json:"includes_biogenic"`

	// CarbonIntensity is TotalEmbodiedCarbon / GrossFloorArea (kg CO2-e/m²).
	CarbonIntensity float64 `json:"carbon_intensity"`

	GrossFloorArea  float64 `json:"gross_floor_area"`
	DesignLifeYears int     `json:"design_life_years,omitempty"`
	LineCount       int     `json:"line_count"`
}

// MaterialSource resolves material ids to coefficient records.
// *materials.Store satisfies it; a caller may inject any read-only source.
type MaterialSource interface {
	Lookup(id string) (materials.Record, bool)
}
