package compliance

import "math"

// DefaultTablesVersion identifies the built-in Australian benchmark tables
// used when no external table file is configured.
const DefaultTablesVersion = "au-2026.1"

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func inf() Ceiling { return Ceiling(math.Inf(1)) }

// nccBands builds code-compliance intensity bands from three ceilings.
func nccBands(exemplary, compliant, marginal float64) []Band {
	return []Band{
		{Ceiling: Ceiling(exemplary), Verdict: Verdict{Label: "exemplary", Compliant: boolPtr(true)}},
		{Ceiling: Ceiling(compliant), Verdict: Verdict{Label: "compliant", Compliant: boolPtr(true)}},
		{Ceiling: Ceiling(marginal), Verdict: Verdict{Label: "marginal", Compliant: boolPtr(true)}},
		{Ceiling: inf(), Verdict: Verdict{Label: "non_compliant", Compliant: boolPtr(false)}},
	}
}

// starBands builds a 6..0 star ladder from six ceilings.
func starBands(c6, c5, c4, c3, c2, c1 float64) []Band {
	return []Band{
		{Ceiling: Ceiling(c6), Verdict: Verdict{Label: "6_star", Stars: intPtr(6)}},
		{Ceiling: Ceiling(c5), Verdict: Verdict{Label: "5_star", Stars: intPtr(5)}},
		{Ceiling: Ceiling(c4), Verdict: Verdict{Label: "4_star", Stars: intPtr(4)}},
		{Ceiling: Ceiling(c3), Verdict: Verdict{Label: "3_star", Stars: intPtr(3)}},
		{Ceiling: Ceiling(c2), Verdict: Verdict{Label: "2_star", Stars: intPtr(2)}},
		{Ceiling: Ceiling(c1), Verdict: Verdict{Label: "1_star", Stars: intPtr(1)}},
		{Ceiling: inf(), Verdict: Verdict{Label: "0_star", Stars: intPtr(0)}},
	}
}

// pointsBands builds points-based certification bands from four ceilings.
func pointsBands(world, excellence, best, minimum float64) []Band {
	return []Band{
		{Ceiling: Ceiling(world), Verdict: Verdict{Label: "world_leadership", Points: intPtr(20), Tier: "world_leadership"}},
		{Ceiling: Ceiling(excellence), Verdict: Verdict{Label: "australian_excellence", Points: intPtr(15), Tier: "australian_excellence"}},
		{Ceiling: Ceiling(best), Verdict: Verdict{Label: "best_practice", Points: intPtr(10), Tier: "best_practice"}},
		{Ceiling: Ceiling(minimum), Verdict: Verdict{Label: "minimum_practice", Points: intPtr(5), Tier: "minimum_practice"}},
		{Ceiling: inf(), Verdict: Verdict{Label: "uncertified", Points: intPtr(0)}},
	}
}

// disclosureBands builds a single reporting-threshold check.
func disclosureBands(threshold float64) []Band {
	return []Band{
		{Ceiling: Ceiling(threshold), Verdict: Verdict{Label: "below_threshold", Compliant: boolPtr(true)}},
		{Ceiling: inf(), Verdict: Verdict{Label: "disclosure_required", Compliant: boolPtr(false)}},
	}
}

// DefaultTables returns the built-in benchmark tables. They are plain data
// handed to the evaluator; deployments override them with an external YAML
// file (see LoadFile).
func DefaultTables() *TableSet {
	frameworks := []Framework{
		{
			ID:      FrameworkNCC,
			Name:    "National Construction Code embodied carbon provisions",
			Metric:  "carbon_intensity_kgco2e_m2",
			Version: "NCC 2025",
			Bands: map[ProjectType][]Band{
				ProjectTypeResidential:    nccBands(350, 500, 650),
				ProjectTypeCommercial:     nccBands(450, 600, 800),
				ProjectTypeIndustrial:     nccBands(500, 700, 900),
				ProjectTypeInfrastructure: nccBands(600, 850, 1100),
			},
		},
		{
			ID:      FrameworkNABERS,
			Name:    "NABERS embodied emissions rating",
			Metric:  "carbon_intensity_kgco2e_m2",
			Version: "2025.2",
			Bands: map[ProjectType][]Band{
				ProjectTypeResidential: starBands(200, 300, 400, 500, 650, 800),
				ProjectTypeCommercial:  starBands(250, 350, 450, 550, 700, 850),
				ProjectTypeIndustrial:  starBands(300, 400, 500, 650, 800, 950),
			},
		},
		{
			ID:      FrameworkGreenStar,
			Name:    "Green Star upfront carbon credit",
			Metric:  "carbon_intensity_kgco2e_m2",
			Version: "Buildings v1.1",
			Bands: map[ProjectType][]Band{
				ProjectTypeResidential:    pointsBands(250, 370, 500, 640),
				ProjectTypeCommercial:     pointsBands(280, 400, 550, 700),
				ProjectTypeIndustrial:     pointsBands(330, 470, 620, 780),
				ProjectTypeInfrastructure: pointsBands(420, 580, 760, 950),
			},
		},
		{
			ID:      FrameworkDisclosure,
			Name:    "Embodied carbon disclosure threshold",
			Metric:  "carbon_intensity_kgco2e_m2",
			Version: "2026",
			Bands: map[ProjectType][]Band{
				ProjectTypeResidential:    disclosureBands(500),
				ProjectTypeCommercial:     disclosureBands(600),
				ProjectTypeIndustrial:     disclosureBands(700),
				ProjectTypeInfrastructure: disclosureBands(850),
			},
		},
	}

	// Built-in data satisfies the same invariants as loaded data.
	ts, err := NewTableSet(DefaultTablesVersion, frameworks)
	if err != nil {
		panic(err)
	}
	return ts
}
