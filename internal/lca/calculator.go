package lca

import "math"

// Compute turns a bill of materials plus project metadata into lifecycle
// carbon results. It is pure: it reads only its inputs and the injected
// material source, performs no I/O and keeps no state between calls.
// Accumulation follows input order for reproducibility.
//
// Any failure is fatal for the whole calculation; no partial results are
// returned. Retrying is the caller's decision.
func Compute(bom []BOMLine, source MaterialSource, metadata ProjectMetadata, opts Options) (*Result, error) {
	if metadata.GrossFloorArea <= 0 || math.IsNaN(metadata.GrossFloorArea) {
		return nil, &InvalidMetadataError{Reason: "gross floor area must be > 0"}
	}

	result := &Result{
		GrossFloorArea:   metadata.GrossFloorArea,
		DesignLifeYears:  metadata.DesignLifeYears,
		IncludesBiogenic: opts.IncludeBiogenic,
		LineCount:        len(bom),
	}

	for i, line := range bom {
		if line.Quantity < 0 || math.IsNaN(line.Quantity) {
			return nil, &InvalidQuantityError{MaterialID: line.MaterialID, Line: i, Quantity: line.Quantity}
		}

		material, ok := source.Lookup(line.MaterialID)
		if !ok {
			return nil, &MaterialNotFoundError{MaterialID: line.MaterialID, Line: i}
		}

		lineTotal := line.Quantity * material.EmbodiedCarbon
		split := material.EffectiveSplit()

		result.TotalEmbodiedCarbon += lineTotal
		result.StageBreakdown.A1A3 += lineTotal * split.A1A3
		result.StageBreakdown.A4 += lineTotal * split.A4
		result.StageBreakdown.A5 += lineTotal * split.A5

		// C1C4/D are reported alongside the core total, never added to it.
		if split.C1C4 != nil {
			result.StageBreakdown.C1C4 += lineTotal * (*split.C1C4)
		}
		if split.D != nil {
			result.StageBreakdown.D += lineTotal * (*split.D)
		}

		if material.BiogenicCarbon != nil {
			result.TotalBiogenicCarbon += line.Quantity * (*material.BiogenicCarbon)
		}
		if material.CarbonSequestration != nil {
			result.TotalSequestration += line.Quantity * (*material.CarbonSequestration)
		}
	}

	if opts.IncludeBiogenic {
		wholeLife := result.TotalEmbodiedCarbon + result.TotalBiogenicCarbon
		result.WholeLifeCarbon = &wholeLife
	}

	result.CarbonIntensity = result.TotalEmbodiedCarbon / metadata.GrossFloorArea

	return result, nil
}
