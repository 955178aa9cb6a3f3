package lca

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonconstruct/calculator-backend/internal/materials"
)

func floatPtr(v float64) *float64 { return &v }

func testStore(t *testing.T) *materials.Store {
	t.Helper()
	store, err := materials.NewStore([]materials.Record{
		{
			ID:             "concrete32",
			Name:           "Concrete 32 MPa",
			Category:       "concrete",
			Unit:           "m3",
			EmbodiedCarbon: 310,
			StageSplit:     &materials.StageSplit{A1A3: 0.90, A4: 0.05, A5: 0.05},
		},
		{
			ID:             "steel",
			Name:           "Structural steel",
			Category:       "steel",
			Unit:           "t",
			EmbodiedCarbon: 2900,
			StageSplit: &materials.StageSplit{
				A1A3: 0.92, A4: 0.04, A5: 0.04,
				C1C4: floatPtr(0.03), D: floatPtr(-0.35),
			},
		},
		{
			ID:             "timber",
			Name:           "Cross-laminated timber",
			Category:       "timber",
			Unit:           "m3",
			EmbodiedCarbon: -200,
			StageSplit:     &materials.StageSplit{A1A3: 0.85, A4: 0.08, A5: 0.07},
			BiogenicCarbon: floatPtr(-650),
		},
		{
			ID:             "plasterboard",
			Name:           "Plasterboard 13mm",
			Category:       "plasterboard",
			Unit:           "m2",
			EmbodiedCarbon: 4.1,
			// no stage split: documented 90/5/5 default applies
		},
	})
	require.NoError(t, err)
	return store
}

func TestComputeSingleMaterial(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{{MaterialID: "concrete32", Quantity: 120}},
		store,
		ProjectMetadata{GrossFloorArea: 500},
		Options{},
	)

	require.NoError(t, err)
	assert.InDelta(t, 37200, result.TotalEmbodiedCarbon, 1e-9)
	assert.InDelta(t, 33480, result.StageBreakdown.A1A3, 1e-9)
	assert.InDelta(t, 1860, result.StageBreakdown.A4, 1e-9)
	assert.InDelta(t, 1860, result.StageBreakdown.A5, 1e-9)
	assert.InDelta(t, 74.4, result.CarbonIntensity, 1e-9)
	assert.Zero(t, result.TotalBiogenicCarbon)
	assert.Nil(t, result.WholeLifeCarbon)
}

func TestComputeStageSumEqualsTotal(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{
			{MaterialID: "concrete32", Quantity: 85.5},
			{MaterialID: "steel", Quantity: 12.25},
			{MaterialID: "timber", Quantity: 40},
			{MaterialID: "plasterboard", Quantity: 2200},
		},
		store,
		ProjectMetadata{GrossFloorArea: 1250},
		Options{},
	)

	require.NoError(t, err)
	coreSum := result.StageBreakdown.A1A3 + result.StageBreakdown.A4 + result.StageBreakdown.A5
	assert.InEpsilon(t, result.TotalEmbodiedCarbon, coreSum, 1e-6)
}

func TestComputeEndOfLifeStagesExcludedFromTotal(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{{MaterialID: "steel", Quantity: 10}},
		store,
		ProjectMetadata{GrossFloorArea: 100},
		Options{},
	)

	require.NoError(t, err)
	// 10 t × 2900 = 29000 core total, C1C4 and D reported alongside it
	assert.InDelta(t, 29000, result.TotalEmbodiedCarbon, 1e-9)
	assert.InDelta(t, 29000*0.03, result.StageBreakdown.C1C4, 1e-9)
	assert.InDelta(t, 29000*-0.35, result.StageBreakdown.D, 1e-9)
	coreSum := result.StageBreakdown.A1A3 + result.StageBreakdown.A4 + result.StageBreakdown.A5
	assert.InEpsilon(t, 29000, coreSum, 1e-6)
}

func TestComputeDefaultStageSplit(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{{MaterialID: "plasterboard", Quantity: 1000}},
		store,
		ProjectMetadata{GrossFloorArea: 200},
		Options{},
	)

	require.NoError(t, err)
	assert.InDelta(t, 4100, result.TotalEmbodiedCarbon, 1e-9)
	assert.InDelta(t, 4100*0.90, result.StageBreakdown.A1A3, 1e-9)
	assert.InDelta(t, 4100*0.05, result.StageBreakdown.A4, 1e-9)
	assert.InDelta(t, 4100*0.05, result.StageBreakdown.A5, 1e-9)
}

func TestComputeBiogenicSeparation(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{{MaterialID: "timber", Quantity: 50}},
		store,
		ProjectMetadata{GrossFloorArea: 400},
		Options{},
	)

	require.NoError(t, err)
	assert.InDelta(t, -10000, result.TotalEmbodiedCarbon, 1e-9) // 50 × -200
	assert.InDelta(t, -32500, result.TotalBiogenicCarbon, 1e-9) // 50 × -650
	assert.Nil(t, result.WholeLifeCarbon)
	assert.False(t, result.IncludesBiogenic)
}

func TestComputeWholeLifeView(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{{MaterialID: "timber", Quantity: 50}},
		store,
		ProjectMetadata{GrossFloorArea: 400},
		Options{IncludeBiogenic: true},
	)

	require.NoError(t, err)
	// Gross total is unchanged; biogenic appears only in the whole-life figure.
	assert.InDelta(t, -10000, result.TotalEmbodiedCarbon, 1e-9)
	require.NotNil(t, result.WholeLifeCarbon)
	assert.InDelta(t, -42500, *result.WholeLifeCarbon, 1e-9)
	assert.True(t, result.IncludesBiogenic)
}

func TestComputeZeroQuantityLine(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{
			{MaterialID: "concrete32", Quantity: 0},
			{MaterialID: "timber", Quantity: 0},
		},
		store,
		ProjectMetadata{GrossFloorArea: 100},
		Options{},
	)

	require.NoError(t, err)
	assert.Zero(t, result.TotalEmbodiedCarbon)
	assert.Zero(t, result.StageBreakdown.A1A3)
	assert.Zero(t, result.TotalBiogenicCarbon)
	assert.Zero(t, result.CarbonIntensity)
}

func TestComputeMissingMaterialFailsLoudly(t *testing.T) {
	store := testStore(t)

	result, err := Compute(
		[]BOMLine{
			{MaterialID: "concrete32", Quantity: 10},
			{MaterialID: "unobtainium", Quantity: 5},
		},
		store,
		ProjectMetadata{GrossFloorArea: 100},
		Options{},
	)

	require.Error(t, err)
	assert.Nil(t, result)

	var notFound *MaterialNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "unobtainium", notFound.MaterialID)
	assert.Equal(t, 1, notFound.Line)
}

func TestComputeNegativeQuantity(t *testing.T) {
	store := testStore(t)

	_, err := Compute(
		[]BOMLine{{MaterialID: "concrete32", Quantity: -5}},
		store,
		ProjectMetadata{GrossFloorArea: 100},
		Options{},
	)

	var badQty *InvalidQuantityError
	require.True(t, errors.As(err, &badQty))
	assert.Equal(t, "concrete32", badQty.MaterialID)
	assert.Equal(t, -5.0, badQty.Quantity)
}

func TestComputeRejectsNaNInputs(t *testing.T) {
	store := testStore(t)

	_, err := Compute(
		[]BOMLine{{MaterialID: "concrete32", Quantity: math.NaN()}},
		store,
		ProjectMetadata{GrossFloorArea: 100},
		Options{},
	)
	var badQty *InvalidQuantityError
	require.True(t, errors.As(err, &badQty))

	_, err = Compute(
		[]BOMLine{{MaterialID: "concrete32", Quantity: 10}},
		store,
		ProjectMetadata{GrossFloorArea: math.NaN()},
		Options{},
	)
	var badMeta *InvalidMetadataError
	require.True(t, errors.As(err, &badMeta))
}

func TestComputeInvalidMetadata(t *testing.T) {
	store := testStore(t)

	for _, area := range []float64{0, -10} {
		_, err := Compute(
			[]BOMLine{{MaterialID: "concrete32", Quantity: 10}},
			store,
			ProjectMetadata{GrossFloorArea: area},
			Options{},
		)
		var badMeta *InvalidMetadataError
		require.True(t, errors.As(err, &badMeta), "area %v", area)
	}
}

func TestComputeIdempotent(t *testing.T) {
	store := testStore(t)
	bom := []BOMLine{
		{MaterialID: "concrete32", Quantity: 33.7},
		{MaterialID: "steel", Quantity: 4.2},
		{MaterialID: "timber", Quantity: 18},
	}
	metadata := ProjectMetadata{GrossFloorArea: 777}

	first, err := Compute(bom, store, metadata, Options{IncludeBiogenic: true})
	require.NoError(t, err)
	second, err := Compute(bom, store, metadata, Options{IncludeBiogenic: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEmptyBillOfMaterials(t *testing.T) {
	store := testStore(t)

	result, err := Compute(nil, store, ProjectMetadata{GrossFloorArea: 100}, Options{})

	require.NoError(t, err)
	assert.Zero(t, result.TotalEmbodiedCarbon)
	assert.Zero(t, result.LineCount)
}
