package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTables = `
version: "custom-1"
frameworks:
  - id: ncc
    name: Custom code bands
    metric: carbon_intensity_kgco2e_m2
    version: "2027"
    bands:
      residential:
        - {ceiling: 300, label: exemplary, compliant: true}
        - {ceiling: 450, label: compliant, compliant: true}
        - {ceiling: .inf, label: non_compliant, compliant: false}
  - id: nabers
    name: Custom stars
    metric: carbon_intensity_kgco2e_m2
    version: "2027"
    bands:
      residential:
        - {ceiling: 250, label: 5_star, stars: 5}
        - {ceiling: .inf, label: 0_star, stars: 0}
`

func TestParseTables(t *testing.T) {
	tables, err := ParseTables([]byte(sampleTables))
	require.NoError(t, err)
	assert.Equal(t, "custom-1", tables.Version())

	fw, ok := tables.Framework(FrameworkNCC)
	require.True(t, ok)
	assert.Equal(t, "2027", fw.Version)

	bands := fw.Bands[ProjectTypeResidential]
	require.Len(t, bands, 3)
	assert.True(t, bands[2].Ceiling.IsInf())
	require.NotNil(t, bands[0].Verdict.Compliant)
	assert.True(t, *bands[0].Verdict.Compliant)

	stars, ok := tables.Framework(FrameworkNABERS)
	require.True(t, ok)
	require.NotNil(t, stars.Bands[ProjectTypeResidential][0].Verdict.Stars)
	assert.Equal(t, 5, *stars.Bands[ProjectTypeResidential][0].Verdict.Stars)

	// Swapped tables drive the evaluator with no code changes.
	evaluator := NewEvaluator(tables)
	results, err := evaluator.Evaluate(460, ProjectTypeResidential, []FrameworkID{FrameworkNCC})
	require.NoError(t, err)
	assert.Equal(t, "non_compliant", results[0].Verdict.Label)
}

func TestParseTablesRejectsMissingSentinel(t *testing.T) {
	bad := `
version: "v"
frameworks:
  - id: ncc
    name: Bad
    metric: m
    version: "1"
    bands:
      residential:
        - {ceiling: 300, label: ok}
        - {ceiling: 450, label: worse}
`
	_, err := ParseTables([]byte(bad))
	assert.Error(t, err)
}

func TestParseTablesRejectsMissingVersion(t *testing.T) {
	_, err := ParseTables([]byte(`frameworks: []`))
	assert.Error(t, err)
}
