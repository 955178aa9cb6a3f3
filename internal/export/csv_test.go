package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Title:       "Embodied Carbon Assessment",
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Summary: []KV{
			{Key: "Total embodied carbon (kg CO2-e)", Value: "37200"},
			{Key: "Carbon intensity (kg CO2-e/m2)", Value: "74.4"},
		},
		Tables: []Table{
			{
				Title:   "Lifecycle Stages",
				Columns: []string{"Stage", "kg CO2-e"},
				Rows: [][]string{
					{"A1-A3 Product", "33480"},
					{"A4 Transport", "1860"},
					{"A5 Installation", "1860"},
				},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "Embodied Carbon Assessment")
	assert.Contains(t, out, "Total embodied carbon (kg CO2-e),37200")
	assert.Contains(t, out, "Stage,kg CO2-e")
	assert.Contains(t, out, "A4 Transport,1860")
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleDocument()))
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleDocument()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}
