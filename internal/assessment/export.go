package assessment

import (
	"fmt"
	"strconv"

	"carbonconstruct/calculator-backend/internal/export"
	"carbonconstruct/calculator-backend/internal/materials"
)

// BuildDocument flattens an assessment into a renderer-neutral document
// for CSV/Excel/PDF export. Material rows are resolved against the given
// source for display names and units; a material that has since left the
// library is shown by id alone.
func BuildDocument(a *Assessment, source func(id string) (materials.Record, bool)) *export.Document {
	title := "Embodied Carbon Assessment"
	if a.ProjectName != "" {
		title = fmt.Sprintf("Embodied Carbon Assessment - %s", a.ProjectName)
	}

	doc := &export.Document{
		Title:       title,
		Subtitle:    fmt.Sprintf("Project type: %s, benchmark tables %s", a.ProjectType, a.TablesVersion),
		GeneratedAt: a.CreatedAt,
		Summary: []export.KV{
			{Key: "Assessment ID", Value: a.ID.String()},
			{Key: "Gross floor area (m2)", Value: formatFloat(a.Metadata.GrossFloorArea)},
			{Key: "Total embodied carbon (kg CO2-e)", Value: formatFloat(a.LCA.TotalEmbodiedCarbon)},
			{Key: "Carbon intensity (kg CO2-e/m2)", Value: formatFloat(a.LCA.CarbonIntensity)},
			{Key: "Biogenic carbon (kg CO2-e)", Value: formatFloat(a.LCA.TotalBiogenicCarbon)},
		},
	}
	if a.Metadata.DesignLifeYears > 0 {
		doc.Summary = append(doc.Summary, export.KV{
			Key: "Design life (years)", Value: strconv.Itoa(a.Metadata.DesignLifeYears),
		})
	}
	if a.LCA.WholeLifeCarbon != nil {
		doc.Summary = append(doc.Summary, export.KV{
			Key: "Whole-life carbon incl. biogenic (kg CO2-e)", Value: formatFloat(*a.LCA.WholeLifeCarbon),
		})
	}

	doc.Tables = append(doc.Tables, export.Table{
		Title:   "Lifecycle Stages",
		Columns: []string{"Stage", "kg CO2-e", "Boundary"},
		Rows: [][]string{
			{"A1-A3 Product", formatFloat(a.LCA.StageBreakdown.A1A3), "core"},
			{"A4 Transport", formatFloat(a.LCA.StageBreakdown.A4), "core"},
			{"A5 Installation", formatFloat(a.LCA.StageBreakdown.A5), "core"},
			{"C1-C4 End of life", formatFloat(a.LCA.StageBreakdown.C1C4), "informational"},
			{"D Beyond boundary", formatFloat(a.LCA.StageBreakdown.D), "informational"},
		},
	})

	scopesNote := "complete"
	if a.Scopes.Partial {
		scopesNote = "partial: no operational data supplied"
	}
	doc.Tables = append(doc.Tables, export.Table{
		Title:   "GHG Protocol Scopes",
		Columns: []string{"Scope", "kg CO2-e", "Coverage"},
		Rows: [][]string{
			{"Scope 1 (direct)", formatFloat(a.Scopes.Scope1), scopesNote},
			{"Scope 2 (purchased energy)", formatFloat(a.Scopes.Scope2), scopesNote},
			{"Scope 3 (value chain)", formatFloat(a.Scopes.Scope3), "complete"},
		},
	})

	complianceRows := make([][]string, 0, len(a.Compliance))
	for _, result := range a.Compliance {
		verdict := result.Verdict.Label
		if result.Verdict.Stars != nil {
			verdict = fmt.Sprintf("%d stars", *result.Verdict.Stars)
		}
		if result.Verdict.Points != nil {
			verdict = fmt.Sprintf("%s (%d points)", verdict, *result.Verdict.Points)
		}
		complianceRows = append(complianceRows, []string{
			result.FrameworkName,
			result.Version,
			formatFloat(result.MetricValue),
			verdict,
		})
	}
	doc.Tables = append(doc.Tables, export.Table{
		Title:   "Compliance",
		Columns: []string{"Framework", "Version", "Intensity", "Verdict"},
		Rows:    complianceRows,
	})

	bomRows := make([][]string, 0, len(a.BillOfMaterials))
	for _, line := range a.BillOfMaterials {
		name, unit := line.MaterialID, ""
		if rec, ok := source(line.MaterialID); ok {
			if rec.Name != "" {
				name = rec.Name
			}
			unit = rec.Unit
		}
		bomRows = append(bomRows, []string{name, line.MaterialID, formatFloat(line.Quantity), unit})
	}
	doc.Tables = append(doc.Tables, export.Table{
		Title:   "Bill of Materials",
		Columns: []string{"Material", "ID", "Quantity", "Unit"},
		Rows:    bomRows,
	})

	return doc
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
