package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteExcel renders the document as an xlsx workbook: a Summary sheet
// followed by one sheet per table.
func WriteExcel(w io.Writer, doc *Document) error {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	file.SetSheetName("Sheet1", "Summary")
	file.SetCellValue("Summary", "A1", doc.Title)
	file.SetCellValue("Summary", "B1", doc.GeneratedAt.Format("2006-01-02 15:04"))
	for i, kv := range doc.Summary {
		file.SetCellValue("Summary", fmt.Sprintf("A%d", i+3), kv.Key)
		file.SetCellValue("Summary", fmt.Sprintf("B%d", i+3), kv.Value)
	}
	file.SetColWidth("Summary", "A", "B", 32)

	for _, table := range doc.Tables {
		if _, err := file.NewSheet(table.Title); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Title, err)
		}
		for i, col := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			file.SetCellValue(table.Title, cell, col)
			file.SetCellStyle(table.Title, cell, cell, headerStyle)
		}
		for r, row := range table.Rows {
			for c, val := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				file.SetCellValue(table.Title, cell, val)
			}
		}
		endCol, _ := excelize.ColumnNumberToName(len(table.Columns))
		file.SetColWidth(table.Title, "A", endCol, 24)
		file.SetPanes(table.Title, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
