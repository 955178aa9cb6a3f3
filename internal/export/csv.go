package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders the document as a single CSV stream: summary key/value
// pairs first, then each table prefixed by its title.
func WriteCSV(w io.Writer, doc *Document) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{doc.Title, doc.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")}); err != nil {
		return fmt.Errorf("failed to write csv title: %w", err)
	}

	for _, kv := range doc.Summary {
		if err := writer.Write([]string{kv.Key, kv.Value}); err != nil {
			return fmt.Errorf("failed to write csv summary row: %w", err)
		}
	}

	for _, table := range doc.Tables {
		if err := writer.Write(nil); err != nil {
			return fmt.Errorf("failed to write csv separator: %w", err)
		}
		if err := writer.Write([]string{table.Title}); err != nil {
			return fmt.Errorf("failed to write csv table title: %w", err)
		}
		if err := writer.Write(table.Columns); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, row := range table.Rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
