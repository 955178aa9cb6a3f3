// Package export renders tabular documents to CSV, Excel and PDF.
// Callers build a Document from their domain objects; the renderers carry
// no domain knowledge.
package export

import "time"

// KV is one summary line.
type KV struct {
	Key   string
	Value string
}

// Table is one titled section of columns and pre-formatted rows.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Document is a renderer-neutral report: a summary block followed by
// tabular sections.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Summary     []KV
	Tables      []Table
}
