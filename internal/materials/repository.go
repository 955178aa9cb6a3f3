package materials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository is the read side of the externally synchronized materials
// table. The engine never writes to it.
type Repository interface {
	ListMaterials(ctx context.Context) ([]Record, error)
}

// PostgresRepository implements Repository against the materials table
// maintained by the external sync/import tooling.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL materials repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// materialRow mirrors the materials table. Stage fractions are nullable:
// a row with no split gets the documented default at store build time.
type materialRow struct {
	ID                  string          `db:"id"`
	Name                string          `db:"name"`
	Category            string          `db:"category"`
	Subcategory         sql.NullString  `db:"subcategory"`
	Unit                string          `db:"unit"`
	EmbodiedCarbon      float64         `db:"embodied_carbon"`
	SplitA1A3           sql.NullFloat64 `db:"split_a1a3"`
	SplitA4             sql.NullFloat64 `db:"split_a4"`
	SplitA5             sql.NullFloat64 `db:"split_a5"`
	SplitC1C4           sql.NullFloat64 `db:"split_c1c4"`
	SplitD              sql.NullFloat64 `db:"split_d"`
	BiogenicCarbon      sql.NullFloat64 `db:"biogenic_carbon"`
	CarbonSequestration sql.NullFloat64 `db:"carbon_sequestration"`
	Source              sql.NullString  `db:"source"`
}

// ListMaterials reads every material row.
func (r *PostgresRepository) ListMaterials(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, name, category, subcategory, unit, embodied_carbon,
		       split_a1a3, split_a4, split_a5, split_c1c4, split_d,
		       biogenic_carbon, carbon_sequestration, source
		FROM materials
		ORDER BY id`

	var rows []materialRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (row *materialRow) toRecord() Record {
	rec := Record{
		ID:             row.ID,
		Name:           row.Name,
		Category:       row.Category,
		Unit:           row.Unit,
		EmbodiedCarbon: row.EmbodiedCarbon,
	}
	if row.Subcategory.Valid {
		rec.Subcategory = row.Subcategory.String
	}
	if row.Source.Valid {
		rec.Source = row.Source.String
	}
	if row.SplitA1A3.Valid && row.SplitA4.Valid && row.SplitA5.Valid {
		split := StageSplit{
			A1A3: row.SplitA1A3.Float64,
			A4:   row.SplitA4.Float64,
			A5:   row.SplitA5.Float64,
		}
		if row.SplitC1C4.Valid {
			v := row.SplitC1C4.Float64
			split.C1C4 = &v
		}
		if row.SplitD.Valid {
			v := row.SplitD.Float64
			split.D = &v
		}
		rec.StageSplit = &split
	}
	if row.BiogenicCarbon.Valid {
		v := row.BiogenicCarbon.Float64
		rec.BiogenicCarbon = &v
	}
	if row.CarbonSequestration.Valid {
		v := row.CarbonSequestration.Float64
		rec.CarbonSequestration = &v
	}
	return rec
}
