package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/lca"
	"carbonconstruct/calculator-backend/internal/scopes"
)

// Repository defines the persistence interface for assessments.
type Repository interface {
	CreateAssessment(ctx context.Context, a *Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, filters *ListFilters) ([]*Assessment, int, error)
}

// NotFoundError reports a lookup for an assessment id that does not exist,
// as opposed to a storage failure.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assessment not found: %s", e.ID)
}

// PostgresRepository implements Repository using PostgreSQL. Results are
// stored verbatim as JSONB: the storage layer carries no calculation
// semantics of its own.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL assessment repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type assessmentRow struct {
	ID                uuid.UUID `db:"id"`
	ProjectName       string    `db:"project_name"`
	ProjectType       string    `db:"project_type"`
	GrossFloorArea    float64   `db:"gross_floor_area"`
	DesignLifeYears   int       `db:"design_life_years"`
	IncludeBiogenic   bool      `db:"include_biogenic"`
	BillOfMaterials   []byte    `db:"bill_of_materials"`
	Operational       []byte    `db:"operational"`
	LCAResult         []byte    `db:"lca_result"`
	ScopesResult      []byte    `db:"scopes_result"`
	ComplianceResults []byte    `db:"compliance_results"`
	TablesVersion     string    `db:"tables_version"`
	CreatedAt         time.Time `db:"created_at"`
}

// CreateAssessment stores an assessment.
func (r *PostgresRepository) CreateAssessment(ctx context.Context, a *Assessment) error {
	row, err := toRow(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assessments (
			id, project_name, project_type, gross_floor_area, design_life_years,
			include_biogenic, bill_of_materials, operational, lca_result,
			scopes_result, compliance_results, tables_version, created_at
		) VALUES (
			:id, :project_name, :project_type, :gross_floor_area, :design_life_years,
			:include_biogenic, :bill_of_materials, :operational, :lca_result,
			:scopes_result, :compliance_results, :tables_version, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves an assessment by id.
func (r *PostgresRepository) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	query := `SELECT * FROM assessments WHERE id = $1`

	var row assessmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return fromRow(&row)
}

// ListAssessments retrieves assessments newest first.
func (r *PostgresRepository) ListAssessments(ctx context.Context, filters *ListFilters) ([]*Assessment, int, error) {
	where := ""
	args := []interface{}{}
	if filters.ProjectType != nil {
		where = " WHERE project_type = $1"
		args = append(args, string(*filters.ProjectType))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM assessments"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count assessments: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM assessments%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		where, filters.Limit, filters.Offset)

	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}

	assessments := make([]*Assessment, 0, len(rows))
	for i := range rows {
		a, err := fromRow(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		assessments = append(assessments, a)
	}
	return assessments, total, nil
}

func toRow(a *Assessment) (*assessmentRow, error) {
	row := &assessmentRow{
		ID:              a.ID,
		ProjectName:     a.ProjectName,
		ProjectType:     string(a.ProjectType),
		GrossFloorArea:  a.Metadata.GrossFloorArea,
		DesignLifeYears: a.Metadata.DesignLifeYears,
		IncludeBiogenic: a.Options.IncludeBiogenic,
		TablesVersion:   a.TablesVersion,
		CreatedAt:       a.CreatedAt,
	}

	var err error
	if row.BillOfMaterials, err = json.Marshal(a.BillOfMaterials); err != nil {
		return nil, fmt.Errorf("failed to marshal bill of materials: %w", err)
	}
	if a.Operational != nil {
		if row.Operational, err = json.Marshal(a.Operational); err != nil {
			return nil, fmt.Errorf("failed to marshal operational emissions: %w", err)
		}
	}
	if row.LCAResult, err = json.Marshal(a.LCA); err != nil {
		return nil, fmt.Errorf("failed to marshal lca result: %w", err)
	}
	if row.ScopesResult, err = json.Marshal(a.Scopes); err != nil {
		return nil, fmt.Errorf("failed to marshal scopes result: %w", err)
	}
	if row.ComplianceResults, err = json.Marshal(a.Compliance); err != nil {
		return nil, fmt.Errorf("failed to marshal compliance results: %w", err)
	}
	return row, nil
}

func fromRow(row *assessmentRow) (*Assessment, error) {
	a := &Assessment{
		ID:          row.ID,
		ProjectName: row.ProjectName,
		ProjectType: compliance.ProjectType(row.ProjectType),
		Metadata: lca.ProjectMetadata{
			GrossFloorArea:  row.GrossFloorArea,
			DesignLifeYears: row.DesignLifeYears,
		},
		Options:       lca.Options{IncludeBiogenic: row.IncludeBiogenic},
		TablesVersion: row.TablesVersion,
		CreatedAt:     row.CreatedAt,
	}

	if err := json.Unmarshal(row.BillOfMaterials, &a.BillOfMaterials); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bill of materials: %w", err)
	}
	if len(row.Operational) > 0 {
		var op scopes.DirectOperational
		if err := json.Unmarshal(row.Operational, &op); err != nil {
			return nil, fmt.Errorf("failed to unmarshal operational emissions: %w", err)
		}
		a.Operational = &op
	}
	if err := json.Unmarshal(row.LCAResult, &a.LCA); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lca result: %w", err)
	}
	if err := json.Unmarshal(row.ScopesResult, &a.Scopes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scopes result: %w", err)
	}
	if err := json.Unmarshal(row.ComplianceResults, &a.Compliance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compliance results: %w", err)
	}
	return a, nil
}
