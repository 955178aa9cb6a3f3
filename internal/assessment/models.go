package assessment

import (
	"time"

	"github.com/google/uuid"

	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/lca"
	"carbonconstruct/calculator-backend/internal/scopes"
)

// Request is one end-to-end calculation request: a bill of materials plus
// project context, an optional operational-emissions pair supplied by an
// external tracker, and the frameworks to evaluate (empty means every
// framework that supports the project type).
type Request struct {
	ProjectName     string                    `json:"project_name"`
	ProjectType     compliance.ProjectType    `json:"project_type"`
	Metadata        lca.ProjectMetadata       `json:"metadata"`
	BillOfMaterials []lca.BOMLine             `json:"bill_of_materials"`
	Options         lca.Options               `json:"options"`
	Operational     *scopes.DirectOperational `json:"operational,omitempty"`
	Frameworks      []compliance.FrameworkID  `json:"frameworks,omitempty"`
}

// Assessment is the aggregate result of one calculation, persisted verbatim
// and returned to the caller.
type Assessment struct {
	ID          uuid.UUID              `json:"id"`
	ProjectName string                 `json:"project_name"`
	ProjectType compliance.ProjectType `json:"project_type"`

	Metadata        lca.ProjectMetadata       `json:"metadata"`
	BillOfMaterials []lca.BOMLine             `json:"bill_of_materials"`
	Options         lca.Options               `json:"options"`
	Operational     *scopes.DirectOperational `json:"operational,omitempty"`

	LCA        *lca.Result         `json:"lca"`
	Scopes     *scopes.Result      `json:"scopes"`
	Compliance []compliance.Result `json:"compliance"`

	TablesVersion string    `json:"tables_version"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilters narrows List results.
type ListFilters struct {
	ProjectType *compliance.ProjectType
	Limit       int
	Offset      int
}

// FrameworkInfo describes one framework the evaluator can serve.
type FrameworkInfo struct {
	ID           compliance.FrameworkID   `json:"id"`
	Name         string                   `json:"name"`
	Version      string                   `json:"version"`
	Metric       string                   `json:"metric"`
	ProjectTypes []compliance.ProjectType `json:"project_types"`
}
