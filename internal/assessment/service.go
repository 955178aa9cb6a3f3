package assessment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbonconstruct/calculator-backend/internal/assessment/metrics"
	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/lca"
	"carbonconstruct/calculator-backend/internal/materials"
	"carbonconstruct/calculator-backend/internal/scopes"
)

// Service runs calculations end to end: material lookup, LCA stage
// calculation, scopes mapping, compliance evaluation, persistence.
// The engine packages stay pure; all side effects live here.
type Service struct {
	snapshot  *materials.Snapshot
	tables    *compliance.TableSet
	evaluator *compliance.Evaluator
	repo      Repository
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new assessment service.
func NewService(snapshot *materials.Snapshot, tables *compliance.TableSet, repo Repository, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		snapshot:  snapshot,
		tables:    tables,
		evaluator: compliance.NewEvaluator(tables),
		repo:      repo,
		logger:    logger,
		metrics:   m,
	}
}

// Run executes one calculation. Engine failures are fatal for the whole
// request and surface as typed errors; nothing partial is persisted.
func (s *Service) Run(ctx context.Context, req *Request) (*Assessment, error) {
	start := time.Now()

	if req.ProjectType == "" {
		s.metrics.IncrementAssessment("invalid_input")
		return nil, &lca.InvalidMetadataError{Reason: "project type is required"}
	}
	if !req.ProjectType.Valid() {
		s.metrics.IncrementAssessment("invalid_input")
		return nil, &lca.InvalidMetadataError{Reason: fmt.Sprintf("unknown project type %q", req.ProjectType)}
	}

	store := s.snapshot.Current()
	s.metrics.SetMaterialCount(store.Len())

	lcaResult, err := lca.Compute(req.BillOfMaterials, store, req.Metadata, req.Options)
	if err != nil {
		s.metrics.IncrementAssessment(outcomeFor(err))
		return nil, err
	}

	scopesResult := scopes.Map(lcaResult, req.Operational)

	frameworks := req.Frameworks
	if len(frameworks) == 0 {
		frameworks = s.tables.FrameworksFor(req.ProjectType)
	}
	complianceResults, err := s.evaluator.Evaluate(lcaResult.CarbonIntensity, req.ProjectType, frameworks)
	if err != nil {
		s.metrics.IncrementAssessment(outcomeFor(err))
		return nil, err
	}

	a := &Assessment{
		ID:              uuid.New(),
		ProjectName:     req.ProjectName,
		ProjectType:     req.ProjectType,
		Metadata:        req.Metadata,
		BillOfMaterials: req.BillOfMaterials,
		Options:         req.Options,
		Operational:     req.Operational,
		LCA:             lcaResult,
		Scopes:          scopesResult,
		Compliance:      complianceResults,
		TablesVersion:   s.tables.Version(),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		s.metrics.IncrementAssessment("error")
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	s.metrics.IncrementAssessment("ok")
	s.metrics.ObserveCompute(time.Since(start))
	s.logger.Info("Assessment completed",
		zap.String("assessment_id", a.ID.String()),
		zap.String("project_type", string(a.ProjectType)),
		zap.Float64("total_embodied_carbon", lcaResult.TotalEmbodiedCarbon),
		zap.Float64("carbon_intensity", lcaResult.CarbonIntensity),
		zap.Int("bom_lines", len(req.BillOfMaterials)))

	return a, nil
}

// outcomeFor buckets engine errors for the assessments counter.
func outcomeFor(err error) string {
	var notFound *lca.MaterialNotFoundError
	var badQty *lca.InvalidQuantityError
	var badMeta *lca.InvalidMetadataError
	var badType *compliance.UnsupportedProjectTypeError
	var badFw *compliance.UnknownFrameworkError
	if errors.As(err, &notFound) || errors.As(err, &badQty) || errors.As(err, &badMeta) ||
		errors.As(err, &badType) || errors.As(err, &badFw) {
		return "invalid_input"
	}
	return "error"
}

// Get retrieves a stored assessment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetAssessment(ctx, id)
}

// List retrieves stored assessments, newest first.
func (s *Service) List(ctx context.Context, filters *ListFilters) ([]*Assessment, int, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.repo.ListAssessments(ctx, filters)
}

// Materials returns the live coefficient snapshot, ordered by id.
func (s *Service) Materials() []materials.Record {
	return s.snapshot.Current().All()
}

// Material resolves one material by id.
func (s *Service) Material(id string) (materials.Record, bool) {
	return s.snapshot.Current().Lookup(id)
}

// Frameworks describes the frameworks served by the current table set.
func (s *Service) Frameworks() []FrameworkInfo {
	var infos []FrameworkInfo
	for _, id := range s.tables.FrameworkIDs() {
		fw, _ := s.tables.Framework(id)
		types := make([]compliance.ProjectType, 0, len(fw.Bands))
		for pt := range fw.Bands {
			types = append(types, pt)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		infos = append(infos, FrameworkInfo{
			ID:           fw.ID,
			Name:         fw.Name,
			Version:      fw.Version,
			Metric:       fw.Metric,
			ProjectTypes: types,
		})
	}
	return infos
}
