package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/lca"
	"carbonconstruct/calculator-backend/internal/materials"
	"carbonconstruct/calculator-backend/internal/scopes"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAssessment(ctx context.Context, a *Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Assessment), args.Error(1)
}

func (m *MockRepository) ListAssessments(ctx context.Context, filters *ListFilters) ([]*Assessment, int, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*Assessment), args.Int(1), args.Error(2)
}

func floatPtr(v float64) *float64 { return &v }

func testService(t *testing.T, repo Repository) *Service {
	t.Helper()
	store, err := materials.NewStore([]materials.Record{
		{
			ID: "concrete32", Name: "Concrete 32 MPa", Category: "concrete", Unit: "m3",
			EmbodiedCarbon: 310,
			StageSplit:     &materials.StageSplit{A1A3: 0.90, A4: 0.05, A5: 0.05},
		},
		{
			ID: "timber_clt", Name: "Cross-laminated timber", Category: "timber", Unit: "m3",
			EmbodiedCarbon: -200,
			StageSplit:     &materials.StageSplit{A1A3: 0.85, A4: 0.08, A5: 0.07},
			BiogenicCarbon: floatPtr(-650),
		},
	})
	require.NoError(t, err)

	return NewService(materials.NewSnapshot(store), compliance.DefaultTables(), repo, zap.NewNop(), nil)
}

func TestRunAssessment(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)

	mockRepo.On("CreateAssessment", mock.Anything, mock.AnythingOfType("*assessment.Assessment")).Return(nil)

	a, err := service.Run(context.Background(), &Request{
		ProjectName: "12 Harbour St",
		ProjectType: compliance.ProjectTypeCommercial,
		Metadata:    lca.ProjectMetadata{GrossFloorArea: 500, DesignLifeYears: 50},
		BillOfMaterials: []lca.BOMLine{
			{MaterialID: "concrete32", Quantity: 120},
		},
		Operational: &scopes.DirectOperational{Scope1: 1500, Scope2: 820},
	})

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.InDelta(t, 37200, a.LCA.TotalEmbodiedCarbon, 1e-9)
	assert.InDelta(t, 74.4, a.LCA.CarbonIntensity, 1e-9)

	// Embodied carbon lands in scope 3, operational in scopes 1 and 2.
	assert.InDelta(t, 37200, a.Scopes.Scope3, 1e-9)
	assert.InDelta(t, 1500, a.Scopes.Scope1, 1e-9)
	assert.False(t, a.Scopes.Partial)

	// Every default framework that supports commercial projects is evaluated.
	assert.Len(t, a.Compliance, 4)
	assert.Equal(t, compliance.DefaultTablesVersion, a.TablesVersion)

	mockRepo.AssertExpectations(t)
}

func TestRunAssessmentWithoutOperationalData(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)
	mockRepo.On("CreateAssessment", mock.Anything, mock.Anything).Return(nil)

	a, err := service.Run(context.Background(), &Request{
		ProjectType:     compliance.ProjectTypeResidential,
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 200},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "concrete32", Quantity: 30}},
	})

	require.NoError(t, err)
	assert.True(t, a.Scopes.Partial)
	assert.Zero(t, a.Scopes.Scope1)
	assert.Zero(t, a.Scopes.Scope2)
}

func TestRunAssessmentUnknownMaterial(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)

	a, err := service.Run(context.Background(), &Request{
		ProjectType:     compliance.ProjectTypeCommercial,
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 500},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "unobtainium", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, a)

	var notFound *lca.MaterialNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "unobtainium", notFound.MaterialID)

	// Nothing partial is ever persisted.
	mockRepo.AssertNotCalled(t, "CreateAssessment", mock.Anything, mock.Anything)
}

func TestRunAssessmentUnknownProjectType(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)

	a, err := service.Run(context.Background(), &Request{
		ProjectType:     "commerical", // typo, not in the enum
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 500},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "concrete32", Quantity: 120}},
	})

	require.Error(t, err)
	assert.Nil(t, a)

	var badMeta *lca.InvalidMetadataError
	require.True(t, errors.As(err, &badMeta))
	assert.Contains(t, err.Error(), "commerical")

	// A misspelled type must never persist an assessment with zero verdicts.
	mockRepo.AssertNotCalled(t, "CreateAssessment", mock.Anything, mock.Anything)
}

func TestRunAssessmentMissingProjectType(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)

	_, err := service.Run(context.Background(), &Request{
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 500},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "concrete32", Quantity: 1}},
	})

	var badMeta *lca.InvalidMetadataError
	require.True(t, errors.As(err, &badMeta))
}

func TestRunAssessmentExplicitFrameworks(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)
	mockRepo.On("CreateAssessment", mock.Anything, mock.Anything).Return(nil)

	a, err := service.Run(context.Background(), &Request{
		ProjectType:     compliance.ProjectTypeCommercial,
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 500},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "concrete32", Quantity: 120}},
		Frameworks:      []compliance.FrameworkID{compliance.FrameworkNCC},
	})

	require.NoError(t, err)
	require.Len(t, a.Compliance, 1)
	assert.Equal(t, compliance.FrameworkNCC, a.Compliance[0].Framework)
	// intensity 74.4 is well under the commercial exemplary ceiling
	assert.Equal(t, "exemplary", a.Compliance[0].Verdict.Label)
}

func TestRunAssessmentWholeLifeView(t *testing.T) {
	mockRepo := new(MockRepository)
	service := testService(t, mockRepo)
	mockRepo.On("CreateAssessment", mock.Anything, mock.Anything).Return(nil)

	a, err := service.Run(context.Background(), &Request{
		ProjectType:     compliance.ProjectTypeResidential,
		Metadata:        lca.ProjectMetadata{GrossFloorArea: 400},
		BillOfMaterials: []lca.BOMLine{{MaterialID: "timber_clt", Quantity: 50}},
		Options:         lca.Options{IncludeBiogenic: true},
	})

	require.NoError(t, err)
	assert.InDelta(t, -10000, a.LCA.TotalEmbodiedCarbon, 1e-9)
	assert.InDelta(t, -32500, a.LCA.TotalBiogenicCarbon, 1e-9)
	require.NotNil(t, a.LCA.WholeLifeCarbon)
	assert.InDelta(t, -42500, *a.LCA.WholeLifeCarbon, 1e-9)
}

func TestFrameworksListing(t *testing.T) {
	service := testService(t, new(MockRepository))

	infos := service.Frameworks()
	require.Len(t, infos, 4)
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.ProjectTypes)
	}
}
