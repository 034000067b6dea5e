package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
)

// --- Mocks ---

// MockProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetMyProfile(ctx context.Context, userID string) (*models.EnrichedProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedProfile), args.Error(1)
}

func (m *MockProfileService) GetAgentByID(ctx context.Context, agentUserID string) (*models.EnrichedProfile, error) {
	args := m.Called(ctx, agentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedProfile), args.Error(1)
}

func (m *MockProfileService) UpdateMyProfile(ctx context.Context, userID string, update services.ProfileUpdate, docs services.ProfileDocuments) (*models.AgentProfile, error) {
	args := m.Called(ctx, userID, update, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentProfile), args.Error(1)
}

func (m *MockProfileService) GetAllAgents(ctx context.Context) ([]models.EnrichedProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EnrichedProfile), args.Error(1)
}

func (m *MockProfileService) GetAgentsBatch(ctx context.Context, profileIDs []string) ([]services.AgentSummary, error) {
	args := m.Called(ctx, profileIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.AgentSummary), args.Error(1)
}

func (m *MockProfileService) GetDashboardOverview(ctx context.Context, userID string) (*services.DashboardOverview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DashboardOverview), args.Error(1)
}

// MockReferralService
type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) EnsureCode(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockReferralService) TrackReferral(ctx context.Context, code, newUserID string) (*services.TrackResult, error) {
	args := m.Called(ctx, code, newUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TrackResult), args.Error(1)
}

func (m *MockReferralService) GetReferralData(ctx context.Context, userID string) (*services.ReferralData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReferralData), args.Error(1)
}

// MockVerificationService
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Submit(ctx context.Context, userID string, input services.VerificationInput, docs services.ProfileDocuments) (*models.AgentProfile, error) {
	args := m.Called(ctx, userID, input, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentProfile), args.Error(1)
}

func (m *MockVerificationService) Resubmit(ctx context.Context, userID string, input services.VerificationInput, docs services.ProfileDocuments) (*models.AgentProfile, error) {
	args := m.Called(ctx, userID, input, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentProfile), args.Error(1)
}

func (m *MockVerificationService) GetMyVerification(ctx context.Context, userID string) (*models.AgentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentProfile), args.Error(1)
}

func (m *MockVerificationService) GetReceipt(ctx context.Context, userID string) (*services.VerificationReceipt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VerificationReceipt), args.Error(1)
}

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) AddProperty(ctx context.Context, agentID string, input services.PropertyInput, media services.PropertyMedia) (*models.Property, error) {
	args := m.Called(ctx, agentID, input, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string, input services.PropertyInput, media services.PropertyMedia) (*models.Property, error) {
	args := m.Called(ctx, propertyID, agentID, input, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string) error {
	args := m.Called(ctx, propertyID, agentID)
	return args.Error(0)
}

func (m *MockPropertyService) DeleteImages(ctx context.Context, propertyID primitive.ObjectID, imageURLs []string) ([]string, error) {
	args := m.Called(ctx, propertyID, imageURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPropertyService) DeleteVideos(ctx context.Context, propertyID primitive.ObjectID, videoURLs []string) ([]string, error) {
	args := m.Called(ctx, propertyID, videoURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPropertyService) DeleteYouTubeLinks(ctx context.Context, propertyID primitive.ObjectID, links []string) ([]string, error) {
	args := m.Called(ctx, propertyID, links)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPropertyService) GetSingleProperty(ctx context.Context, propertyID primitive.ObjectID) (*models.Property, *models.EnrichedAgent, error) {
	args := m.Called(ctx, propertyID)
	var property *models.Property
	var agent *models.EnrichedAgent
	if args.Get(0) != nil {
		property = args.Get(0).(*models.Property)
	}
	if args.Get(1) != nil {
		agent = args.Get(1).(*models.EnrichedAgent)
	}
	return property, agent, args.Error(2)
}

func (m *MockPropertyService) GetAllPropertiesWithAgents(ctx context.Context) ([]models.EnrichedProperty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EnrichedProperty), args.Error(1)
}

func (m *MockPropertyService) GetMyProperties(ctx context.Context, agentID string) (*services.AgentWithProperties, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AgentWithProperties), args.Error(1)
}

func (m *MockPropertyService) GetPublicAgentWithProperties(ctx context.Context, profileID primitive.ObjectID) (*services.AgentWithProperties, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AgentWithProperties), args.Error(1)
}

func (m *MockPropertyService) Filter(ctx context.Context, opts services.FilterOptions) ([]models.Property, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}
