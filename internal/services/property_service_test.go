package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

// MockUploader mocks storage.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	args := m.Called(ctx, data, folder)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, publicID, resourceType string) error {
	args := m.Called(ctx, publicID, resourceType)
	return args.Error(0)
}

// fakeVideoPlatform returns fixed video ids without network calls.
type fakeVideoPlatform struct {
	inserted int
	fail     bool
}

func (f *fakeVideoPlatform) Insert(ctx context.Context, title, description string, tags []string, privacyStatus string, media io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("quota exceeded")
	}
	f.inserted++
	return fmt.Sprintf("vid-%d", f.inserted), nil
}

// MockTaskClient mocks tasks.IClient.
type MockTaskClient struct {
	mock.Mock
}

func (m *MockTaskClient) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func TestNormalizeRooms_LandRule(t *testing.T) {
	bedrooms, toilets := NormalizeRooms("land", 3, 2)
	assert.Equal(t, 0, bedrooms)
	assert.Equal(t, 0, toilets)

	// Case-insensitive, whitespace tolerant
	bedrooms, toilets = NormalizeRooms("  Land ", 5, 4)
	assert.Equal(t, 0, bedrooms)
	assert.Equal(t, 0, toilets)

	bedrooms, toilets = NormalizeRooms("duplex", 3, 2)
	assert.Equal(t, 3, bedrooms)
	assert.Equal(t, 2, toilets)

	// Negative input clamps to zero
	bedrooms, toilets = NormalizeRooms("flat", -1, -2)
	assert.Equal(t, 0, bedrooms)
	assert.Equal(t, 0, toilets)
}

func TestBuildPropertyFilter_PriceRange(t *testing.T) {
	query := BuildPropertyFilter(FilterOptions{PriceRange: "100k-500k"})
	price, ok := query["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 100_000.0, price["$gte"])
	assert.Equal(t, 500_000.0, price["$lte"])

	query = BuildPropertyFilter(FilterOptions{PriceRange: "2M+"})
	price, ok = query["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 2_000_000.0, price["$gte"])
	_, hasUpper := price["$lte"]
	assert.False(t, hasUpper)

	// Unparseable range is ignored rather than failing the search
	query = BuildPropertyFilter(FilterOptions{PriceRange: "cheap"})
	_, hasPrice := query["price"]
	assert.False(t, hasPrice)
}

func TestBuildPropertyFilter_StatesAndTypes(t *testing.T) {
	query := BuildPropertyFilter(FilterOptions{
		States: []string{"Lagos", "Abuja"},
		Types:  []string{"duplex,bungalow"},
	})

	location, ok := query["location"].(bson.M)
	require.True(t, ok)
	assert.Len(t, location["$in"], 2)

	types, ok := query["type"].(bson.M)
	require.True(t, ok)
	assert.Len(t, types["$in"], 2)
}

func TestBuildPropertyFilter_Search(t *testing.T) {
	query := BuildPropertyFilter(FilterOptions{Search: "waterfront"})
	or, ok := query["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 4)
}

func TestBuildPropertyFilter_Empty(t *testing.T) {
	assert.Empty(t, BuildPropertyFilter(FilterOptions{}))
}

func TestVideoDescription(t *testing.T) {
	price := 2_000_000.0
	withFeatures := PropertyInput{Features: []string{"pool", "garage"}, Location: "Lekki", Price: &price}
	assert.Equal(t, "pool, garage", videoDescription(withFeatures))

	noFeatures := PropertyInput{Location: "Lekki", Price: &price}
	assert.Equal(t, "Property in Lekki priced at ₦2000000", videoDescription(noFeatures))
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAddProperty_LifecycleWithMongo(t *testing.T) {
	db := utils.SetupTestDB(t, "testdb_property_service", "properties", "agent_profiles")
	ctx := context.Background()

	mockAuth := new(MockAuthClient)
	mockAuth.On("GetUsersBatch", mock.Anything, mock.Anything).Return(nil, errors.New("auth down"))
	mockAuth.On("GetUser", mock.Anything, mock.Anything).Return(nil, errors.New("auth down"))
	enrichment := NewEnrichmentService(mockAuth)

	uploader := new(MockUploader)
	uploader.On("Upload", mock.Anything, mock.Anything, "properties/images").
		Return("https://cdn.example.com/properties/images/img1.jpg", nil)

	taskClient := new(MockTaskClient)
	taskClient.On("Enqueue", mock.Anything, mock.Anything).Return(&asynq.TaskInfo{}, nil)

	cfg := &config.Config{}
	svc := NewPropertyService(db, cfg, enrichment, uploader, &fakeVideoPlatform{}, taskClient)

	input := PropertyInput{
		Title:           "3 Bedroom Duplex",
		Location:        "Lekki, Lagos",
		Price:           floatPtr(25_000_000),
		TransactionType: "sale",
		Type:            "duplex",
		Bedrooms:        intPtr(3),
		Toilets:         intPtr(4),
	}
	media := PropertyMedia{Images: []MediaFile{{Name: "img1.jpg", Data: []byte("jpegdata")}}}

	created, err := svc.AddProperty(ctx, "agent-1", input, media)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "agent-1", created.Agent)
	assert.Len(t, created.Images, 1)
	assert.Len(t, created.FileHashes, 1)

	// Re-adding the same bytes is skipped by the hash check.
	updated, err := svc.UpdateProperty(ctx, created.ID, "agent-1", PropertyInput{}, media)
	require.NoError(t, err)
	assert.Len(t, updated.Images, 1)

	// View counter increments atomically on read.
	got, _, err := svc.GetSingleProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	// Ownership is enforced on delete.
	err = svc.DeleteProperty(ctx, created.ID, "someone-else")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = svc.DeleteProperty(ctx, created.ID, "agent-1")
	require.NoError(t, err)
}

func TestAddProperty_RequiresMedia(t *testing.T) {
	svc := &propertyService{}
	_, err := svc.AddProperty(context.Background(), "agent-1", PropertyInput{Title: "x"}, PropertyMedia{})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAddProperty_RequiresAgent(t *testing.T) {
	svc := &propertyService{}
	_, err := svc.AddProperty(context.Background(), "", PropertyInput{}, PropertyMedia{
		Images: []MediaFile{{Name: "a.jpg", Data: []byte("x")}},
	})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateProperty_LandRuleOnTypeChange(t *testing.T) {
	db := utils.SetupTestDB(t, "testdb_property_land", "properties")
	ctx := context.Background()

	uploader := new(MockUploader)
	taskClient := new(MockTaskClient)
	mockAuth := new(MockAuthClient)
	mockAuth.On("GetUser", mock.Anything, mock.Anything).Return(nil, errors.New("auth down"))
	svc := NewPropertyService(db, &config.Config{}, NewEnrichmentService(mockAuth), uploader, &fakeVideoPlatform{}, taskClient)

	uploader.On("Upload", mock.Anything, mock.Anything, "properties/images").
		Return("https://cdn.example.com/properties/images/img1.jpg", nil)

	created, err := svc.AddProperty(ctx, "agent-1", PropertyInput{
		Title: "Plot", Type: "duplex", Bedrooms: intPtr(3), Toilets: intPtr(2),
	}, PropertyMedia{Images: []MediaFile{{Name: "a.jpg", Data: []byte("x")}}})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Bedrooms)

	updated, err := svc.UpdateProperty(ctx, created.ID, "agent-1", PropertyInput{Type: "land"}, PropertyMedia{})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Bedrooms)
	assert.Equal(t, 0, updated.Toilets)
}
