package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/storage"
)

const profilesCollection = "agent_profiles"

// ProfileUpdate carries the updatable profile fields. Nil fields are
// left untouched.
type ProfileUpdate struct {
	AgencyName  *string
	AgencyEmail *string
	AgencyPhone *string
	Phone       *string
	State       *string
	Languages   []string
	About       *string
	OtherInfo   *string
}

// ProfileDocuments carries optional document uploads for a profile.
type ProfileDocuments struct {
	NationalID []byte
	AgencyLogo []byte
}

// DashboardOverview aggregates an agent's identity, profile and
// property statistics for the dashboard endpoint.
type DashboardOverview struct {
	Agent models.EnrichedAgent `json:"agent"`
	Stats DashboardStats       `json:"stats"`
}

// DashboardStats is the property side of the dashboard overview.
type DashboardStats struct {
	TotalProperties int                    `json:"totalProperties"`
	RecentSales     []models.RecentSale    `json:"recentSales"`
	RecentRented    []models.RecentSale    `json:"recentRented"`
	RecentBooked    []models.RecentBooking `json:"recentBooked"`
}

// AgentSummary is the trimmed projection returned by the batch lookup.
type AgentSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	UserID       string             `bson:"user_id" json:"userId"`
	AgencyName   string             `bson:"agency_name,omitempty" json:"agencyName,omitempty"`
	AgencyEmail  string             `bson:"agency_email,omitempty" json:"agencyEmail,omitempty"`
	AgencyPhone  string             `bson:"agency_phone,omitempty" json:"agencyPhone,omitempty"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	CoverImage   string             `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
}

// IProfileService defines the interface for agent profile operations.
type IProfileService interface {
	GetMyProfile(ctx context.Context, userID string) (*models.EnrichedProfile, error)
	GetAgentByID(ctx context.Context, agentUserID string) (*models.EnrichedProfile, error)
	UpdateMyProfile(ctx context.Context, userID string, update ProfileUpdate, docs ProfileDocuments) (*models.AgentProfile, error)
	GetAllAgents(ctx context.Context) ([]models.EnrichedProfile, error)
	GetAgentsBatch(ctx context.Context, profileIDs []string) ([]AgentSummary, error)
	GetDashboardOverview(ctx context.Context, userID string) (*DashboardOverview, error)
}

// profileService implements IProfileService.
type profileService struct {
	db         *mongo.Database
	cfg        *config.Config
	enrichment IEnrichmentService
	storage    storage.Uploader
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *mongo.Database, cfg *config.Config, enrichment IEnrichmentService, uploader storage.Uploader) IProfileService {
	return &profileService{db: db, cfg: cfg, enrichment: enrichment, storage: uploader}
}

func (s *profileService) findByUserID(ctx context.Context, userID string) (*models.AgentProfile, error) {
	var profile models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: agent profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// GetMyProfile returns the caller's profile with its identity record
// attached. A failing Auth service yields a nil user, not an error.
func (s *profileService) GetMyProfile(ctx context.Context, userID string) (*models.EnrichedProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}
	profile, err := s.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.EnrichedProfile{
		AgentProfile: *profile,
		User:         s.enrichment.EnrichOne(ctx, userID),
	}, nil
}

// GetAgentByID returns a public view of an approved agent, enriched.
func (s *profileService) GetAgentByID(ctx context.Context, agentUserID string) (*models.EnrichedProfile, error) {
	var profile models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOne(ctx, bson.M{
		"user_id": agentUserID,
		"status":  models.StatusApproved,
	}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: agent not found or not approved", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load agent %s: %w", agentUserID, err)
	}
	return &models.EnrichedProfile{
		AgentProfile: profile,
		User:         s.enrichment.EnrichOne(ctx, agentUserID),
	}, nil
}

// UpdateMyProfile applies the provided fields only; document uploads go
// through the storage collaborator first, and an upload failure aborts
// the whole update with no stale URLs written.
func (s *profileService) UpdateMyProfile(ctx context.Context, userID string, update ProfileUpdate, docs ProfileDocuments) (*models.AgentProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}

	set := bson.M{}
	if update.AgencyName != nil {
		set["agency_name"] = *update.AgencyName
	}
	if update.AgencyEmail != nil {
		set["agency_email"] = *update.AgencyEmail
	}
	if update.AgencyPhone != nil {
		set["agency_phone"] = *update.AgencyPhone
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.State != nil {
		set["state"] = *update.State
	}
	if update.Languages != nil {
		set["languages"] = update.Languages
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.OtherInfo != nil {
		set["other_info"] = *update.OtherInfo
	}

	if len(docs.NationalID) > 0 {
		url, err := s.storage.Upload(ctx, docs.NationalID, "agents/nationalIds")
		if err != nil {
			return nil, fmt.Errorf("%w: national id upload: %v", ErrUpload, err)
		}
		set["national_id"] = url
	}
	if len(docs.AgencyLogo) > 0 {
		url, err := s.storage.Upload(ctx, docs.AgencyLogo, "agents/logos")
		if err != nil {
			return nil, fmt.Errorf("%w: agency logo upload: %v", ErrUpload, err)
		}
		set["agency_logo"] = url
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields provided for update", ErrValidation)
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}
	return &updated, nil
}

// GetAllAgents returns all approved profiles, each merged with its
// identity from one batched Auth call. Output preserves profile order.
func (s *profileService) GetAllAgents(ctx context.Context) ([]models.EnrichedProfile, error) {
	cursor, err := s.db.Collection(profilesCollection).Find(ctx, bson.M{"status": models.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("failed to query approved agents: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.AgentProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode approved agents: %w", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	userMap := s.enrichment.EnrichBatch(ctx, ids)

	merged := make([]models.EnrichedProfile, 0, len(profiles))
	for _, p := range profiles {
		merged = append(merged, models.EnrichedProfile{
			AgentProfile: p,
			User:         userMap[p.UserID],
		})
	}
	return merged, nil
}

// GetAgentsBatch fetches a trimmed projection of profiles by their ids.
func (s *profileService) GetAgentsBatch(ctx context.Context, profileIDs []string) ([]AgentSummary, error) {
	if len(profileIDs) == 0 {
		return nil, fmt.Errorf("%w: no agent IDs provided", ErrValidation)
	}

	objectIDs := make([]primitive.ObjectID, 0, len(profileIDs))
	for _, id := range profileIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid agent id %q", ErrValidation, id)
		}
		objectIDs = append(objectIDs, oid)
	}

	opts := options.Find().SetProjection(bson.M{
		"_id":           1,
		"user_id":       1,
		"agency_name":   1,
		"agency_email":  1,
		"agency_phone":  1,
		"profile_image": 1,
		"cover_image":   1,
	})
	cursor, err := s.db.Collection(profilesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to batch-fetch agents: %w", err)
	}
	defer cursor.Close(ctx)

	var agents []AgentSummary
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("failed to decode agents batch: %w", err)
	}
	return agents, nil
}

// GetDashboardOverview combines the agent's profile, identity and
// property statistics.
func (s *profileService) GetDashboardOverview(ctx context.Context, userID string) (*DashboardOverview, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}
	profile, err := s.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"agent": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to count properties for agent %s: %w", userID, err)
	}

	return &DashboardOverview{
		Agent: models.EnrichedAgent{
			User:    s.enrichment.EnrichOne(ctx, userID),
			Profile: profile,
		},
		Stats: DashboardStats{
			TotalProperties: int(total),
			RecentSales:     profile.Sales.Recent,
			RecentRented:    profile.Rented.Recent,
			RecentBooked:    profile.Booked.Recent,
		},
	}, nil
}
