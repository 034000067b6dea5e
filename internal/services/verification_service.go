package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/authclient"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/storage"
)

// VerificationInput carries the profile fields of a submission.
// Empty strings fall back to the existing values on resubmit.
type VerificationInput struct {
	AgencyName  string
	AgencyEmail string
	AgencyPhone string
	Phone       string
	State       string
	Languages   []string
	About       string
	OtherInfo   string
}

// VerificationReceipt is the summary view of a submission.
type VerificationReceipt struct {
	Agent       string               `json:"agent"`
	Status      models.ProfileStatus `json:"status"`
	SubmittedAt time.Time            `json:"submittedAt"`
	ReviewedAt  *time.Time           `json:"reviewedAt,omitempty"`
	Message     string               `json:"message"`
	Logo        string               `json:"logo"`
}

// IVerificationService manages the agent identity review workflow:
// (none) -> pending -> {approved, rejected}; rejected -> pending via
// resubmit only. "approved" is terminal here; admin review lives in an
// external workflow.
type IVerificationService interface {
	Submit(ctx context.Context, userID string, input VerificationInput, docs ProfileDocuments) (*models.AgentProfile, error)
	Resubmit(ctx context.Context, userID string, input VerificationInput, docs ProfileDocuments) (*models.AgentProfile, error)
	GetMyVerification(ctx context.Context, userID string) (*models.AgentProfile, error)
	GetReceipt(ctx context.Context, userID string) (*VerificationReceipt, error)
}

// verificationService implements IVerificationService.
type verificationService struct {
	db         *mongo.Database
	cfg        *config.Config
	storage    storage.Uploader
	authClient authclient.IClient
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(db *mongo.Database, cfg *config.Config, uploader storage.Uploader, authClient authclient.IClient) IVerificationService {
	return &verificationService{db: db, cfg: cfg, storage: uploader, authClient: authClient}
}

// uploadDocs pushes the provided documents to storage. Failure aborts
// the submission; existing URLs are returned untouched for absent docs.
func (s *verificationService) uploadDocs(ctx context.Context, docs ProfileDocuments, existingNationalID, existingLogo string) (nationalID, logo string, err error) {
	nationalID = existingNationalID
	logo = existingLogo

	if len(docs.NationalID) > 0 {
		nationalID, err = s.storage.Upload(ctx, docs.NationalID, "agents/nationalIds")
		if err != nil {
			return "", "", fmt.Errorf("%w: national id upload: %v", ErrUpload, err)
		}
	}
	if len(docs.AgencyLogo) > 0 {
		logo, err = s.storage.Upload(ctx, docs.AgencyLogo, "agents/logos")
		if err != nil {
			return "", "", fmt.Errorf("%w: agency logo upload: %v", ErrUpload, err)
		}
	}
	return nationalID, logo, nil
}

// notifyAuthService reports the new review status upstream. Best-effort.
func (s *verificationService) notifyAuthService(ctx context.Context, userID string, status models.ProfileStatus) {
	if err := s.authClient.UpdateAgentStatus(ctx, userID, string(status)); err != nil {
		log.Printf("WARN: failed to update auth-service verification for user %s: %v", userID, err)
	}
}

// Submit creates or replaces a verification submission. One active
// submission per user: an existing non-rejected profile is a conflict.
func (s *verificationService) Submit(ctx context.Context, userID string, input VerificationInput, docs ProfileDocuments) (*models.AgentProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}

	coll := s.db.Collection(profilesCollection)

	var existing models.AgentProfile
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing verification for user %s: %w", userID, err)
	}
	if hasExisting && existing.Status != models.StatusRejected {
		return nil, fmt.Errorf("%w: verification already submitted, wait for admin review", ErrConflict)
	}

	nationalID, logo, err := s.uploadDocs(ctx, docs, existing.NationalID, existing.AgencyLogo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"user_id":        userID,
		"agency_name":    input.AgencyName,
		"agency_email":   input.AgencyEmail,
		"agency_phone":   input.AgencyPhone,
		"phone":          input.Phone,
		"state":          input.State,
		"languages":      input.Languages,
		"about":          input.About,
		"other_info":     input.OtherInfo,
		"national_id":    nationalID,
		"agency_logo":    logo,
		"status":         models.StatusPending,
		"submitted_at":   now,
		"review_message": "",
		"updated_at":     now,
	}
	setOnInsert := bson.M{
		"created_at": now,
		"referral": models.Referral{
			ReferredUsers: []models.ReferredUser{},
		},
		"notifications": models.NotificationState{
			Enabled:     true,
			LastChecked: now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(true)

	var profile models.AgentProfile
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save verification for user %s: %w", userID, err)
	}

	s.notifyAuthService(ctx, userID, models.StatusPending)
	return &profile, nil
}

// Resubmit is only permitted from the rejected state. Provided fields
// replace existing ones; absent fields are retained.
func (s *verificationService) Resubmit(ctx context.Context, userID string, input VerificationInput, docs ProfileDocuments) (*models.AgentProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}

	coll := s.db.Collection(profilesCollection)

	var existing models.AgentProfile
	if err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no verification found to resubmit", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load verification for user %s: %w", userID, err)
	}
	if existing.Status != models.StatusRejected {
		return nil, fmt.Errorf("%w: resubmission is only permitted after rejection", ErrInvalidState)
	}

	nationalID, logo, err := s.uploadDocs(ctx, docs, existing.NationalID, existing.AgencyLogo)
	if err != nil {
		return nil, err
	}

	fallback := func(updated, prior string) string {
		if updated != "" {
			return updated
		}
		return prior
	}
	languages := existing.Languages
	if len(input.Languages) > 0 {
		languages = input.Languages
	}

	now := time.Now().UTC()
	set := bson.M{
		"agency_name":    fallback(input.AgencyName, existing.AgencyName),
		"agency_email":   fallback(input.AgencyEmail, existing.AgencyEmail),
		"agency_phone":   fallback(input.AgencyPhone, existing.AgencyPhone),
		"phone":          fallback(input.Phone, existing.Phone),
		"state":          fallback(input.State, existing.State),
		"languages":      languages,
		"about":          fallback(input.About, existing.About),
		"other_info":     fallback(input.OtherInfo, existing.OtherInfo),
		"national_id":    nationalID,
		"agency_logo":    logo,
		"status":         models.StatusPending,
		"submitted_at":   now,
		"review_message": "",
		"updated_at":     now,
	}

	// Guard on status in the filter so a concurrent admin decision
	// between the read and the write cannot be clobbered.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.AgentProfile
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "status": models.StatusRejected},
		bson.M{"$set": set},
		opts,
	).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: resubmission is only permitted after rejection", ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to resubmit verification for user %s: %w", userID, err)
	}

	s.notifyAuthService(ctx, userID, models.StatusPending)
	return &profile, nil
}

// GetMyVerification returns the caller's current submission.
func (s *verificationService) GetMyVerification(ctx context.Context, userID string) (*models.AgentProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id missing", ErrValidation)
	}
	var profile models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: verification not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load verification for user %s: %w", userID, err)
	}
	return &profile, nil
}

// GetReceipt returns the summary view of the caller's submission.
func (s *verificationService) GetReceipt(ctx context.Context, userID string) (*VerificationReceipt, error) {
	profile, err := s.GetMyVerification(ctx, userID)
	if err != nil {
		return nil, err
	}

	agent := profile.AgencyName
	if agent == "" {
		agent = "N/A"
	}
	return &VerificationReceipt{
		Agent:       agent,
		Status:      profile.Status,
		SubmittedAt: profile.SubmittedAt,
		ReviewedAt:  profile.ReviewedAt,
		Message:     profile.ReviewMessage,
		Logo:        profile.AgencyLogo,
	}, nil
}
