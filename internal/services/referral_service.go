package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
)

// ReferralData is the referral report returned to an agent.
type ReferralData struct {
	Code           string                 `json:"code"`
	TotalEarnings  float64                `json:"totalEarnings"`
	TotalReferrals int                    `json:"totalReferrals"`
	ReferredUsers  []EnrichedReferredUser `json:"referredUsers"`
}

// EnrichedReferredUser is one referral entry with its identity attached.
type EnrichedReferredUser struct {
	models.ReferredUser
	User *models.RemoteUser `json:"user"`
}

// TrackResult reports whether a referral reward was granted.
type TrackResult struct {
	Reward      float64 `json:"reward,omitempty"`
	RewardAdded bool    `json:"rewardAdded"`
}

// IReferralService tracks referral codes and reward bookkeeping.
type IReferralService interface {
	EnsureCode(ctx context.Context, userID string) (string, error)
	TrackReferral(ctx context.Context, code, newUserID string) (*TrackResult, error)
	GetReferralData(ctx context.Context, userID string) (*ReferralData, error)
}

// referralService implements IReferralService.
type referralService struct {
	db         *mongo.Database
	cfg        *config.Config
	enrichment IEnrichmentService
}

// NewReferralService creates a new ReferralService.
func NewReferralService(db *mongo.Database, cfg *config.Config, enrichment IEnrichmentService) IReferralService {
	return &referralService{db: db, cfg: cfg, enrichment: enrichment}
}

const referralCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateReferralCode derives a code from the last 6 characters of the
// external user id plus 4 random base-36 characters, uppercased.
func GenerateReferralCode(userID string) string {
	suffix := userID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	random := make([]byte, 4)
	for i := range random {
		random[i] = referralCodeAlphabet[rand.Intn(len(referralCodeAlphabet))]
	}
	return suffix + strings.ToUpper(string(random))
}

// EnsureCode returns the profile's referral code, generating and
// persisting one only when unset. Idempotent: repeat calls return the
// existing code without a write.
func (s *referralService) EnsureCode(ctx context.Context, userID string) (string, error) {
	coll := s.db.Collection(profilesCollection)

	var profile models.AgentProfile
	if err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("%w: profile not found for user %s", ErrNotFound, userID)
		}
		return "", fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}

	if profile.Referral.Code != "" {
		return profile.Referral.Code, nil
	}

	code := GenerateReferralCode(userID)
	// Conditional write: only set the code while it is still unset, so
	// two concurrent calls cannot overwrite each other.
	filter := bson.M{
		"user_id": userID,
		"$or": bson.A{
			bson.M{"referral.code": bson.M{"$exists": false}},
			bson.M{"referral.code": ""},
		},
	}
	update := bson.M{"$set": bson.M{
		"referral.code": code,
		"updated_at":    time.Now().UTC(),
	}}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return "", fmt.Errorf("failed to persist referral code for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		// Lost the race: another request set the code first. Re-read it.
		if err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
			return "", fmt.Errorf("failed to re-read referral code for user %s: %w", userID, err)
		}
		return profile.Referral.Code, nil
	}
	return code, nil
}

// TrackReferral credits the owner of code for referring newUserID.
// The duplicate check and the reward write are a single conditional
// update, so a reward can never be granted twice for the same referred
// user even under concurrent calls.
func (s *referralService) TrackReferral(ctx context.Context, code, newUserID string) (*TrackResult, error) {
	if code == "" || newUserID == "" {
		return nil, fmt.Errorf("%w: referral code or user missing", ErrValidation)
	}

	coll := s.db.Collection(profilesCollection)
	reward := s.cfg.ReferralReward

	filter := bson.M{
		"referral.code":                   code,
		"referral.referred_users.user_id": bson.M{"$ne": newUserID},
	}
	update := bson.M{
		"$push": bson.M{"referral.referred_users": models.ReferredUser{
			UserID: newUserID,
			Reward: reward,
			Date:   time.Now().UTC(),
		}},
		"$inc": bson.M{"referral.total_earnings": reward},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to track referral for code %s: %w", code, err)
	}
	if result.MatchedCount == 0 {
		// Either the code does not exist, or the user was already referred.
		count, err := coll.CountDocuments(ctx, bson.M{"referral.code": code})
		if err != nil {
			return nil, fmt.Errorf("failed to look up referral code %s: %w", code, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: invalid referral code", ErrNotFound)
		}
		return &TrackResult{RewardAdded: false}, nil
	}

	return &TrackResult{Reward: reward, RewardAdded: true}, nil
}

// GetReferralData returns the full referral report for userID, with
// referred users enriched via the batched identity path.
func (s *referralService) GetReferralData(ctx context.Context, userID string) (*ReferralData, error) {
	coll := s.db.Collection(profilesCollection)

	var profile models.AgentProfile
	if err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: profile not found for user %s", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}

	ids := make([]string, 0, len(profile.Referral.ReferredUsers))
	for _, r := range profile.Referral.ReferredUsers {
		ids = append(ids, r.UserID)
	}
	userMap := s.enrichment.EnrichBatch(ctx, ids)

	referred := make([]EnrichedReferredUser, 0, len(profile.Referral.ReferredUsers))
	for _, r := range profile.Referral.ReferredUsers {
		referred = append(referred, EnrichedReferredUser{
			ReferredUser: r,
			User:         userMap[r.UserID],
		})
	}

	return &ReferralData{
		Code:           profile.Referral.Code,
		TotalEarnings:  profile.Referral.TotalEarnings,
		TotalReferrals: len(profile.Referral.ReferredUsers),
		ReferredUsers:  referred,
	}, nil
}
