package services

import (
	"context"
	"log"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/authclient"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
)

// IEnrichmentService attaches remote identity data to local records.
// A failing Auth service must never break the primary response, so
// neither method returns an error: failures degrade to nil/empty.
type IEnrichmentService interface {
	EnrichOne(ctx context.Context, externalID string) *models.RemoteUser
	EnrichBatch(ctx context.Context, externalIDs []string) map[string]*models.RemoteUser
}

// enrichmentService implements IEnrichmentService.
type enrichmentService struct {
	authClient authclient.IClient
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(authClient authclient.IClient) IEnrichmentService {
	return &enrichmentService{authClient: authClient}
}

// EnrichOne fetches one remote user record. On any failure (network
// error, timeout, non-2xx) it logs a diagnostic and returns nil; the
// caller includes the local data with a null user field.
func (s *enrichmentService) EnrichOne(ctx context.Context, externalID string) *models.RemoteUser {
	if externalID == "" {
		return nil
	}
	user, err := s.authClient.GetUser(ctx, externalID)
	if err != nil {
		log.Printf("WARN: failed to fetch auth user %s: %v", externalID, err)
		return nil
	}
	return user
}

// EnrichBatch makes a single batched call over the deduplicated set of
// externalIDs and returns a lookup map keyed by external id. If the
// batch call fails entirely, the map is empty and every local record
// merges an absent user; there is no partial-batch retry. Ids the Auth
// service no longer knows simply have no entry.
func (s *enrichmentService) EnrichBatch(ctx context.Context, externalIDs []string) map[string]*models.RemoteUser {
	result := make(map[string]*models.RemoteUser)
	if len(externalIDs) == 0 {
		return result
	}

	// Deduplicate so repeated owners cost one network fetch.
	seen := make(map[string]struct{}, len(externalIDs))
	unique := make([]string, 0, len(externalIDs))
	for _, id := range externalIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return result
	}

	users, err := s.authClient.GetUsersBatch(ctx, unique)
	if err != nil {
		log.Printf("WARN: failed to fetch auth users batch (%d ids): %v", len(unique), err)
		return result
	}

	for i := range users {
		u := users[i]
		result[u.ID] = &u
	}
	return result
}
