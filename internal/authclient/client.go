package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
)

// IClient defines the interface for the remote Auth service identity API.
type IClient interface {
	GetUser(ctx context.Context, userID string) (*models.RemoteUser, error)
	GetUsersBatch(ctx context.Context, userIDs []string) ([]models.RemoteUser, error)
	UpdateAgentStatus(ctx context.Context, userID, status string) error
}

// client implements IClient over HTTP with a bounded timeout, so a slow
// Auth service cannot hold a request open indefinitely.
type client struct {
	cfg        *config.Config
	httpClient *http.Client
	rdb        *redis.Client // optional; nil disables lookup caching
}

// New creates a new Auth service client. rdb may be nil to disable the
// short-TTL single-user lookup cache.
func New(cfg *config.Config, rdb *redis.Client) IClient {
	return &client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.AuthTimeout,
		},
		rdb: rdb,
	}
}

func userCacheKey(userID string) string {
	return "authuser:" + userID
}

// GetUser fetches a single user record by its external id.
// Returns an error on any transport failure or non-2xx response;
// callers are expected to degrade, not fail.
func (c *client) GetUser(ctx context.Context, userID string) (*models.RemoteUser, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}

	// Cache lookups are best-effort; a broken Redis never fails the call.
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, userCacheKey(userID)).Result(); err == nil {
			var user models.RemoteUser
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	url := fmt.Sprintf("%s/internal/users/%s", c.cfg.AuthInternalURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request for user %s: %w", userID, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service request failed for user %s: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("auth service returned status %d for user %s", resp.StatusCode, userID)
	}

	var user models.RemoteUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth user %s: %w", userID, err)
	}

	if c.rdb != nil {
		if data, err := json.Marshal(&user); err == nil {
			if err := c.rdb.Set(ctx, userCacheKey(userID), data, c.cfg.AuthUserCacheTTL).Err(); err != nil {
				log.Printf("WARN: failed to cache auth user %s: %v", userID, err)
			}
		}
	}

	return &user, nil
}

// batchResponse matches the Auth service batch endpoint payload.
type batchResponse struct {
	Users []models.RemoteUser `json:"users"`
}

// GetUsersBatch fetches multiple user records in a single call.
func (c *client) GetUsersBatch(ctx context.Context, userIDs []string) ([]models.RemoteUser, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(map[string][]string{"ids": userIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	url := fmt.Sprintf("%s/internal/users/batch", c.cfg.AuthInternalURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build auth batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service batch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("auth service batch returned status %d", resp.StatusCode)
	}

	var body batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode auth batch response: %w", err)
	}

	return body.Users, nil
}

// UpdateAgentStatus notifies the Auth service of a verification status
// change. Best-effort: callers treat failure as non-fatal.
func (c *client) UpdateAgentStatus(ctx context.Context, userID, status string) error {
	payload, err := json.Marshal(map[string]string{"userId": userID, "status": status})
	if err != nil {
		return fmt.Errorf("failed to marshal agent status payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/auth/agent-status", c.cfg.AuthServiceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build agent status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("agent status update failed for user %s: %w", userID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("agent status update returned status %d for user %s", resp.StatusCode, userID)
	}
	return nil
}
