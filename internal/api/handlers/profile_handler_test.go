package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/api/handlers"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
)

func setupProfileRouter(profileSvc services.IProfileService, referralSvc services.IReferralService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewProfileHandler(profileSvc, referralSvc)
	r := gin.New()
	group := r.Group("/agents/profile")
	group.GET("/me", h.GetMyProfile)
	group.GET("/all", h.GetAllAgents)
	group.POST("/batch", h.GetAgentsBatch)
	group.GET("/code", h.GetReferralCode)
	group.POST("/track", h.TrackReferral)
	group.GET("/referraldata", h.GetReferralData)
	group.GET("/:agentId", h.GetAgentByID)
	return r
}

func TestProfileHandler_GetMyProfile(t *testing.T) {
	mockProfileSvc := new(MockProfileService)
	mockReferralSvc := new(MockReferralService)
	router := setupProfileRouter(mockProfileSvc, mockReferralSvc)

	enriched := &models.EnrichedProfile{
		AgentProfile: models.AgentProfile{UserID: "agent-1", AgencyName: "Prime Homes"},
		User:         &models.RemoteUser{ID: "agent-1", Name: "Ada"},
	}
	mockProfileSvc.On("GetMyProfile", mock.Anything, "agent-1").Return(enriched, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/me", nil)
	req.Header.Set("X-User-Id", "agent-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prime Homes")
	assert.Contains(t, w.Body.String(), "Ada")
	mockProfileSvc.AssertExpectations(t)
}

func TestProfileHandler_GetMyProfile_NoUser(t *testing.T) {
	router := setupProfileRouter(new(MockProfileService), new(MockReferralService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_GetMyProfile_DegradedIdentity(t *testing.T) {
	mockProfileSvc := new(MockProfileService)
	router := setupProfileRouter(mockProfileSvc, new(MockReferralService))

	// Auth service down: profile still served, user is null.
	enriched := &models.EnrichedProfile{
		AgentProfile: models.AgentProfile{UserID: "agent-1", AgencyName: "Prime Homes"},
		User:         nil,
	}
	mockProfileSvc.On("GetMyProfile", mock.Anything, "agent-1").Return(enriched, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/me", nil)
	req.Header.Set("X-User-Id", "agent-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":null`)
}

func TestProfileHandler_GetAgentByID_NotFound(t *testing.T) {
	mockProfileSvc := new(MockProfileService)
	router := setupProfileRouter(mockProfileSvc, new(MockReferralService))

	mockProfileSvc.On("GetAgentByID", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("%w: agent profile not found", services.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_GetAgentsBatch(t *testing.T) {
	mockProfileSvc := new(MockProfileService)
	router := setupProfileRouter(mockProfileSvc, new(MockReferralService))

	summaries := []services.AgentSummary{{UserID: "agent-1", AgencyName: "Prime Homes"}}
	mockProfileSvc.On("GetAgentsBatch", mock.Anything, []string{"id1", "id2"}).Return(summaries, nil)

	body, _ := json.Marshal(map[string][]string{"ids": {"id1", "id2"}})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/agents/profile/batch", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prime Homes")
}

func TestProfileHandler_GetAgentsBatch_MissingIDs(t *testing.T) {
	router := setupProfileRouter(new(MockProfileService), new(MockReferralService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/agents/profile/batch", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_GetReferralCode(t *testing.T) {
	mockReferralSvc := new(MockReferralService)
	router := setupProfileRouter(new(MockProfileService), mockReferralSvc)

	mockReferralSvc.On("EnsureCode", mock.Anything, "agent-1").Return("F01234ABCD", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/code", nil)
	req.Header.Set("X-User-Id", "agent-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "F01234ABCD")
}

func TestProfileHandler_TrackReferral(t *testing.T) {
	mockReferralSvc := new(MockReferralService)
	router := setupProfileRouter(new(MockProfileService), mockReferralSvc)

	mockReferralSvc.On("TrackReferral", mock.Anything, "F01234ABCD", "new-user-1").
		Return(&services.TrackResult{Reward: 500, RewardAdded: true}, nil)

	body, _ := json.Marshal(map[string]string{"referralCode": "F01234ABCD", "newUserId": "new-user-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/agents/profile/track", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["rewardAdded"])
	assert.Equal(t, 500.0, resp["reward"])
}

func TestProfileHandler_TrackReferral_Duplicate(t *testing.T) {
	mockReferralSvc := new(MockReferralService)
	router := setupProfileRouter(new(MockProfileService), mockReferralSvc)

	mockReferralSvc.On("TrackReferral", mock.Anything, "F01234ABCD", "new-user-1").
		Return(&services.TrackResult{RewardAdded: false}, nil)

	body, _ := json.Marshal(map[string]string{"referralCode": "F01234ABCD", "newUserId": "new-user-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/agents/profile/track", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["rewardAdded"])
}

func TestProfileHandler_TrackReferral_InvalidCode(t *testing.T) {
	mockReferralSvc := new(MockReferralService)
	router := setupProfileRouter(new(MockProfileService), mockReferralSvc)

	mockReferralSvc.On("TrackReferral", mock.Anything, "NOPE", "new-user-1").
		Return(nil, fmt.Errorf("%w: invalid referral code", services.ErrNotFound))

	body, _ := json.Marshal(map[string]string{"referralCode": "NOPE", "newUserId": "new-user-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/agents/profile/track", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_InternalErrorIsGeneric(t *testing.T) {
	mockProfileSvc := new(MockProfileService)
	router := setupProfileRouter(mockProfileSvc, new(MockReferralService))

	mockProfileSvc.On("GetAllAgents", mock.Anything).
		Return(nil, errors.New("mongo: connection reset at 10.0.0.3:27017"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/agents/profile/all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internals must not leak to clients.
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
