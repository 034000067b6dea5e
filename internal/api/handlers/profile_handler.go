package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

// ProfileHandler handles agent profile and referral requests.
type ProfileHandler struct {
	profileService  services.IProfileService
	referralService services.IReferralService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.IProfileService, referralService services.IReferralService) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		referralService: referralService,
	}
}

// GetMyProfile handles GET /agents/profile/me.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	profile, err := h.profileService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": profile})
}

// GetAgentByID handles GET /agents/profile/:agentId. Public.
func (h *ProfileHandler) GetAgentByID(c *gin.Context) {
	profile, err := h.profileService.GetAgentByID(c.Request.Context(), c.Param("agentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": profile})
}

// UpdateMyProfile handles PUT /agents/profile/me. Accepts multipart
// form fields plus optional nationalId and agencyLogo files.
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	update := services.ProfileUpdate{}
	form := map[string]**string{
		"agencyName":  &update.AgencyName,
		"agencyEmail": &update.AgencyEmail,
		"agencyPhone": &update.AgencyPhone,
		"phone":       &update.Phone,
		"state":       &update.State,
		"about":       &update.About,
		"otherInfo":   &update.OtherInfo,
	}
	for field, dest := range form {
		if value, ok := c.GetPostForm(field); ok {
			v := value
			*dest = &v
		}
	}
	if languages, ok := c.GetPostFormArray("languages"); ok && len(languages) > 0 {
		update.Languages = utils.SplitList(languages)
	}

	docs := services.ProfileDocuments{}
	if header, err := c.FormFile("nationalId"); err == nil {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Failed to read nationalId file: %v", readErr)})
			return
		}
		docs.NationalID = data
	}
	if header, err := c.FormFile("agencyLogo"); err == nil {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Failed to read agencyLogo file: %v", readErr)})
			return
		}
		docs.AgencyLogo = data
	}

	profile, err := h.profileService.UpdateMyProfile(c.Request.Context(), userID, update, docs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "agent": profile})
}

// GetAllAgents handles GET /agents/profile/all. Public directory view.
func (h *ProfileHandler) GetAllAgents(c *gin.Context) {
	agents, err := h.profileService.GetAllAgents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// batchRequest is the body of POST /agents/profile/batch.
type batchRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// GetAgentsBatch handles POST /agents/profile/batch, the internal
// profile lookup used by sibling services.
func (h *ProfileHandler) GetAgentsBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ids array is required"})
		return
	}

	agents, err := h.profileService.GetAgentsBatch(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// GetDashboardOverview handles GET /agents/profile/overview.
func (h *ProfileHandler) GetDashboardOverview(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	overview, err := h.profileService.GetDashboardOverview(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetReferralCode handles GET /agents/profile/code. Generates the code
// on first call and returns the same one afterwards.
func (h *ProfileHandler) GetReferralCode(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	code, err := h.referralService.EnsureCode(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referralCode": code})
}

// trackReferralRequest is the body of POST /agents/profile/track.
type trackReferralRequest struct {
	ReferralCode string `json:"referralCode" binding:"required"`
	NewUserID    string `json:"newUserId" binding:"required"`
}

// TrackReferral handles POST /agents/profile/track. Called by the Auth
// service after signup; granting the reward is idempotent per referred
// user.
func (h *ProfileHandler) TrackReferral(c *gin.Context) {
	var req trackReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "referralCode and newUserId are required"})
		return
	}

	result, err := h.referralService.TrackReferral(c.Request.Context(), req.ReferralCode, req.NewUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.RewardAdded {
		c.JSON(http.StatusOK, gin.H{"message": "Referral already recorded", "rewardAdded": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Referral recorded", "rewardAdded": true, "reward": result.Reward})
}

// GetReferralData handles GET /agents/profile/referraldata.
func (h *ProfileHandler) GetReferralData(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	data, err := h.referralService.GetReferralData(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
