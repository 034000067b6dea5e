package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

// VerificationHandler handles the agent verification workflow.
type VerificationHandler struct {
	verificationService services.IVerificationService
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verificationService services.IVerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// parseVerificationForm reads the multipart submission fields and
// document uploads.
func parseVerificationForm(c *gin.Context) (services.VerificationInput, services.ProfileDocuments, error) {
	input := services.VerificationInput{
		AgencyName:  c.PostForm("agencyName"),
		AgencyEmail: c.PostForm("agencyEmail"),
		AgencyPhone: c.PostForm("agencyPhone"),
		Phone:       c.PostForm("phone"),
		State:       c.PostForm("state"),
		About:       c.PostForm("about"),
		OtherInfo:   c.PostForm("otherInfo"),
	}
	if languages, ok := c.GetPostFormArray("languages"); ok && len(languages) > 0 {
		input.Languages = utils.SplitList(languages)
	}

	docs := services.ProfileDocuments{}
	if header, err := c.FormFile("nationalId"); err == nil {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			return input, docs, fmt.Errorf("failed to read nationalId file: %w", readErr)
		}
		docs.NationalID = data
	}
	if header, err := c.FormFile("agencyLogo"); err == nil {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			return input, docs, fmt.Errorf("failed to read agencyLogo file: %w", readErr)
		}
		docs.AgencyLogo = data
	}

	return input, docs, nil
}

// Submit handles POST /agents/verification/submit.
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	input, docs, err := parseVerificationForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, err := h.verificationService.Submit(c.Request.Context(), userID, input, docs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification submitted", "agent": profile})
}

// Resubmit handles PUT /agents/verification/resubmit. Only allowed
// from a rejected submission.
func (h *VerificationHandler) Resubmit(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	input, docs, err := parseVerificationForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, err := h.verificationService.Resubmit(c.Request.Context(), userID, input, docs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification resubmitted", "agent": profile})
}

// GetMyVerification handles GET /agents/verification/me.
func (h *VerificationHandler) GetMyVerification(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	profile, err := h.verificationService.GetMyVerification(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": profile})
}

// GetReceipt handles GET /agents/verification/receipt.
func (h *VerificationHandler) GetReceipt(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	receipt, err := h.verificationService.GetReceipt(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}
