package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

// PropertyHandler handles property listing requests.
type PropertyHandler struct {
	propertyService services.IPropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.IPropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// parsePropertyForm reads multipart form fields into a PropertyInput.
func parsePropertyForm(c *gin.Context) (services.PropertyInput, error) {
	input := services.PropertyInput{
		Title:           c.PostForm("title"),
		Location:        c.PostForm("location"),
		Description:     c.PostForm("description"),
		TransactionType: c.PostForm("transactionType"),
		Type:            c.PostForm("type"),
		Duration:        c.PostForm("duration"),
		Area:            c.PostForm("area"),
	}

	if raw, ok := c.GetPostForm("price"); ok && raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, fmt.Errorf("invalid price %q", raw)
		}
		input.Price = &price
	}
	if raw, ok := c.GetPostForm("bedrooms"); ok && raw != "" {
		bedrooms, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("invalid bedrooms %q", raw)
		}
		input.Bedrooms = &bedrooms
	}
	if raw, ok := c.GetPostForm("toilets"); ok && raw != "" {
		toilets, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("invalid toilets %q", raw)
		}
		input.Toilets = &toilets
	}
	if features, ok := c.GetPostFormArray("features"); ok && len(features) > 0 {
		input.Features = utils.SplitList(features)
	}
	if links, ok := c.GetPostFormArray("youtubeVideos"); ok && len(links) > 0 {
		input.YoutubeVideos = utils.SplitList(links)
	}

	return input, nil
}

// parsePropertyMedia buffers the uploaded image and video files.
func parsePropertyMedia(c *gin.Context) (services.PropertyMedia, error) {
	media := services.PropertyMedia{}

	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all is fine for updates.
		return media, nil
	}

	for _, header := range form.File["images"] {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			return media, fmt.Errorf("failed to read image %s: %w", header.Filename, readErr)
		}
		media.Images = append(media.Images, services.MediaFile{Name: header.Filename, Data: data})
	}
	for _, header := range form.File["videos"] {
		data, readErr := readMultipartFile(header)
		if readErr != nil {
			return media, fmt.Errorf("failed to read video %s: %w", header.Filename, readErr)
		}
		media.Videos = append(media.Videos, services.MediaFile{Name: header.Filename, Data: data})
	}

	return media, nil
}

func propertyIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// AddProperty handles POST /agents/properties.
func (h *PropertyHandler) AddProperty(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	input, err := parsePropertyForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	media, err := parsePropertyMedia(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	property, err := h.propertyService.AddProperty(c.Request.Context(), userID, input, media)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Property added", "property": property})
}

// UpdateProperty handles PUT /agents/properties/:id.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}
	propertyID, ok := propertyIDParam(c, "id")
	if !ok {
		return
	}

	input, err := parsePropertyForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	media, err := parsePropertyMedia(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, userID, input, media)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property updated", "property": property})
}

// DeleteProperty handles DELETE /agents/properties/:id.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}
	propertyID, ok := propertyIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// mediaDeleteRequest is the body of the media detach endpoints.
type mediaDeleteRequest struct {
	PropertyID string   `json:"propertyId" binding:"required"`
	URLs       []string `json:"urls" binding:"required"`
}

func (h *PropertyHandler) handleMediaDelete(c *gin.Context, remove func(primitive.ObjectID, []string) ([]string, error), field string) {
	var req mediaDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "propertyId and urls are required"})
		return
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property ID format"})
		return
	}

	remaining, err := remove(propertyID, req.URLs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media removed", field: remaining})
}

// DeleteImages handles POST /agents/properties/images/delete.
func (h *PropertyHandler) DeleteImages(c *gin.Context) {
	h.handleMediaDelete(c, func(id primitive.ObjectID, urls []string) ([]string, error) {
		return h.propertyService.DeleteImages(c.Request.Context(), id, urls)
	}, "images")
}

// DeleteVideos handles POST /agents/properties/videos/delete.
func (h *PropertyHandler) DeleteVideos(c *gin.Context) {
	h.handleMediaDelete(c, func(id primitive.ObjectID, urls []string) ([]string, error) {
		return h.propertyService.DeleteVideos(c.Request.Context(), id, urls)
	}, "videos")
}

// DeleteYouTubeLinks handles POST /agents/properties/youtube/delete.
func (h *PropertyHandler) DeleteYouTubeLinks(c *gin.Context) {
	h.handleMediaDelete(c, func(id primitive.ObjectID, urls []string) ([]string, error) {
		return h.propertyService.DeleteYouTubeLinks(c.Request.Context(), id, urls)
	}, "youtubeVideos")
}

// GetSingleProperty handles GET /agents/properties/single/:propertyId.
// Public; every hit counts a view.
func (h *PropertyHandler) GetSingleProperty(c *gin.Context) {
	propertyID, ok := propertyIDParam(c, "propertyId")
	if !ok {
		return
	}

	property, agent, err := h.propertyService.GetSingleProperty(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property, "agent": agent})
}

// GetAllProperties handles GET /agents/properties/all. Public feed.
func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	properties, err := h.propertyService.GetAllPropertiesWithAgents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// GetMyProperties handles GET /agents/properties/mine.
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	result, err := h.propertyService.GetMyProperties(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPublicAgentWithProperties handles GET /agents/properties/public/:agentId,
// where agentId is the profile document id.
func (h *PropertyHandler) GetPublicAgentWithProperties(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("agentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid agent ID format"})
		return
	}

	result, err := h.propertyService.GetPublicAgentWithProperties(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FilterProperties handles GET /agents/properties/filter. Public
// search over transaction type, states, property types, price range
// and free text.
func (h *PropertyHandler) FilterProperties(c *gin.Context) {
	opts := services.FilterOptions{
		TransactionType: c.Query("transactionType"),
		States:          c.QueryArray("states"),
		Types:           c.QueryArray("types"),
		PriceRange:      c.Query("priceRange"),
		Search:          c.Query("search"),
	}

	properties, err := h.propertyService.Filter(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}
