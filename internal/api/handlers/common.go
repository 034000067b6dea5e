package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/api/middleware"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/services"
)

// currentUserID resolves the caller identity: JWT claims first, then
// the X-User-Id header set by trusted internal services.
func currentUserID(c *gin.Context) string {
	if id, exists := c.Get(middleware.ContextKeyUserID); exists {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return c.GetHeader("X-User-Id")
}

// readMultipartFile buffers one uploaded file into memory.
func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// respondError maps service errors onto HTTP responses. Unclassified
// errors are logged and surfaced as a generic 500 so internals never
// leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("ERROR: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
