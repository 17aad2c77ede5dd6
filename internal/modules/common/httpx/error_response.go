package httpx

import (
	"log"
	"net/http"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
// Causes attached to a ServiceError are logged and never sent to the client.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, serviceErr)
		}
		c.JSON(status, gin.H{"error": serviceErr.Message})
		return
	}
	log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

// AbortWithServiceError is WriteServiceError for middleware.
func AbortWithServiceError(c *gin.Context, err error, fallbackMessage string) {
	WriteServiceError(c, err, fallbackMessage)
	c.Abort()
}

func serviceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation, service.ErrorCodeInvalidFormData, service.ErrorCodeInvalidDate:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeConflict:
		return http.StatusConflict
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
