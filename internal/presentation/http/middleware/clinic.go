package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// RequireClinic ensures a valid clinic context exists on the request
func RequireClinic() gin.HandlerFunc {
	return func(c *gin.Context) {
		clinicID, exists := c.Get("clinic_id")
		if !exists {
			response.BadRequest(c, "Clinic context required")
			c.Abort()
			return
		}

		id, ok := clinicID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid clinic context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClinicID retrieves the clinic ID from gin context
func GetClinicID(c *gin.Context) uuid.UUID {
	clinicID, exists := c.Get("clinic_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := clinicID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
