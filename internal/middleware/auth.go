package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-gateway/internal/models"
)

const merchantContextKey = "merchant"

// Authenticator resolves API credentials to a merchant.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey, apiSecret string) (*models.Merchant, error)
}

// Auth verifies the X-Api-Key/X-Api-Secret headers and stores the
// merchant in the request context. Every resource route sits behind it.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-Api-Key")
		apiSecret := c.GetHeader("X-Api-Secret")

		merchant, err := auth.Authenticate(c.Request.Context(), apiKey, apiSecret)
		if err != nil {
			var apiErr *models.APIError
			if e, ok := err.(*models.APIError); ok {
				apiErr = e
			} else {
				apiErr = models.NewAPIError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			}
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
			return
		}

		c.Set(merchantContextKey, merchant)
		c.Next()
	}
}

// MerchantFrom returns the authenticated merchant set by Auth.
func MerchantFrom(c *gin.Context) *models.Merchant {
	if v, ok := c.Get(merchantContextKey); ok {
		if merchant, ok := v.(*models.Merchant); ok {
			return merchant
		}
	}
	return nil
}
