package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

const GinContextKeySubjectID = "subjectID"

// TokenVerifier is the gateway's view of the identity service: a raw
// bearer token in, a verified subject identifier out.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

// AuthMiddleware verifies the bearer token before any handler runs. On
// failure the request stops here; no store or completion call is ever
// attempted for an unauthenticated caller. Handlers key every
// downstream operation on the verified subject id, never on anything
// client-supplied.
func AuthMiddleware(verifier TokenVerifier, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		subjectID, err := verifier.Verify(tokenString)
		if err != nil {
			log.Debug("Token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(GinContextKeySubjectID, subjectID)
		c.Next()
	}
}

func GetSubjectIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeySubjectID)
	if !ok {
		return uuid.Nil, false
	}
	subjectID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return subjectID, true
}

// ErrorMiddleware converts errors attached by handlers into JSON
// responses. AppErrors map through the taxonomy; anything else is a
// plain 500 with the raw message surfaced.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.Request.URL.Path))
		} else {
			log.Debug("Request rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}
