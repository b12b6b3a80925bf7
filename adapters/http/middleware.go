package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

const (
	GinContextKeySessionID = "sessionID"
)

// SessionMiddleware resolves the bearer token into the session it was
// issued for.
func SessionMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthorized("Invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected session token", zap.Error(err))
			c.Error(apperror.NewUnauthorized("Invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeySessionID, claims.SessionID)

		c.Next()
	}
}

func GetSessionIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	sessionID, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return uuid.Nil, false
	}
	sessionUUID, ok := sessionID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return sessionUUID, true
}

// ErrorMiddleware renders the last error attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		l := log.With(zap.String("path", c.FullPath()), zap.Int("status", status))
		if status >= http.StatusInternalServerError {
			l.Error("Request failed", err)
		} else {
			l.Warn("Request rejected", zap.Error(err))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": apperror.ErrInternal.Error(), "message": "An internal server error occurred"})
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
