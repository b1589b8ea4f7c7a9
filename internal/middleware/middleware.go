package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rdityo/nearbox/internal/helpers"
	"github.com/rdityo/nearbox/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextUserKey is where AuthRequired stores the caller's claims.
const ContextUserKey = "user"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler is the centralized error path: store and query failures land
// here via c.Error and leave as a structured body with no internal detail.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.NewError(500, "Internal server error"))
			}
		}
	}
}

// AuthRequired validates the bearer token and stores its claims in the
// request context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(401, "Authorization header not found."))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)

		claims, err := helpers.ValidateToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(401, "Invalid or expired token."))
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RequireRole gates a route on the role hierarchy. The user is re-fetched by
// id so a stale role claim in an old token cannot grant access.
func RequireRole(userRepo models.UserRepo, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserInfo.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(401, "No user was found."))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewError(500, "Internal server error"))
			return
		}

		if !models.Authorized(user.Role, requiredRole) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(401, "You are not authorized to view this content."))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated caller's claims.
func CurrentUser(c *gin.Context) (*helpers.Claims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*helpers.Claims)
	return claims, ok
}

// CurrentUserID returns the authenticated caller's document id.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := CurrentUser(c)
	if !ok || claims.UserInfo.ID.IsZero() {
		return primitive.NilObjectID, false
	}
	return claims.UserInfo.ID, true
}
