package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "focusorbit/backend/internal/errors"
)

const UserIDContextKey = "userID"

// TokenParser resolves a bearer token to the identity it was issued for.
type TokenParser interface {
	ParseToken(token string) (string, *apperrors.APIError)
}

// Auth rejects any request that does not carry a valid bearer token.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, apiErr := resolveIdentity(c, parser)
		if apiErr != nil {
			writeError(c, apiErr)
			return
		}
		if userID == "" {
			writeError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through with no identity but still
// rejects a malformed or invalid token.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, apiErr := resolveIdentity(c, parser)
		if apiErr != nil {
			writeError(c, apiErr)
			return
		}
		if userID != "" {
			c.Set(UserIDContextKey, userID)
		}
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, parser TokenParser) (string, *apperrors.APIError) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", apperrors.Unauthorized("invalid authorization format")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", apperrors.Unauthorized("invalid authorization format")
	}

	return parser.ParseToken(token)
}

// UserID returns the identity resolved for the request, or "" for an
// anonymous caller.
func UserID(c *gin.Context) string {
	value, ok := c.Get(UserIDContextKey)
	if !ok {
		return ""
	}
	userID, ok := value.(string)
	if !ok {
		return ""
	}
	return userID
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	body := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Details != nil {
		body["details"] = apiErr.Details
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": body})
}
