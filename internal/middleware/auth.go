package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/i18n"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

const (
	// UserKey holds the *helpers.EnhancedClaims of the caller.
	UserKey = "user"

	AccessTokenCookie = "access_token"
)

// RoleLookup resolves the application role stored on the caller's profile.
type RoleLookup interface {
	Role(ctx context.Context, userID uuid.UUID) (string, error)
}

// Auth rejects requests without a valid access token. The token is read from
// the access_token cookie first, then from an Authorization bearer header.
func Auth(verifier helpers.TokenVerifier, roles RoleLookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, verifier, roles, logger)
		if err != nil {
			logger.Debug("Rejected request", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		c.Set(UserKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(verifier helpers.TokenVerifier, roles RoleLookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) != "" {
			if claims, err := authenticate(c, verifier, roles, logger); err == nil {
				c.Set(UserKey, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.CodedErrorResponse("admin role required", "FORBIDDEN"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller or nil.
func CurrentUser(c *gin.Context) *helpers.EnhancedClaims {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.EnhancedClaims)
	return claims
}

func authenticate(c *gin.Context, verifier helpers.TokenVerifier, roles RoleLookup, logger *slog.Logger) (*helpers.EnhancedClaims, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	claims, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Join(models.ErrUnauthorized, err)
	}

	role := models.RoleAttendee
	if roles != nil {
		r, err := roles.Role(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Profile role lookup failed, using default role", "user_id", userID, "error", err)
		} else if r != "" {
			role = r
		}
	}

	enhanced := &helpers.EnhancedClaims{
		CustomClaims: claims,
		Role:         role,
		UserID:       userID.String(),
		Email:        claims.Email,
		Language:     i18n.DefaultLanguage,
	}
	if name, ok := claims.UserMetadata["full_name"].(string); ok {
		enhanced.FullName = name
	}
	return enhanced, nil
}

func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
