package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fanalytics/sportsbot/pkg/utils"
)

// SupabaseAuthMiddleware validates Supabase access tokens signed with the
// project's legacy HS256 JWT secret.
type SupabaseAuthMiddleware struct {
	jwtSecret []byte
}

// SupabaseClaims represents Supabase JWT claims
type SupabaseClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewSupabaseAuthMiddleware creates a new Supabase authentication middleware
func NewSupabaseAuthMiddleware(jwtSecret string) *SupabaseAuthMiddleware {
	return &SupabaseAuthMiddleware{jwtSecret: []byte(jwtSecret)}
}

// AuthRequired rejects requests without a valid bearer token.
func (m *SupabaseAuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			utils.SendUnauthorized(c, err.Error())
			c.Abort()
			return
		}
		setUserContext(c, claims)
		c.Next()
	}
}

// AuthOptional attaches user context when a valid token is present and
// continues anonymously otherwise.
func (m *SupabaseAuthMiddleware) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			c.Set("authenticated", false)
			c.Next()
			return
		}
		setUserContext(c, claims)
		c.Next()
	}
}

func (m *SupabaseAuthMiddleware) claimsFromRequest(c *gin.Context) (*SupabaseClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header required")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, fmt.Errorf("bearer token required")
	}
	return m.validateToken(tokenString)
}

func setUserContext(c *gin.Context, claims *SupabaseClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("user_claims", claims)
	c.Set("authenticated", true)
	if claims.Email != "" {
		c.Set("user_email", claims.Email)
	}
}

func (m *SupabaseAuthMiddleware) validateToken(tokenString string) (*SupabaseClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SupabaseClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(*SupabaseClaims)
	if !ok {
		return nil, fmt.Errorf("failed to extract claims")
	}
	if claims.Role != "authenticated" {
		return nil, fmt.Errorf("invalid user role: %s", claims.Role)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, fmt.Errorf("token is expired")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("invalid user ID format")
	}
	return claims, nil
}

// GetUserIDFromContext extracts the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}
	uid, ok := userID.(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("invalid user ID in context")
	}
	return uid, nil
}

// IsAuthenticated checks if the request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	authenticated, exists := c.Get("authenticated")
	if !exists {
		return false
	}
	auth, ok := authenticated.(bool)
	return ok && auth
}
