package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pineapple-tours/catalog-insights/pkg/response"
)

const (
	// UserEmailKey is the context key for the authenticated user's email
	UserEmailKey = "user_email"
	// UserRoleKey is the context key for the authenticated user's role
	UserRoleKey = "user_role"
)

// JWTConfig holds JWT middleware configuration
type JWTConfig struct {
	Secret    string
	SkipPaths []string
}

// Claims are the token claims issued by the platform auth service
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates Bearer tokens and stores claims on the context
func JWTMiddleware(cfg *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole allows the request only when the token role is one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(UserRoleKey)
		roleStr, _ := role.(string)
		for _, r := range roles {
			if roleStr == r {
				c.Next()
				return
			}
		}
		response.Error(c, 403, "FORBIDDEN", "Insufficient role", "")
		c.Abort()
	}
}

// GetUserEmail returns the authenticated user's email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
