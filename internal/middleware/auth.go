package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pocketledger/internal/auth"
	"pocketledger/internal/config"
)

// ContextUserID is the Gin context key carrying the authenticated user id.
const ContextUserID = "userID"

// getSessionKey returns the session token key from configuration
func getSessionKey() []byte {
	return []byte(config.Get().SessionSecret)
}

// SessionClaims represents the claims in a session token. The token is the
// client-held form of the session-scoped authenticated flag: the UI keeps it
// in tab-scoped storage, so closing the app drops it and the next open
// requires re-authentication.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a session token for an authenticated user.
func GenerateSessionToken(userID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "pocketledger",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSessionKey())
}

// AuthMiddleware verifies the session token and checks it against the live
// auth session: a valid token for a user who has since logged out (or whose
// process restarted) is rejected, so every app open re-authenticates.
func AuthMiddleware(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return getSessionKey(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		profile, ok := session.CurrentUser()
		if !ok || profile.ID != claims.UserID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
