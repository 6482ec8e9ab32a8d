package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextSubject = "subject"

	// OwnerSubject is the only identity the API issues tokens for.
	OwnerSubject = "owner"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearer(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token"})
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub != OwnerSubject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_payload"})
			return
		}

		c.Set(ContextSubject, sub)
		c.Next()
	}
}

// bearer reads the token from the Authorization header. EventSource clients
// cannot set headers, so the stream route also accepts ?access_token=.
func bearer(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return parts[1]
	}
	return c.Query("access_token")
}
