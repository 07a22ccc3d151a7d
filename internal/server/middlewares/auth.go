package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// ClaimsKey is the gin context key holding the jwt.MapClaims of the caller.
	ClaimsKey = "claims"
	// UserKey is the gin context key holding the token subject.
	UserKey = "user"
)

var (
	errMissingToken = errors.New("authorization header missing")
	errBadHeader    = errors.New("invalid authorization header format")
)

// Authenticator verifies an HMAC signed bearer token. issuer is checked when not empty.
func Authenticator(secret []byte, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(c *gin.Context) {
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c, err)
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			unauthorized(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set(UserKey, sub)
		}
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errBadHeader
	}
	return token, nil
}

func unauthorized(c *gin.Context, err error) {
	zap.S().Named("auth").Debugw("request rejected", "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
