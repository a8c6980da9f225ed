package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = contextKey("actor")

// actorClaims are the JWT claims this service reads. The token is issued by
// the platform's auth service; subject is the account id.
type actorClaims struct {
	jwt.RegisteredClaims
	AdminOf []int64  `json:"adminOf,omitempty"`
	Scopes  []string `json:"scope,omitempty"`
	Root    bool     `json:"root,omitempty"`
}

// ActorMiddleware extracts the authenticated actor from a Bearer token, when
// one is present. The transaction listing is public, so requests without a
// token proceed anonymously; an invalid token is rejected outright.
func ActorMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &actorClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		}, jwt.WithIssuer(issuer))
		if err != nil || !token.Valid {
			logger.Warn("Invalid bearer token", slog.String("error", errString(err)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			logger.Warn("Token subject is not an account id", slog.String("subject", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}

		actor := &domain.Actor{
			AccountID: accountID,
			AdminOf:   claims.AdminOf,
			Scopes:    claims.Scopes,
			Root:      claims.Root,
		}
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorFromCtx returns the authenticated actor, or nil for anonymous
// requests.
func GetActorFromCtx(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorKey).(*domain.Actor)
	return actor
}

func errString(err error) string {
	if err == nil {
		return "token invalid"
	}
	return err.Error()
}
