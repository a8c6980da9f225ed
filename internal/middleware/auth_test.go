package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "commonsfund"
)

func signToken(t *testing.T, claims actorClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func actorRouter() (*gin.Engine, *[]*domain.Actor) {
	gin.SetMode(gin.TestMode)
	var seen []*domain.Actor
	router := gin.New()
	router.Use(ActorMiddleware(testSecret, testIssuer))
	router.GET("/probe", func(c *gin.Context) {
		seen = append(seen, GetActorFromCtx(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func probe(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestActorMiddlewareAnonymousWithoutHeader(t *testing.T) {
	router, seen := actorRouter()

	w := probe(router, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0], "no token means an anonymous actor")
}

func TestActorMiddlewareParsesClaims(t *testing.T) {
	router, seen := actorRouter()

	token := signToken(t, actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AdminOf: []int64{7, 9},
		Scopes:  []string{domain.ScopeIncognito},
		Root:    true,
	})

	w := probe(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)

	actor := (*seen)[0]
	require.NotNil(t, actor)
	assert.Equal(t, int64(42), actor.AccountID)
	assert.Equal(t, []int64{7, 9}, actor.AdminOf)
	assert.True(t, actor.HasScope(domain.ScopeIncognito))
	assert.True(t, actor.IsRoot())
}

func TestActorMiddlewareRejectsBadTokens(t *testing.T) {
	expired := signToken(t, actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongIssuer := signToken(t, actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	badSubject := signToken(t, actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-number",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "malformed header", header: "Bearer"},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer},
		{name: "non numeric subject", header: "Bearer " + badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, seen := actorRouter()
			w := probe(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, *seen, "the handler must not run")
		})
	}
}
