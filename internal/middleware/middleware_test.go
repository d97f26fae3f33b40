package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/config"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type roleMap map[uuid.UUID]string

func (r roleMap) Role(ctx context.Context, id uuid.UUID) (string, error) {
	if role, ok := r[id]; ok {
		return role, nil
	}
	return "", errors.New("no profile")
}

var (
	attendeeID = uuid.New()
	adminID    = uuid.New()
	logger     = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func verifier() helpers.StaticVerifier {
	return helpers.StaticVerifier{
		"attendee-token": {Email: "ada@example.com", RegisteredClaims: jwt.RegisteredClaims{Subject: attendeeID.String()}},
		"admin-token":    {Email: "ops@example.com", RegisteredClaims: jwt.RegisteredClaims{Subject: adminID.String()}},
		"bad-subject":    {RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"}},
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	all := append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.UserID, "role": user.Role})
	})
	r.GET("/test", all...)
	return r
}

func do(r http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	r := newRouter(Auth(verifier(), roleMap{}, logger))

	for name, mutate := range map[string]func(*http.Request){
		"missing":     nil,
		"unknown":     bearer("forged"),
		"bad subject": bearer("bad-subject"),
		"wrong type":  func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, mutate)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "unauthorized", body["error"])
		})
	}
}

func TestAuth_LoadsRoleFromProfile(t *testing.T) {
	r := newRouter(Auth(verifier(), roleMap{adminID: "admin"}, logger))

	w := do(r, bearer("admin-token"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"`+adminID.String()+`","role":"admin"}`, w.Body.String())

	// no profile row falls back to attendee
	w = do(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "attendee-token"})
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"`+attendeeID.String()+`","role":"attendee"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter(Auth(verifier(), roleMap{adminID: "admin"}, logger), RequireAdmin())

	assert.Equal(t, http.StatusForbidden, do(r, bearer("attendee-token")).Code)
	assert.Equal(t, http.StatusOK, do(r, bearer("admin-token")).Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newRouter(OptionalAuth(verifier(), nil, logger))

	w := do(r, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())

	w = do(r, bearer("forged"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())

	w = do(r, bearer("attendee-token"))
	assert.Contains(t, w.Body.String(), attendeeID.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter()
	w := do(r, func(req *http.Request) { req.Header.Set("X-Request-ID", "abc-123") })
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = do(r, nil)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestErrorHandler_WritesGeneric500(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("db exploded")) })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db exploded")
}

func TestRateLimit_PassesWithoutRedis(t *testing.T) {
	r := newRouter(RateLimit(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, logger))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	}
}

func TestRateKey(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	c.Request.RemoteAddr = "10.0.0.7:1234"

	assert.Equal(t, "rl:ip:10.0.0.7:user:anon:route:POST /api/chat", rateKey("rl", c))

	c.Set(UserKey, &helpers.EnhancedClaims{UserID: "u-1"})
	assert.Equal(t, "rl:ip:10.0.0.7:user:u-1:route:POST /api/chat", rateKey("rl", c))
}
