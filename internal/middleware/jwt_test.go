package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shopcart-backend/internal/config"
	"shopcart-backend/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Issuer:     "shopcart-test",
		Key:        "test-signing-key",
		ExpireDays: 7,
	}
}

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()
	email := "alice@x.com"

	tok, err := GenerateToken(userID, email, cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(tok, cfg)
	require.NoError(t, err)

	require.Equal(t, userID, claims.UserID)
	require.Equal(t, email, claims.Subject)
	require.Equal(t, cfg.Issuer, claims.Issuer)
	require.Contains(t, claims.Audience, cfg.Issuer)
	require.NotEmpty(t, claims.ID, "every token must carry a jti")

	wantExpiry := time.Now().AddDate(0, 0, cfg.ExpireDays)
	require.WithinDuration(t, wantExpiry, claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateToken_FreshJTIPerToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()

	first, err := GenerateToken(userID, "a@x.com", cfg)
	require.NoError(t, err)
	second, err := GenerateToken(userID, "a@x.com", cfg)
	require.NoError(t, err)

	firstClaims, err := ValidateToken(first, cfg)
	require.NoError(t, err)
	secondClaims, err := ValidateToken(second, cfg)
	require.NoError(t, err)

	require.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	expired := &config.JWTConfig{Issuer: cfg.Issuer, Key: cfg.Key, ExpireDays: -1}

	tok, err := GenerateToken(uuid.New(), "a@x.com", expired)
	require.NoError(t, err)

	_, err = ValidateToken(tok, cfg)
	require.Error(t, err, "expired token must be rejected")
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	tok, err := GenerateToken(uuid.New(), "a@x.com", cfg)
	require.NoError(t, err)

	other := &config.JWTConfig{Issuer: cfg.Issuer, Key: "a-different-key", ExpireDays: cfg.ExpireDays}
	_, err = ValidateToken(tok, other)
	require.Error(t, err, "token signed with another key must be rejected")
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	foreign := &config.JWTConfig{Issuer: "someone-else", Key: cfg.Key, ExpireDays: cfg.ExpireDays}

	tok, err := GenerateToken(uuid.New(), "a@x.com", foreign)
	require.NoError(t, err)

	// Same key, wrong issuer (and therefore wrong audience).
	_, err = ValidateToken(tok, cfg)
	require.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.jwt", testJWTConfig())
	require.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()
	email := "alice@x.com"

	tok, err := GenerateToken(userID, email, cfg)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotEmail string
	inner := func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		gotEmail, _ = utils.GetEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	handler := AuthMiddleware(inner, cfg)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer " + tok, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	require.Equal(t, userID, gotUserID)
	require.Equal(t, email, gotEmail)
}
