package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/sathwikreddyb/aqua-farms-backend/pkg/auth"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type stubRoleLookup struct {
	user *models.User
	err  error
}

func (s *stubRoleLookup) FindByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestAuthMiddleware(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "aqua-farms", ExpirationMinutes: 30}

	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(jwtCfg, time.Now(), userID)
	require.NoError(t, err)

	users := &stubRoleLookup{user: &models.User{ID: userID, Role: enums.UserRoleAdmin}}

	run := func(authHeader string, lookup RoleLookup) (*httptest.ResponseRecorder, *http.Request) {
		var seen *http.Request
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/orders/my-orders", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		Auth(jwtCfg, lookup, logg)(next).ServeHTTP(rec, req)
		return rec, seen
	}

	t.Run("missing header", func(t *testing.T) {
		rec, _ := run("", users)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := run("Bearer not-a-jwt", users)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := config.JWTConfig{Secret: "different", Issuer: "aqua-farms", ExpirationMinutes: 30}
		forged, err := pkgauth.MintAccessToken(other, time.Now(), userID)
		require.NoError(t, err)

		rec, _ := run("Bearer "+forged, users)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted account", func(t *testing.T) {
		rec, _ := run("Bearer "+token, &stubRoleLookup{err: gorm.ErrRecordNotFound})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token seeds context", func(t *testing.T) {
		rec, seen := run("Bearer "+token, users)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, userID.String(), UserIDFromContext(seen.Context()))
		assert.Equal(t, "admin", RoleFromContext(seen.Context()))
	})
}

func TestRequireRole(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		ctx := WithUserID(context.Background(), uuid.NewString())
		if role != "" {
			ctx = WithRole(ctx, role)
		}
		rec := httptest.NewRecorder()
		RequireRole("admin", logg)(next).ServeHTTP(rec, req.WithContext(ctx))
		return rec
	}

	assert.Equal(t, http.StatusForbidden, run("user").Code)
	assert.Equal(t, http.StatusForbidden, run("").Code)
	assert.Equal(t, http.StatusOK, run("admin").Code)
}
