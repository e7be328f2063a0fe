package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfileStore struct {
	profiles []*models.Profile
}

func (s *fakeProfileStore) GetByID(id uuid.UUID) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeProfileStore) GetByEmail(email string) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func managerProfile() *models.Profile {
	orgID := uuid.New()
	employeeID := uuid.New()
	profile := &models.Profile{
		Email:          "manager@example.com",
		Role:           models.RoleManager,
		OrganizationID: &orgID,
		EmployeeID:     &employeeID,
	}
	profile.ID = uuid.New()
	return profile
}

func TestAuthConfigValidation(t *testing.T) {
	t.Run("no provider configured", func(t *testing.T) {
		config := &AuthConfig{}
		assert.NoError(t, config.Validate())
	})

	t.Run("valid provider", func(t *testing.T) {
		config := &AuthConfig{
			Provider: &ProviderConfig{
				Issuer: "https://auth.example.com",
				Secret: "provider-signing-key",
			},
		}
		assert.NoError(t, config.Validate())
	})

	t.Run("missing issuer", func(t *testing.T) {
		config := &AuthConfig{
			Provider: &ProviderConfig{Secret: "provider-signing-key"},
		}
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "issuer is required")
	})

	t.Run("missing secret", func(t *testing.T) {
		config := &AuthConfig{
			Provider: &ProviderConfig{Issuer: "https://auth.example.com"},
		}
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "secret is required")
	})
}

func TestLoadAuthConfig(t *testing.T) {
	t.Run("missing file yields empty config", func(t *testing.T) {
		config, err := LoadAuthConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.NoError(t, err)
		assert.Nil(t, config.Provider)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auth.yaml")
		content := "provider:\n  issuer: https://auth.example.com\n  audience: attendance\n  secret: provider-signing-key\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		config, err := LoadAuthConfig(path)
		require.NoError(t, err)
		require.NotNil(t, config.Provider)
		assert.Equal(t, "https://auth.example.com", config.Provider.Issuer)
		assert.Equal(t, "attendance", config.Provider.Audience)
	})

	t.Run("invalid provider block", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auth.yaml")
		require.NoError(t, os.WriteFile(path, []byte("provider:\n  issuer: https://auth.example.com\n"), 0o600))

		_, err := LoadAuthConfig(path)
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse battery staple"))
}

func TestIssueAndResolveAccessToken(t *testing.T) {
	profile := managerProfile()
	store := &fakeProfileStore{profiles: []*models.Profile{profile}}
	service := NewService(&AuthConfig{}, "test-signing-key", 30, store)

	token, expiresIn, err := service.IssueAccessToken(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(30*60), expiresIn)

	identity, err := service.ResolveIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, identity.UserID)
	assert.Equal(t, profile.Email, identity.Email)
	assert.Equal(t, models.RoleManager, identity.Role)
	assert.Equal(t, profile.OrganizationID, identity.OrganizationID)
	assert.Equal(t, profile.EmployeeID, identity.EmployeeID)
}

func TestResolveIdentityRejections(t *testing.T) {
	profile := managerProfile()
	store := &fakeProfileStore{profiles: []*models.Profile{profile}}
	service := NewService(&AuthConfig{}, "test-signing-key", 30, store)

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ResolveIdentity("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewService(&AuthConfig{}, "another-signing-key", 30, store)
		token, _, err := other.IssueAccessToken(profile)
		require.NoError(t, err)

		_, err = service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := AccessClaims{
			Email: profile.Email,
			Role:  string(profile.Role),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    ServiceIssuer,
				Subject:   profile.ID.String(),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		_, err = service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("unknown issuer", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    "https://somebody-else.example.com",
			Subject:   profile.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		_, err = service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("valid token for a deleted profile", func(t *testing.T) {
		gone := managerProfile()
		token, _, err := service.IssueAccessToken(gone)
		require.NoError(t, err)

		_, err = service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}

func TestProviderIssuedTokens(t *testing.T) {
	profile := managerProfile()
	store := &fakeProfileStore{profiles: []*models.Profile{profile}}
	providerCfg := &AuthConfig{
		Provider: &ProviderConfig{
			Issuer:   "https://auth.example.com",
			Audience: "attendance",
			Secret:   "provider-signing-key",
		},
	}

	mintProviderToken := func(t *testing.T, subject, email string) string {
		t.Helper()
		claims := providerClaims{
			Email: email,
			Role:  "manager",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "https://auth.example.com",
				Subject:   subject,
				Audience:  jwt.ClaimStrings{"attendance"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-signing-key"))
		require.NoError(t, err)
		return token
	}

	t.Run("resolved via email when subject is the provider user id", func(t *testing.T) {
		service := NewService(providerCfg, "test-signing-key", 30, store)
		token := mintProviderToken(t, "provider|12345", profile.Email)

		identity, err := service.ResolveIdentity(token)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, identity.UserID)
		// The stored profile, not the token claims, decides the role.
		assert.Equal(t, models.RoleManager, identity.Role)
	})

	t.Run("rejected when no provider is configured", func(t *testing.T) {
		service := NewService(&AuthConfig{}, "test-signing-key", 30, store)
		token := mintProviderToken(t, "provider|12345", profile.Email)

		_, err := service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("rejected with the wrong provider secret", func(t *testing.T) {
		service := NewService(providerCfg, "test-signing-key", 30, store)
		claims := providerClaims{
			Email: profile.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "https://auth.example.com",
				Subject:   "provider|12345",
				Audience:  jwt.ClaimStrings{"attendance"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("somebody-elses-key"))
		require.NoError(t, err)

		_, err = service.ResolveIdentity(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	profile := managerProfile()
	store := &fakeProfileStore{profiles: []*models.Profile{profile}}
	service := NewService(&AuthConfig{}, "test-signing-key", 30, store)
	middleware := NewMiddleware(service)

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := service.IssueAccessToken(profile)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, profile.Email, response["email"])
	})
}
