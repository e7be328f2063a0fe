package auth

import (
	"errors"
	"time"

	"attendance-tracker-backend/internal/authz"
	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceIssuer identifies access tokens issued by this service
const ServiceIssuer = "attendance-tracker-backend"

// ProfileStore is the subset of profile persistence the auth service needs
type ProfileStore interface {
	GetByID(id uuid.UUID) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
}

// AccessClaims are the claims embedded in service-issued access tokens
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// providerClaims is the claim shape of tokens minted by the hosted auth
// provider: subject is the provider user id, role and tenant ride in custom
// claims.
type providerClaims struct {
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates one shape of bearer token and yields the stored
// identity's key. Verifiers are selected by the token's issuer claim, so the
// two credential paths stay behind one interface instead of branching in
// business logic.
type TokenVerifier interface {
	Handles(issuer string) bool
	Verify(tokenString string) (subject, email string, err error)
}

// Service provides authentication functionality
type Service struct {
	secret        []byte
	accessMinutes int
	verifiers     []TokenVerifier
	profiles      ProfileStore
}

// NewService creates a new authentication service. When cfg carries a
// provider block, provider-issued tokens are accepted alongside
// service-issued ones.
func NewService(cfg *AuthConfig, jwtSecret string, accessMinutes int, profiles ProfileStore) *Service {
	verifiers := []TokenVerifier{&serviceVerifier{secret: []byte(jwtSecret)}}
	if cfg != nil && cfg.Provider != nil {
		verifiers = append(verifiers, &providerVerifier{config: *cfg.Provider})
	}
	return &Service{
		secret:        []byte(jwtSecret),
		accessMinutes: accessMinutes,
		verifiers:     verifiers,
		profiles:      profiles,
	}
}

// IssueAccessToken mints a service access token for a stored profile.
// Returns the token and its lifetime in seconds.
func (s *Service) IssueAccessToken(profile *models.Profile) (string, int64, error) {
	now := time.Now()
	lifetime := time.Duration(s.accessMinutes) * time.Minute
	claims := AccessClaims{
		Email: profile.Email,
		Role:  string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ServiceIssuer,
			Subject:   profile.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(lifetime.Seconds()), nil
}

// ResolveIdentity verifies a bearer token and resolves it to the stored
// identity. The profile row is authoritative for role, organization and
// employee linkage regardless of which party minted the token.
func (s *Service) ResolveIdentity(tokenString string) (*authz.Identity, error) {
	issuer, err := peekIssuer(tokenString)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	for _, verifier := range s.verifiers {
		if !verifier.Handles(issuer) {
			continue
		}
		subject, email, err := verifier.Verify(tokenString)
		if err != nil {
			return nil, apperrors.ErrInvalidToken
		}
		return s.lookupIdentity(subject, email)
	}

	return nil, apperrors.ErrInvalidToken
}

func (s *Service) lookupIdentity(subject, email string) (*authz.Identity, error) {
	var profile *models.Profile
	var err error

	if id, parseErr := uuid.Parse(subject); parseErr == nil {
		profile, err = s.profiles.GetByID(id)
	} else if email != "" {
		profile, err = s.profiles.GetByEmail(email)
	} else {
		return nil, apperrors.ErrProfileNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	identity := &authz.Identity{
		UserID:         profile.ID,
		Email:          profile.Email,
		Role:           profile.Role,
		OrganizationID: profile.OrganizationID,
		EmployeeID:     profile.EmployeeID,
	}
	return identity, nil
}

// peekIssuer reads the unverified issuer claim to select a verifier; the
// selected verifier then fully validates the signature and expiry.
func peekIssuer(tokenString string) (string, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	issuer, err := token.Claims.GetIssuer()
	if err != nil {
		return "", err
	}
	return issuer, nil
}

type serviceVerifier struct {
	secret []byte
}

func (v *serviceVerifier) Handles(issuer string) bool {
	return issuer == ServiceIssuer
}

func (v *serviceVerifier) Verify(tokenString string) (string, string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithIssuer(ServiceIssuer))
	if err != nil || !token.Valid {
		return "", "", apperrors.ErrInvalidToken
	}
	return claims.Subject, claims.Email, nil
}

type providerVerifier struct {
	config ProviderConfig
}

func (v *providerVerifier) Handles(issuer string) bool {
	return issuer == v.config.Issuer
}

func (v *providerVerifier) Verify(tokenString string) (string, string, error) {
	claims := &providerClaims{}
	opts := []jwt.ParserOption{jwt.WithIssuer(v.config.Issuer)}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(v.config.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", "", apperrors.ErrInvalidToken
	}
	return claims.Subject, claims.Email, nil
}
