package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aria-creative/vitrine/internal/model"
)

var (
	// ErrInvalidCredentials is returned for any login failure. Email and
	// password mismatches are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed tokens, bad signatures, and expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the session token contents: the admin's identity plus the
// registered time-box claims. Tokens are stateless; validity is fully
// determined by signature and expiry.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// User returns the admin view embedded in the claims.
func (c *Claims) User() model.AdminUser {
	return model.AdminUser{Email: c.Email, Name: c.Name, Role: c.Role}
}

// AuthService verifies the configured admin credential and issues signed
// session tokens.
type AuthService struct {
	identity  *model.AdminIdentity
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger

	// dummyHash is compared against when the email doesn't match, so a
	// wrong email costs the same as a wrong password.
	dummyHash []byte
}

// NewAuthService creates an AuthService for the single configured admin.
func NewAuthService(identity *model.AdminIdentity, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("vitrine-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an out-of-range cost; DefaultCost is valid.
		panic(err)
	}
	return &AuthService{
		identity:  identity,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Login checks the email/password pair against the configured admin and, on
// success, returns a fresh session token and the admin's public identity.
// Both mismatch cases return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.AdminUser, error) {
	hash := []byte(s.identity.PasswordHash)
	emailOK := email == s.identity.Email
	if !emailOK {
		hash = s.dummyHash
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !emailOK {
		return "", model.AdminUser{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(s.identity.Email, s.identity.Role, s.identity.Name)
	if err != nil {
		return "", model.AdminUser{}, err
	}

	s.logger.Info("admin login", "email", email)
	return token, s.identity.User(), nil
}

// Logout is stateless on the server side; it exists for the audit line.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) {
	s.logger.Info("admin logout", "email", claims.Email)
}

// VerifyToken parses and validates a bearer token, returning its claims.
func (s *AuthService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != model.RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh re-signs the claims with a fresh expiry. The caller must hold a
// currently-valid token; there is no refresh-token rotation.
func (s *AuthService) Refresh(claims *Claims) (string, error) {
	return s.issueToken(claims.Email, claims.Role, claims.Name)
}

// TokenTTL returns the configured session lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *AuthService) issueToken(email, role, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "vitrine",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
