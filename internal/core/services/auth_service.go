package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

type AuthConfig struct {
	Secret       string
	TokenTTL     time.Duration
	AdminEmail   string
	PasswordHash string
}

type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	cfg AuthConfig
	now func() time.Time
}

func NewAuthService(cfg AuthConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// Login checks the administrator credentials and issues a signed token.
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	if s.cfg.Secret == "" || s.cfg.AdminEmail == "" || s.cfg.PasswordHash == "" {
		return "", time.Time{}, fmt.Errorf("admin login not configured: %w", domain.ErrUnauthorized)
	}

	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := AdminClaims{
		Email: s.cfg.AdminEmail,
		Role:  adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.AdminEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *AuthService) Verify(token string) (*AdminClaims, error) {
	if s.cfg.Secret == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}

	if claims.Role != adminRole {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
