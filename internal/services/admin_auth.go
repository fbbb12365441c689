package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminRole     = "admin"
	adminTokenTTL = 12 * time.Hour
)

// AdminAuth checks the single admin password and issues HS256 tokens.
type AdminAuth struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

// passwordHash is a bcrypt hash.
func NewAdminAuth(passwordHash, jwtSecret string) (*AdminAuth, error) {
	if passwordHash == "" {
		return nil, errors.New("admin auth: password hash is required")
	}
	if len(jwtSecret) < 16 {
		return nil, errors.New("admin auth: jwt secret must be at least 16 bytes")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin auth: invalid password hash: %w", err)
	}

	return &AdminAuth{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}, nil
}

// Login returns a signed token and its expiry.
func (a *AdminAuth) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := a.now()
	exp := now.Add(adminTokenTTL)
	claims := jwt.MapClaims{
		"role": adminRole,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("admin auth: sign token: %w", err)
	}
	return token, exp, nil
}

// Verify accepts only unexpired admin tokens signed with our secret.
func (a *AdminAuth) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("admin auth: parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("admin auth: invalid token")
	}
	if role, _ := claims["role"].(string); role != adminRole {
		return errors.New("admin auth: not an admin token")
	}
	return nil
}
