// Package auth issues and verifies bearer tokens for player accounts.
// Passwords are stored as bcrypt hashes; sessions are stateless HS256 JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

const minPasswordLength = 8

// Credentials is the result of a successful register or login.
type Credentials struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Service defines the interface for account operations.
type Service interface {
	Register(ctx context.Context, username, password string) (*Credentials, error)
	Login(ctx context.Context, username, password string) (*Credentials, error)
	// VerifyToken returns the user id a valid token was issued for.
	VerifyToken(token string) (int64, error)
}

type service struct {
	users  repository.User
	secret []byte
	clock  clockwork.Clock
}

// NewService creates an auth service signing tokens with the given secret.
func NewService(users repository.User, secret []byte, clock clockwork.Clock) Service {
	return &service{users: users, secret: secret, clock: clock}
}

func (s *service) Register(ctx context.Context, username, password string) (*Credentials, error) {
	log := logger.FromContext(ctx)
	log.Info("Register called", "username", username)

	if username == "" || len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: username required, password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	log.Info("User registered", "userID", user.ID, "username", username)
	return &Credentials{User: user, Token: token}, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*Credentials, error) {
	log := logger.FromContext(ctx)
	log.Info("Login called", "username", username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			// Same answer as a bad password; don't leak which usernames exist.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login failed", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{User: user, Token: token}, nil
}

func (s *service) issueToken(userID int64) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *service) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return userID, nil
}
