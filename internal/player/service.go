// Package player serves the player profile and inventory views.
package player

import (
	"context"
	"fmt"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// Service defines the interface for player profile operations.
type Service interface {
	// Resolve returns the player row for an account, creating it on first
	// access.
	Resolve(ctx context.Context, userID int64) (*domain.Player, error)
	GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error)
	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryItem, error)
	UpdateProfile(ctx context.Context, userID int64, displayName, email string) error
}

type service struct {
	players repository.Player
	users   repository.User
}

// NewService creates a player service.
func NewService(players repository.Player, users repository.User) Service {
	return &service{players: players, users: users}
}

func (s *service) Resolve(ctx context.Context, userID int64) (*domain.Player, error) {
	p, err := s.players.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player: %w", err)
	}
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error) {
	profile, err := s.players.GetProfile(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryItem, error) {
	inv, err := s.players.GetInventory(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inv, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, displayName, email string) error {
	log := logger.FromContext(ctx)
	if err := s.users.UpdateProfile(ctx, userID, displayName, email); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	log.Info("Profile updated", "userID", userID)
	return nil
}
