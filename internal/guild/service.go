// Package guild covers guild membership and the class promotion ladder.
// Classes run 12 down to 1; promotion is a leader-only, all-or-nothing check
// over the whole roster.
package guild

import (
	"context"
	"fmt"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// View is a guild joined with its roster.
type View struct {
	domain.Guild
	// RequiredRank and RequiredAdventures describe the next promotion, or
	// zero values at the top class.
	RequiredRank       domain.Tier          `json:"required_rank,omitempty"`
	RequiredAdventures int                  `json:"required_adventures,omitempty"`
	TotalAdventures    int                  `json:"total_adventures"`
	Members            []domain.GuildMember `json:"members"`
}

// Service defines the interface for guild operations.
type Service interface {
	Create(ctx context.Context, playerID int64, name string) (*domain.Guild, error)
	// Get returns the caller's guild with roster and promotion progress.
	Get(ctx context.Context, playerID int64) (*View, error)
	// Promote moves the caller's guild one class up (numerically down).
	Promote(ctx context.Context, playerID int64) (int, error)
}

type service struct {
	repo repository.Guild
}

// NewService creates a guild service.
func NewService(repo repository.Guild) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, playerID int64, name string) (*domain.Guild, error) {
	log := logger.FromContext(ctx)
	log.Info("Create guild called", "playerID", playerID, "name", name)

	guild, err := s.repo.CreateGuild(ctx, name, playerID)
	if err != nil {
		return nil, err
	}
	log.Info("Guild created", "guildID", guild.ID, "name", guild.Name)
	return guild, nil
}

func (s *service) Get(ctx context.Context, playerID int64) (*View, error) {
	guild, err := s.repo.GetGuildByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.GetGuildMembers(ctx, guild.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild members: %w", err)
	}

	view := &View{Guild: *guild, Members: members}
	for _, m := range members {
		view.TotalAdventures += m.CompletedAdventures
	}
	if guild.Class > domain.GuildTopClass {
		target := guild.Class - 1
		view.RequiredRank = domain.GuildClassRank(target)
		view.RequiredAdventures = domain.GuildClassAdventures(target)
	}
	return view, nil
}

// Promote re-reads the guild and roster under a row lock so two concurrent
// promotions cannot both pass the same threshold.
func (s *service) Promote(ctx context.Context, playerID int64) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("Promote guild called", "playerID", playerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	guild, err := tx.GetGuildByPlayerForUpdate(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if guild.LeaderID != playerID {
		return 0, domain.ErrNotGuildLeader
	}
	if guild.Class <= domain.GuildTopClass {
		return 0, domain.ErrGuildAtTopClass
	}

	members, err := tx.GetGuildMembers(ctx, guild.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get guild members: %w", err)
	}

	target := guild.Class - 1
	requiredRank := domain.GuildClassRank(target)
	totalAdventures := 0
	for _, m := range members {
		if !m.RankLetter.AtLeast(requiredRank) {
			return 0, fmt.Errorf("%w: %s is rank %s, class %d requires %s",
				domain.ErrGuildRankTooLow, m.Username, m.RankLetter, target, requiredRank)
		}
		totalAdventures += m.CompletedAdventures
	}
	if required := domain.GuildClassAdventures(target); totalAdventures < required {
		return 0, fmt.Errorf("%w: %d of %d adventures", domain.ErrGuildNeedAdventures, totalAdventures, required)
	}

	if err := tx.UpdateGuildClass(ctx, guild.ID, target); err != nil {
		return 0, fmt.Errorf("failed to update guild class: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.GuildPromotions.Inc()
	log.Info("Guild promoted", "guildID", guild.ID, "class", target)
	return target, nil
}
