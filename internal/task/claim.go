package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/progression"
	"github.com/emberfall-games/guildhall/internal/repository"
	"github.com/emberfall-games/guildhall/internal/reward"
)

// ClaimCraft resolves a finished crafting task. The quality roll happens
// here, not at start, so the stored task carries no outcome to leak.
func (s *service) ClaimCraft(ctx context.Context, playerID int64) (*CraftResult, error) {
	log := logger.FromContext(ctx)
	log.Info("ClaimCraft called", "playerID", playerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	active, err := requireFinishedTask(ctx, tx, playerID, domain.TaskCrafting, s.clock.Now())
	if err != nil {
		return nil, err
	}

	recipe, err := s.catalog.GetRecipe(ctx, active.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %d: %w", active.TargetID, err)
	}
	output, err := s.catalog.GetItem(ctx, recipe.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load output item: %w", err)
	}
	pool, err := s.catalog.DowngradePool(ctx, output.Category, output.Tier)
	if err != nil {
		return nil, fmt.Errorf("failed to load downgrade pool: %w", err)
	}

	skill, err := tx.GetSkillForUpdate(ctx, playerID, recipe.SkillType)
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	outcome := reward.ResolveCraft(s.rng, *recipe, *output, skill.Level, pool)

	if outcome.Item != nil {
		if err := tx.AddItem(ctx, playerID, outcome.Item.ID, 1); err != nil {
			return nil, fmt.Errorf("failed to grant item: %w", err)
		}
	}

	skill = progression.ApplySkillXP(skill, outcome.XP)
	if err := tx.UpdateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	if err := tx.DeleteTask(ctx, active.ID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result := &CraftResult{
		Status:     outcome.Status,
		XPGained:   outcome.XP,
		SkillType:  recipe.SkillType,
		SkillLevel: skill.Level,
	}
	if outcome.Item != nil {
		result.ItemName = outcome.Item.Name
	}
	metrics.TasksClaimed.WithLabelValues(string(domain.TaskCrafting)).Inc()
	metrics.CraftOutcomes.WithLabelValues(string(outcome.Status)).Inc()
	log.Info("Crafting task claimed", "playerID", playerID, "status", outcome.Status, "item", result.ItemName, "xp", outcome.XP)
	return result, nil
}

// ClaimGather resolves a finished gathering task. An empty eligible pool
// still consumes the task; retrying would just spin on the same state.
func (s *service) ClaimGather(ctx context.Context, playerID int64) (*GatherResult, error) {
	log := logger.FromContext(ctx)
	log.Info("ClaimGather called", "playerID", playerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	active, err := requireFinishedTask(ctx, tx, playerID, domain.TaskGathering, s.clock.Now())
	if err != nil {
		return nil, err
	}

	skill, err := tx.GetSkillForUpdate(ctx, playerID, active.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	materials, err := s.catalog.Materials(ctx, active.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	outcome, err := reward.ResolveGather(s.rng, active.Category, skill.Level, materials)
	if err != nil {
		if errors.Is(err, domain.ErrNoEligibleMaterials) {
			if delErr := tx.DeleteTask(ctx, active.ID); delErr != nil {
				return nil, fmt.Errorf("failed to delete task: %w", delErr)
			}
			if commitErr := tx.Commit(ctx); commitErr != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", commitErr)
			}
			log.Warn("Gathering task consumed with empty reward pool", "playerID", playerID, "category", active.Category)
		}
		return nil, err
	}

	if err := tx.AddItem(ctx, playerID, outcome.Item.ID, outcome.Quantity); err != nil {
		return nil, fmt.Errorf("failed to grant item: %w", err)
	}

	skill = progression.ApplySkillXP(skill, outcome.XP)
	if err := tx.UpdateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	if err := tx.DeleteTask(ctx, active.ID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.TasksClaimed.WithLabelValues(string(domain.TaskGathering)).Inc()
	log.Info("Gathering task claimed", "playerID", playerID, "item", outcome.Item.Name, "quantity", outcome.Quantity, "xp", outcome.XP)
	return &GatherResult{
		ItemName:   outcome.Item.Name,
		Quantity:   outcome.Quantity,
		XPGained:   outcome.XP,
		SkillType:  active.Category,
		SkillLevel: skill.Level,
	}, nil
}

// ClaimAdventure resolves a finished adventure. There is no roll; supplies
// were the gamble, paid at start. Claiming stamps the cooldown.
func (s *service) ClaimAdventure(ctx context.Context, playerID int64) (*AdventureResult, error) {
	log := logger.FromContext(ctx)
	log.Info("ClaimAdventure called", "playerID", playerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.clock.Now()
	active, err := requireFinishedTask(ctx, tx, playerID, domain.TaskAdventure, now)
	if err != nil {
		return nil, err
	}
	if active.Payload == nil {
		return nil, fmt.Errorf("adventure task %d has no payload", active.ID)
	}

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	xp := reward.AdventureXP(active.Payload.Tier)
	updated := progression.ApplyRankXP(*player, xp)
	updated.CompletedAdventures++
	updated.LastAdventureClaim = now

	if err := tx.UpdatePlayerProgress(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if err := tx.DeleteTask(ctx, active.ID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.TasksClaimed.WithLabelValues(string(domain.TaskAdventure)).Inc()
	metrics.AdventuresClaimed.WithLabelValues(string(active.Payload.Tier)).Inc()
	log.Info("Adventure claimed", "playerID", playerID, "tier", active.Payload.Tier, "xp", xp, "rank", updated.RankLetter, "rankLevel", updated.RankLevel)
	return &AdventureResult{
		Tier:                active.Payload.Tier,
		XPGained:            xp,
		MonsterName:         active.Payload.MonsterName,
		RankLetter:          updated.RankLetter,
		RankLevel:           updated.RankLevel,
		CompletedAdventures: updated.CompletedAdventures,
	}, nil
}
