// Package task is the scheduler for timed player activities. It owns the
// one-active-task-per-type invariant, collects costs up front, and resolves
// rewards on claim. Completion is lazy: nothing fires when a task's end time
// passes, the next claim attempt simply observes it.
package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/catalog"
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
	"github.com/emberfall-games/guildhall/internal/reward"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// StartResult reports the scheduled task back to the caller.
type StartResult struct {
	TaskID  int64           `json:"task_id"`
	Type    domain.TaskType `json:"task_type"`
	EndTime time.Time       `json:"end_time"`
}

// CraftResult is the outcome of a claimed crafting task.
type CraftResult struct {
	Status     reward.CraftStatus `json:"status"`
	ItemName   string             `json:"item_name,omitempty"`
	XPGained   int                `json:"xp_gained"`
	SkillType  domain.SkillType   `json:"skill_type"`
	SkillLevel int                `json:"skill_level"`
}

// GatherResult is the outcome of a claimed gathering task.
type GatherResult struct {
	ItemName   string           `json:"item_name"`
	Quantity   int              `json:"quantity"`
	XPGained   int              `json:"xp_gained"`
	SkillType  domain.SkillType `json:"skill_type"`
	SkillLevel int              `json:"skill_level"`
}

// AdventureResult is the outcome of a claimed adventure.
type AdventureResult struct {
	Tier                domain.Tier `json:"tier"`
	XPGained            int         `json:"xp_gained"`
	MonsterName         string      `json:"monster_name"`
	RankLetter          domain.Tier `json:"rank_letter"`
	RankLevel           int         `json:"rank_level"`
	CompletedAdventures int         `json:"completed_adventures"`
}

// Service defines the interface for task scheduling operations.
type Service interface {
	StartCraft(ctx context.Context, playerID, recipeID int64) (*StartResult, error)
	ClaimCraft(ctx context.Context, playerID int64) (*CraftResult, error)
	StartGather(ctx context.Context, playerID int64, category domain.SkillType) (*StartResult, error)
	ClaimGather(ctx context.Context, playerID int64) (*GatherResult, error)
	StartAdventure(ctx context.Context, playerID int64, tier domain.Tier, templateID int64) (*StartResult, error)
	ClaimAdventure(ctx context.Context, playerID int64) (*AdventureResult, error)
	ListTasks(ctx context.Context, playerID int64) ([]domain.ActiveTask, error)
}

type service struct {
	repo    repository.Task
	catalog catalog.Service
	clock   clockwork.Clock
	rng     rng.RNG
}

// NewService creates a task scheduler. The clock and random source are
// injected so tests can script time and rolls.
func NewService(repo repository.Task, cat catalog.Service, clock clockwork.Clock, r rng.RNG) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		clock:   clock,
		rng:     r,
	}
}

func (s *service) ListTasks(ctx context.Context, playerID int64) ([]domain.ActiveTask, error) {
	tasks, err := s.repo.ListTasks(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// requireNoActiveTask enforces the one-task-per-type slot inside the given
// transaction. The slot being free here can still race with another starter;
// the unique constraint behind InsertTask settles that.
func requireNoActiveTask(ctx context.Context, tx repository.Tx, playerID int64, taskType domain.TaskType) error {
	_, err := tx.GetTaskForUpdate(ctx, playerID, taskType)
	if err == nil {
		return domain.ErrTaskAlreadyActive
	}
	if errors.Is(err, domain.ErrNoActiveTask) {
		return nil
	}
	return fmt.Errorf("failed to check active task: %w", err)
}

// requireFinishedTask loads the player's task of the given type and verifies
// it is claimable at now. The row lock serializes concurrent claims.
func requireFinishedTask(ctx context.Context, tx repository.Tx, playerID int64, taskType domain.TaskType, now time.Time) (*domain.ActiveTask, error) {
	active, err := tx.GetTaskForUpdate(ctx, playerID, taskType)
	if err != nil {
		return nil, err
	}
	if !active.Finished(now) {
		return nil, domain.ErrTaskNotFinished
	}
	return active, nil
}
