package task

import (
	"context"
	"fmt"
	"time"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/repository"
	"github.com/emberfall-games/guildhall/internal/reward"
)

// StartCraft begins a crafting task, deducting every ingredient up front.
// Ingredients are not refunded on a failed outcome; the roll decides what
// comes out, not whether the materials were spent.
func (s *service) StartCraft(ctx context.Context, playerID, recipeID int64) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info("StartCraft called", "playerID", playerID, "recipeID", recipeID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// The active-task check comes first so a busy player always gets the
	// conflict, even when the recipe ID is bogus.
	if err := requireNoActiveTask(ctx, tx, playerID, domain.TaskCrafting); err != nil {
		return nil, err
	}

	recipe, err := s.catalog.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	skill, err := tx.GetSkillForUpdate(ctx, playerID, recipe.SkillType)
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	if skill.Level < recipe.MinSkillLevel {
		return nil, fmt.Errorf("%w: %s level %d, need %d", domain.ErrSkillTooLow, recipe.SkillType, skill.Level, recipe.MinSkillLevel)
	}

	// Validate every ingredient before deducting any, so a partial basket
	// never mutates inventory.
	for _, ing := range recipe.Ingredients {
		have, err := tx.GetItemQuantity(ctx, playerID, ing.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get inventory quantity: %w", err)
		}
		if have < ing.Quantity {
			return nil, fmt.Errorf("%w: need %d of item %d, have %d", domain.ErrInsufficientMaterials, ing.Quantity, ing.ItemID, have)
		}
	}
	for _, ing := range recipe.Ingredients {
		if err := tx.RemoveItem(ctx, playerID, ing.ItemID, ing.Quantity); err != nil {
			return nil, fmt.Errorf("failed to deduct ingredient: %w", err)
		}
	}

	now := s.clock.Now()
	active := &domain.ActiveTask{
		PlayerID:  playerID,
		Type:      domain.TaskCrafting,
		TargetID:  recipe.ID,
		StartTime: now,
		EndTime:   now.Add(time.Duration(recipe.DurationSeconds) * time.Second),
	}
	if err := tx.InsertTask(ctx, active); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.TasksStarted.WithLabelValues(string(domain.TaskCrafting)).Inc()
	log.Info("Crafting task started", "playerID", playerID, "recipeID", recipe.ID, "endTime", active.EndTime)
	return &StartResult{TaskID: active.ID, Type: domain.TaskCrafting, EndTime: active.EndTime}, nil
}

// StartGather begins a gathering task. Gathering has no resource cost and no
// skill gate; the skill level only shapes the reward pool at claim time.
func (s *service) StartGather(ctx context.Context, playerID int64, category domain.SkillType) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info("StartGather called", "playerID", playerID, "category", category)

	if !category.Gatherable() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := requireNoActiveTask(ctx, tx, playerID, domain.TaskGathering); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	active := &domain.ActiveTask{
		PlayerID:  playerID,
		Type:      domain.TaskGathering,
		Category:  category,
		StartTime: now,
		EndTime:   now.Add(gatherDurations[category]),
	}
	if err := tx.InsertTask(ctx, active); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	metrics.TasksStarted.WithLabelValues(string(domain.TaskGathering)).Inc()
	return &StartResult{TaskID: active.ID, Type: domain.TaskGathering, EndTime: active.EndTime}, nil
}

// StartAdventure begins an adventure, gated on rank, cooldown and supplies in
// that order. Supplies are consumed at start; the claim later always pays
// out. The monster is rolled now and frozen into the task payload.
func (s *service) StartAdventure(ctx context.Context, playerID int64, tier domain.Tier, templateID int64) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info("StartAdventure called", "playerID", playerID, "tier", tier, "templateID", templateID)

	if !tier.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTier, tier)
	}
	tpl, err := s.catalog.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	req := domain.AdventureTiers[tier]

	water, err := s.catalog.GetItemByName(ctx, domain.ItemWaterBottle)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve water item: %w", err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := requireNoActiveTask(ctx, tx, playerID, domain.TaskAdventure); err != nil {
		return nil, err
	}

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !player.RankLetter.AtLeast(tier) {
		return nil, fmt.Errorf("%w: rank %s, tier %s", domain.ErrRankTooLow, player.RankLetter, tier)
	}

	now := s.clock.Now()
	if !player.LastAdventureClaim.IsZero() {
		if elapsed := now.Sub(player.LastAdventureClaim); elapsed < domain.AdventureCooldown {
			return nil, domain.CooldownError{Remaining: domain.AdventureCooldown - elapsed}
		}
	}

	food, err := tx.GetCategoryHoldings(ctx, playerID, domain.CategoryFood, domain.ItemWaterBottle)
	if err != nil {
		return nil, fmt.Errorf("failed to get food holdings: %w", err)
	}
	if total := sumQuantities(food); total < req.Food {
		return nil, domain.SupplyError{Resource: "food", Needed: req.Food, Have: total}
	}

	waterHave, err := tx.GetItemQuantity(ctx, playerID, water.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get water quantity: %w", err)
	}
	if waterHave < req.Water {
		return nil, domain.SupplyError{Resource: "water", Needed: req.Water, Have: waterHave}
	}

	var medicine []domain.InventoryEntry
	if req.Medicine > 0 {
		medicine, err = tx.GetCategoryHoldings(ctx, playerID, domain.CategoryMedicine, "")
		if err != nil {
			return nil, fmt.Errorf("failed to get medicine holdings: %w", err)
		}
		if total := sumQuantities(medicine); total < req.Medicine {
			return nil, domain.SupplyError{Resource: "medicine", Needed: req.Medicine, Have: total}
		}
	}

	// All supplies verified; deduct. Stacks drain in ascending item id.
	if err := drainStacks(ctx, tx, playerID, food, req.Food); err != nil {
		return nil, err
	}
	if err := tx.RemoveItem(ctx, playerID, water.ID, req.Water); err != nil {
		return nil, fmt.Errorf("failed to deduct water: %w", err)
	}
	if req.Medicine > 0 {
		if err := drainStacks(ctx, tx, playerID, medicine, req.Medicine); err != nil {
			return nil, err
		}
	}

	monsters, err := s.catalog.MonstersByTier(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}
	monsterName := reward.PickMonster(s.rng, monsters)
	if monsterName == domain.UnknownMonsterName {
		log.Warn("No monsters seeded for tier", "tier", tier)
	}

	active := &domain.ActiveTask{
		PlayerID: playerID,
		Type:     domain.TaskAdventure,
		TargetID: tpl.ID,
		Payload: &domain.AdventurePayload{
			Tier:         tier,
			MonsterName:  monsterName,
			TemplateName: tpl.Name,
			TemplateType: tpl.Type,
		},
		StartTime: now,
		EndTime:   now.Add(req.Duration),
	}
	if err := tx.InsertTask(ctx, active); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.TasksStarted.WithLabelValues(string(domain.TaskAdventure)).Inc()
	log.Info("Adventure started", "playerID", playerID, "tier", tier, "monster", monsterName, "endTime", active.EndTime)
	return &StartResult{TaskID: active.ID, Type: domain.TaskAdventure, EndTime: active.EndTime}, nil
}

func sumQuantities(entries []domain.InventoryEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// drainStacks removes needed units across the given stacks in order, partial
// on the last stack. Callers verify the total first.
func drainStacks(ctx context.Context, tx repository.Tx, playerID int64, stacks []domain.InventoryEntry, needed int) error {
	for _, stack := range stacks {
		if needed <= 0 {
			return nil
		}
		take := stack.Quantity
		if take > needed {
			take = needed
		}
		if err := tx.RemoveItem(ctx, playerID, stack.ItemID, take); err != nil {
			return fmt.Errorf("failed to deduct supplies: %w", err)
		}
		needed -= take
	}
	if needed > 0 {
		return domain.ErrInsufficientSupplies
	}
	return nil
}
