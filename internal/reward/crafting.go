// Package reward turns completed tasks, player skill state and randomness
// into outcomes. Resolution is pure: all catalog data is passed in and all
// randomness comes from the injected source.
package reward

import (
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// CraftStatus is the quality outcome of one crafting attempt.
type CraftStatus string

const (
	CraftSuccess   CraftStatus = "success"
	CraftDowngrade CraftStatus = "downgrade"
	CraftFail      CraftStatus = "fail"
)

// CraftOutcome is the resolved result of a claimed craft.
type CraftOutcome struct {
	Status CraftStatus
	// Item is the granted item, nil on a clean fail.
	Item *domain.Item
	XP   int
}

// failedXPFactor is the share of the recipe's xp granted on any non-success.
const failedXPFactor = 0.2

// ResolveCraft rolls one crafting attempt. A near-miss has even odds of
// yielding a random same-category product one tier below the target instead
// of nothing; when no lower-tier product exists the downgrade falls back to a
// clean fail. downgradePool must hold the product items one tier below the
// output's tier in the output's category (empty or nil when none exist).
func ResolveCraft(r rng.RNG, recipe domain.Recipe, output domain.Item, skillLevel int, downgradePool []domain.Item) CraftOutcome {
	chance := recipe.SuccessChance(skillLevel)
	roll := r.Float64() * 100

	if roll <= float64(chance) {
		return CraftOutcome{Status: CraftSuccess, Item: &output, XP: recipe.XPReward}
	}

	xp := int(float64(recipe.XPReward) * failedXPFactor)

	if r.Float64()*100 < 50 && len(downgradePool) > 0 {
		item := downgradePool[r.IntN(len(downgradePool))]
		return CraftOutcome{Status: CraftDowngrade, Item: &item, XP: xp}
	}

	return CraftOutcome{Status: CraftFail, XP: xp}
}
