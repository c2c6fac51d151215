package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// scriptRNG replays a fixed sequence of rolls.
type scriptRNG struct {
	floats []float64
	ints   []int
}

func (s *scriptRNG) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRNG) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func trainingSwordRecipe() (domain.Recipe, domain.Item) {
	recipe := domain.Recipe{
		ID:            1,
		ItemID:        100,
		SuccessRate:   100,
		MinSkillLevel: 1,
		XPReward:      40,
	}
	output := domain.Item{
		ID:       100,
		Name:     "Training Sword",
		Kind:     domain.ItemProduct,
		Category: domain.CategoryGear,
		Tier:     domain.TierF,
	}
	return recipe, output
}

func TestResolveCraft_FullRateAlwaysSucceeds(t *testing.T) {
	recipe, output := trainingSwordRecipe()

	// Worst possible roll still lands inside a 100% chance.
	r := &scriptRNG{floats: []float64{1.0}}
	outcome := ResolveCraft(r, recipe, output, 1, nil)

	require.Equal(t, CraftSuccess, outcome.Status)
	require.NotNil(t, outcome.Item)
	assert.Equal(t, "Training Sword", outcome.Item.Name)
	assert.Equal(t, 40, outcome.XP)
}

func TestResolveCraft_ManySeedsFullRate(t *testing.T) {
	recipe, output := trainingSwordRecipe()
	for seed := int64(0); seed < 50; seed++ {
		outcome := ResolveCraft(rng.NewSeeded(uint64(seed)), recipe, output, 1, nil)
		require.Equal(t, CraftSuccess, outcome.Status, "seed %d", seed)
	}
}

func TestResolveCraft_SkillBoost(t *testing.T) {
	recipe := domain.Recipe{SuccessRate: 90, MinSkillLevel: 5, XPReward: 80}
	output := domain.Item{Name: "Iron Sword", Category: domain.CategoryGear, Tier: domain.TierD}

	// Level 10 boosts 90 to 95; a roll of 0.95 means 95.0, still a hit.
	r := &scriptRNG{floats: []float64{0.95}}
	outcome := ResolveCraft(r, recipe, output, 10, nil)
	assert.Equal(t, CraftSuccess, outcome.Status)
	assert.Equal(t, 80, outcome.XP)
}

func TestResolveCraft_MissDowngrades(t *testing.T) {
	recipe := domain.Recipe{SuccessRate: 90, MinSkillLevel: 5, XPReward: 80}
	output := domain.Item{Name: "Iron Sword", Category: domain.CategoryGear, Tier: domain.TierD}
	pool := []domain.Item{
		{Name: "Training Sword", Category: domain.CategoryGear, Tier: domain.TierF},
		{Name: "Wooden Shield", Category: domain.CategoryGear, Tier: domain.TierF},
	}

	// Miss at 96, downgrade roll 10 (< 50), pick index 1.
	r := &scriptRNG{floats: []float64{0.96, 0.10}, ints: []int{1}}
	outcome := ResolveCraft(r, recipe, output, 10, pool)

	require.Equal(t, CraftDowngrade, outcome.Status)
	require.NotNil(t, outcome.Item)
	assert.Equal(t, "Wooden Shield", outcome.Item.Name)
	assert.Equal(t, domain.TierF, outcome.Item.Tier)
	assert.Equal(t, 16, outcome.XP, "non-success grants 20%% of the reward")
}

func TestResolveCraft_MissFails(t *testing.T) {
	recipe := domain.Recipe{SuccessRate: 90, MinSkillLevel: 5, XPReward: 80}
	output := domain.Item{Name: "Iron Sword", Category: domain.CategoryGear, Tier: domain.TierD}
	pool := []domain.Item{{Name: "Training Sword", Tier: domain.TierF}}

	// Miss at 96, downgrade roll 75 (>= 50).
	r := &scriptRNG{floats: []float64{0.96, 0.75}}
	outcome := ResolveCraft(r, recipe, output, 10, pool)

	assert.Equal(t, CraftFail, outcome.Status)
	assert.Nil(t, outcome.Item)
	assert.Equal(t, 16, outcome.XP)
}

func TestResolveCraft_TierFNeverDowngrades(t *testing.T) {
	recipe := domain.Recipe{SuccessRate: 50, MinSkillLevel: 1, XPReward: 40}
	_, output := trainingSwordRecipe()

	// Miss at 60, downgrade roll would accept, but there is no tier below F.
	r := &scriptRNG{floats: []float64{0.60, 0.10}}
	outcome := ResolveCraft(r, recipe, output, 1, nil)

	assert.Equal(t, CraftFail, outcome.Status)
	assert.Nil(t, outcome.Item)
	assert.Equal(t, 8, outcome.XP)
}
