package reward

import (
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/progression"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// GatherOutcome is the resolved result of a claimed gathering task.
type GatherOutcome struct {
	Item     domain.Item
	Quantity int
	XP       int
}

// gatherUnlocks maps each gathering category's materials to the minimum
// skill level at which they enter the reward pool. Items absent from the
// table are never granted.
var gatherUnlocks = map[domain.SkillType]map[string]int{
	domain.SkillWood: {
		"Common Wood": 1,
		"Stick":       1,
		"Oak Wood":    5,
		"Rosewood":    15,
	},
	domain.SkillMining: {
		"Stone":      1,
		"Flint":      1,
		"Coal":       1,
		"Copper Ore": 1,
		"Tin Ore":    1,
		"Iron Ore":   5,
		"Silver Ore": 15,
		"Gold Ore":   30,
	},
	domain.SkillAnimal: {
		"Raw Meat": 1,
		"Raw Fish": 1,
		"Hide":     1,
		"Milk":     1,
		"Egg":      1,
		"Bone":     5,
		"Feather":  5,
		"Wool":     5,
	},
	domain.SkillPlants: {
		"Wheat":        1,
		"Corn":         1,
		"Carrot":       1,
		"Potato":       1,
		"Berry":        1,
		"Plant Matter": 1,
		"Fiber":        1,
		"Herbs":        5,
		"Cotton":       15,
		"Sugarcane":    15,
	},
}

// EligibleMaterials filters a category's materials down to those unlocked at
// the given skill level.
func EligibleMaterials(category domain.SkillType, skillLevel int, materials []domain.Item) []domain.Item {
	table := gatherUnlocks[category]
	var eligible []domain.Item
	for _, m := range materials {
		if min, ok := table[m.Name]; ok && skillLevel >= min {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

// ResolveGather picks one eligible material uniformly at random, with a
// quantity of 1-3. Returns domain.ErrNoEligibleMaterials when the unlock
// filter leaves nothing; the caller still consumes the task.
func ResolveGather(r rng.RNG, category domain.SkillType, skillLevel int, materials []domain.Item) (GatherOutcome, error) {
	eligible := EligibleMaterials(category, skillLevel, materials)
	if len(eligible) == 0 {
		return GatherOutcome{}, domain.ErrNoEligibleMaterials
	}

	return GatherOutcome{
		Item:     eligible[r.IntN(len(eligible))],
		Quantity: r.IntN(3) + 1,
		XP:       progression.GatherXP(skillLevel),
	}, nil
}
