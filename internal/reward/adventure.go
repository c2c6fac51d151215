package reward

import (
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// AdventureXP is the xp reward for a claimed adventure. Adventures always
// succeed once claimable; the supplies were the price, paid at start.
func AdventureXP(tier domain.Tier) int {
	return domain.AdventureTiers[tier].XP
}

// PickMonster samples one monster uniformly from the tier's pool, falling
// back to a sentinel name when the catalog has none of that tier.
func PickMonster(r rng.RNG, monsters []domain.Monster) string {
	if len(monsters) == 0 {
		return domain.UnknownMonsterName
	}
	return monsters[r.IntN(len(monsters))].Name
}
