// Package progression holds the xp/level bookkeeping shared by skill tracks
// and adventure rank. The two deliberately differ: skills gain at most one
// level per claim, rank xp cascades through levels and letter promotions.
package progression

import "github.com/emberfall-games/guildhall/internal/domain"

// ApplySkillXP adds gained xp to a skill and applies at most one level-up.
// The threshold is level*100 and resets each level; any remainder above the
// threshold after a single level-up is carried as-is, not re-checked.
func ApplySkillXP(skill domain.Skill, gained int) domain.Skill {
	skill.XP += gained
	if threshold := skill.Level * 100; skill.XP >= threshold {
		skill.XP -= threshold
		skill.Level++
	}
	return skill
}

// ApplyRankXP adds adventure xp to a player and cascades rank levels: every
// 100 xp is one rank level, levels past 100 promote to the next rank letter
// and reset the level to 1. At rank S the level clamps to 100 and excess xp
// is discarded.
func ApplyRankXP(player domain.Player, gained int) domain.Player {
	player.AdventureXP += gained

	for player.AdventureXP >= domain.RankXPPerLevel {
		player.AdventureXP -= domain.RankXPPerLevel
		player.RankLevel++
		if player.RankLevel > domain.MaxRankLevel {
			next, ok := player.RankLetter.Next()
			if !ok {
				player.RankLevel = domain.MaxRankLevel
				player.AdventureXP = 0
				break
			}
			player.RankLetter = next
			player.RankLevel = 1
		}
	}
	return player
}

// GatherXP is the xp granted for one completed gathering task at the given
// skill level.
func GatherXP(skillLevel int) int {
	return 10 + 2*skillLevel
}
