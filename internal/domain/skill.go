package domain

// SkillType identifies one of the six independently leveled skill tracks.
type SkillType string

const (
	SkillWood     SkillType = "wood"
	SkillMining   SkillType = "mining"
	SkillAnimal   SkillType = "animal"
	SkillPlants   SkillType = "plants"
	SkillCrafting SkillType = "crafting"
	SkillCooking  SkillType = "cooking"
)

// SkillTypes lists every skill track. New players get one row per entry.
var SkillTypes = []SkillType{
	SkillWood, SkillMining, SkillAnimal, SkillPlants, SkillCrafting, SkillCooking,
}

// GatherCategories are the skill tracks that double as gathering categories.
var GatherCategories = []SkillType{SkillWood, SkillMining, SkillAnimal, SkillPlants}

// Valid reports whether s names a known skill track.
func (s SkillType) Valid() bool {
	for _, t := range SkillTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Gatherable reports whether s is one of the four gathering categories.
func (s SkillType) Gatherable() bool {
	for _, t := range GatherCategories {
		if t == s {
			return true
		}
	}
	return false
}

// Skill is a player's progress in one skill track. Missing rows are lazily
// materialized at level 1 with zero xp.
type Skill struct {
	PlayerID int64     `json:"player_id"`
	Type     SkillType `json:"skill_type"`
	Level    int       `json:"level"`
	XP       int       `json:"xp"`
}

// XPToNextLevel is the non-cumulative threshold for the skill's next level.
func (s Skill) XPToNextLevel() int {
	return s.Level * 100
}
