package domain

// RecipeIngredient is one (item, quantity) cost of a recipe. Order carries no
// meaning.
type RecipeIngredient struct {
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	Quantity int    `json:"quantity"`
}

// Recipe produces one unit of its output item after DurationSeconds, gated by
// the player's level in SkillType.
type Recipe struct {
	ID              int64              `json:"id"`
	ItemID          int64              `json:"item_id"`
	SkillType       SkillType          `json:"skill_type"`
	DurationSeconds int                `json:"duration_seconds"`
	MinSkillLevel   int                `json:"min_skill_level"`
	SuccessRate     int                `json:"success_rate"`
	XPReward        int                `json:"xp_reward"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
}

// SuccessChance is the effective success percentage for a player at the given
// skill level: base rate plus one point per level above the requirement,
// capped at 100.
func (r Recipe) SuccessChance(skillLevel int) int {
	bonus := skillLevel - r.MinSkillLevel
	if bonus < 0 {
		bonus = 0
	}
	chance := r.SuccessRate + bonus
	if chance > 100 {
		chance = 100
	}
	return chance
}
