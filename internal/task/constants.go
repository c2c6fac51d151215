package task

import (
	"time"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// gatherDurations is the fixed task duration per gathering category.
var gatherDurations = map[domain.SkillType]time.Duration{
	domain.SkillWood:   60 * time.Second,
	domain.SkillMining: 300 * time.Second,
	domain.SkillAnimal: 120 * time.Second,
	domain.SkillPlants: 30 * time.Second,
}
