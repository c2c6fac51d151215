package domain

import "time"

// Monster is flavor data selected at adventure start.
type Monster struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
}

// AdventureTemplate is flavor only; numeric rewards depend solely on tier.
type AdventureTemplate struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// AdventureTier holds the per-tier duration, supply costs and xp reward.
type AdventureTier struct {
	Duration time.Duration
	Food     int
	Water    int
	Medicine int
	XP       int
	Risk     string
}

// AdventureTiers is the fixed requirement/reward table keyed by tier.
var AdventureTiers = map[Tier]AdventureTier{
	TierF: {Duration: 900 * time.Second, Food: 2, Water: 2, Medicine: 0, XP: 50, Risk: "Low"},
	TierD: {Duration: 1800 * time.Second, Food: 5, Water: 5, Medicine: 1, XP: 120, Risk: "Moderate"},
	TierC: {Duration: 3600 * time.Second, Food: 10, Water: 10, Medicine: 2, XP: 300, Risk: "High"},
	TierB: {Duration: 7200 * time.Second, Food: 25, Water: 25, Medicine: 5, XP: 800, Risk: "Dangerous"},
	TierA: {Duration: 14400 * time.Second, Food: 60, Water: 60, Medicine: 10, XP: 2000, Risk: "Extreme"},
	TierS: {Duration: 36000 * time.Second, Food: 150, Water: 150, Medicine: 25, XP: 6000, Risk: "Lethal"},
}

// AdventureCooldown is the minimum wall-clock gap between an adventure claim
// and the next adventure start.
const AdventureCooldown = 300 * time.Second

// Rank progression constants. Unlike skills, rank xp uses a flat threshold
// and cascades through multiple levels per claim.
const (
	RankXPPerLevel = 100
	MaxRankLevel   = 100
)
