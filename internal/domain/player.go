package domain

import "time"

// User is an account. Credentials live here; everything game-side hangs off
// the Player row.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
}

// Player is the per-account game aggregate. Created lazily on first
// authenticated access if missing.
type Player struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	Username            string    `json:"username,omitempty"`
	DisplayName         string    `json:"display_name,omitempty"`
	Gold                int       `json:"gold"`
	Level               int       `json:"level"`
	XP                  int       `json:"xp"`
	RankLetter          Tier      `json:"rank_letter"`
	RankLevel           int       `json:"rank_level"`
	AdventureXP         int       `json:"adventure_xp"`
	CompletedAdventures int       `json:"completed_adventures"`
	LastAdventureClaim  time.Time `json:"last_adventure_claim"`
}

// Profile is a player joined with their skill rows, the shape most request
// handlers work with.
type Profile struct {
	Player
	Skills []Skill `json:"skills"`
}

// SkillLevel returns the player's level in the given track, defaulting to 1
// when the row has not been materialized yet.
func (p Profile) SkillLevel(t SkillType) int {
	for _, s := range p.Skills {
		if s.Type == t {
			return s.Level
		}
	}
	return 1
}
