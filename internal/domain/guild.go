package domain

// Guild classes run from 12 (lowest prestige) down to 1 (highest).
const (
	GuildStartingClass = 12
	GuildTopClass      = 1
)

// Guild is a named group of players led by one member.
type Guild struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Class    int    `json:"class"`
	LeaderID int64  `json:"leader_id"`
}

// GuildMember is the roster view of one member, carrying the fields promotion
// eligibility is judged on.
type GuildMember struct {
	PlayerID            int64  `json:"player_id"`
	Username            string `json:"username"`
	DisplayName         string `json:"display_name,omitempty"`
	RankLetter          Tier   `json:"rank_letter"`
	RankLevel           int    `json:"rank_level"`
	CompletedAdventures int    `json:"completed_adventures"`
}

// GuildClassRank maps a guild class to the minimum rank every member must
// hold for a guild to reach that class.
func GuildClassRank(class int) Tier {
	switch {
	case class >= 11:
		return TierF
	case class >= 9:
		return TierD
	case class >= 7:
		return TierC
	case class >= 5:
		return TierB
	case class >= 3:
		return TierA
	default:
		return TierS
	}
}

// GuildClassAdventures is the total completed adventures, summed across all
// members, required to promote INTO the given class. Promotion from class 12
// to 11 needs 5; from class 2 to 1 needs 55.
func GuildClassAdventures(class int) int {
	return (12 - class) * 5
}
