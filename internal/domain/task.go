package domain

import "time"

// TaskType identifies one of the three timed activity categories. A player
// may run one task of each type concurrently, never two of the same type.
type TaskType string

const (
	TaskCrafting  TaskType = "crafting"
	TaskGathering TaskType = "gathering"
	TaskAdventure TaskType = "adventure"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskCrafting, TaskGathering, TaskAdventure:
		return true
	}
	return false
}

// AdventurePayload is the narrative data resolved when an adventure starts.
// Monster and template are stored by name so later catalog edits don't
// retroactively change an in-flight task.
type AdventurePayload struct {
	Tier         Tier   `json:"tier"`
	MonsterName  string `json:"monster_name"`
	TemplateName string `json:"template_name"`
	TemplateType string `json:"template_type"`
}

// UnknownMonsterName is recorded when no monster of the requested tier exists
// in the catalog.
const UnknownMonsterName = "Unknown Threat"

// ActiveTask is the single in-flight activity of one type for one player.
// Created by Start, destroyed by Claim; there is no other mutation and no
// cancellation. "Claimable" is a time predicate (now >= EndTime), not a
// stored flag.
type ActiveTask struct {
	ID       int64    `json:"id"`
	PlayerID int64    `json:"player_id"`
	Type     TaskType `json:"task_type"`

	// TargetID references a recipe (crafting) or adventure template.
	TargetID int64 `json:"target_id,omitempty"`
	// Category is set for gathering tasks only.
	Category SkillType `json:"category,omitempty"`
	// Payload is set for adventure tasks only.
	Payload *AdventurePayload `json:"payload,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Finished reports whether the task is claimable at the given instant.
func (t ActiveTask) Finished(now time.Time) bool {
	return !now.Before(t.EndTime)
}
