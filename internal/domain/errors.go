package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgPlayerNotFound   = "player not found"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgRecipeNotFound   = "recipe not found"
	ErrMsgTemplateNotFound = "adventure template not found"
	ErrMsgShopNotFound     = "shop not found"
	ErrMsgGuildNotFound    = "guild not found"

	ErrMsgTaskAlreadyActive = "a task of this type is already active"
	ErrMsgNoActiveTask      = "no active task of this type"
	ErrMsgTaskNotFinished   = "task is not finished yet"

	ErrMsgSkillTooLow           = "skill level too low"
	ErrMsgRankTooLow            = "rank too low for this tier"
	ErrMsgInsufficientMaterials = "not enough materials"
	ErrMsgInsufficientSupplies  = "not enough supplies"
	ErrMsgInsufficientItems     = "not enough items"
	ErrMsgInsufficientGold      = "not enough gold"
	ErrMsgInsufficientStock     = "not enough stock"
	ErrMsgOnCooldown            = "adventure board is refreshing"
	ErrMsgNoEligibleMaterials   = "no materials available for this category"

	ErrMsgInvalidCategory = "invalid gathering category"
	ErrMsgInvalidTier     = "invalid tier"
	ErrMsgInvalidInput    = "invalid input"

	ErrMsgAlreadyInGuild     = "already in a guild"
	ErrMsgNotInGuild         = "not in a guild"
	ErrMsgGuildNameTaken     = "guild name already taken"
	ErrMsgNotGuildLeader     = "only the guild leader may do that"
	ErrMsgGuildAtTopClass    = "guild is already at the top class"
	ErrMsgGuildRankTooLow    = "guild members do not meet the rank requirement"
	ErrMsgGuildNeedAdventure = "guild does not meet the completed adventure requirement"

	ErrMsgUsernameTaken      = "username already exists"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgInvalidToken       = "invalid or expired token"
)

// Not-found errors: a referenced entity does not exist.
var (
	ErrPlayerNotFound   = errors.New(ErrMsgPlayerNotFound)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrRecipeNotFound   = errors.New(ErrMsgRecipeNotFound)
	ErrTemplateNotFound = errors.New(ErrMsgTemplateNotFound)
	ErrShopNotFound     = errors.New(ErrMsgShopNotFound)
	ErrGuildNotFound    = errors.New(ErrMsgGuildNotFound)
)

// State-conflict errors: the operation is invalid given current state.
var (
	ErrTaskAlreadyActive = errors.New(ErrMsgTaskAlreadyActive)
	ErrNoActiveTask      = errors.New(ErrMsgNoActiveTask)
	ErrTaskNotFinished   = errors.New(ErrMsgTaskNotFinished)
	ErrAlreadyInGuild    = errors.New(ErrMsgAlreadyInGuild)
	ErrNotInGuild        = errors.New(ErrMsgNotInGuild)
	ErrGuildNameTaken    = errors.New(ErrMsgGuildNameTaken)
	ErrGuildAtTopClass   = errors.New(ErrMsgGuildAtTopClass)
	ErrUsernameTaken     = errors.New(ErrMsgUsernameTaken)
)

// Precondition errors: eligibility or resources not met.
var (
	ErrSkillTooLow           = errors.New(ErrMsgSkillTooLow)
	ErrRankTooLow            = errors.New(ErrMsgRankTooLow)
	ErrInsufficientMaterials = errors.New(ErrMsgInsufficientMaterials)
	ErrInsufficientSupplies  = errors.New(ErrMsgInsufficientSupplies)
	ErrInsufficientItems     = errors.New(ErrMsgInsufficientItems)
	ErrInsufficientGold      = errors.New(ErrMsgInsufficientGold)
	ErrInsufficientStock     = errors.New(ErrMsgInsufficientStock)
	ErrOnCooldown            = errors.New(ErrMsgOnCooldown)
	ErrNoEligibleMaterials   = errors.New(ErrMsgNoEligibleMaterials)
	ErrNotGuildLeader        = errors.New(ErrMsgNotGuildLeader)
	ErrGuildRankTooLow       = errors.New(ErrMsgGuildRankTooLow)
	ErrGuildNeedAdventures   = errors.New(ErrMsgGuildNeedAdventure)
)

// Validation errors: malformed or out-of-range input.
var (
	ErrInvalidCategory = errors.New(ErrMsgInvalidCategory)
	ErrInvalidTier     = errors.New(ErrMsgInvalidTier)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrInvalidToken       = errors.New(ErrMsgInvalidToken)
)

// CooldownError reports how long the adventure board is still refreshing.
// errors.Is(err, ErrOnCooldown) matches it.
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("%s: wait %ds", ErrMsgOnCooldown, e.RemainingSeconds())
}

// RemainingSeconds rounds the remaining cooldown up to whole seconds.
func (e CooldownError) RemainingSeconds() int {
	return int((e.Remaining + time.Second - 1) / time.Second)
}

func (e CooldownError) Is(target error) bool {
	return target == ErrOnCooldown
}

// SupplyError reports which adventure resource fell short.
// errors.Is(err, ErrInsufficientSupplies) matches it.
type SupplyError struct {
	Resource string // "food", "water" or "medicine"
	Needed   int
	Have     int
}

func (e SupplyError) Error() string {
	return fmt.Sprintf("%s: need %d %s, have %d", ErrMsgInsufficientSupplies, e.Needed, e.Resource, e.Have)
}

func (e SupplyError) Is(target error) bool {
	return target == ErrInsufficientSupplies
}
