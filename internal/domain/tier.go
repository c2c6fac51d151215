package domain

// Tier is the ordinal quality rank shared by items, recipes, monsters and
// adventures. Player rank letters use the same ordering.
type Tier string

const (
	TierF Tier = "F"
	TierD Tier = "D"
	TierC Tier = "C"
	TierB Tier = "B"
	TierA Tier = "A"
	TierS Tier = "S"
)

// tierOrder is the total order F < D < C < B < A < S.
var tierOrder = []Tier{TierF, TierD, TierC, TierB, TierA, TierS}

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Index returns the position of the tier in the total order, or -1 if the
// tier is unknown.
func (t Tier) Index() int {
	for i, o := range tierOrder {
		if o == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the six known tiers.
func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// AtLeast reports whether t is equal to or above other in tier order.
func (t Tier) AtLeast(other Tier) bool {
	return t.Index() >= other.Index()
}

// Below returns the tier immediately below t. The second return is false when
// t is the lowest tier (or unknown).
func (t Tier) Below() (Tier, bool) {
	idx := t.Index()
	if idx <= 0 {
		return "", false
	}
	return tierOrder[idx-1], true
}

// Next returns the tier immediately above t. The second return is false when
// t is already the highest tier (or unknown).
func (t Tier) Next() (Tier, bool) {
	idx := t.Index()
	if idx < 0 || idx >= len(tierOrder)-1 {
		return "", false
	}
	return tierOrder[idx+1], true
}
