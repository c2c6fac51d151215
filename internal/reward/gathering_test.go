package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/rng"
)

func woodMaterials() []domain.Item {
	return []domain.Item{
		{ID: 1, Name: "Common Wood", Kind: domain.ItemMaterial, Category: string(domain.SkillWood)},
		{ID: 2, Name: "Stick", Kind: domain.ItemMaterial, Category: string(domain.SkillWood)},
		{ID: 3, Name: "Oak Wood", Kind: domain.ItemMaterial, Category: string(domain.SkillWood)},
		{ID: 4, Name: "Rosewood", Kind: domain.ItemMaterial, Category: string(domain.SkillWood)},
	}
}

func names(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestEligibleMaterials_WoodUnlocks(t *testing.T) {
	materials := woodMaterials()

	tests := []struct {
		name  string
		level int
		want  []string
	}{
		{name: "level 1 basics only", level: 1, want: []string{"Common Wood", "Stick"}},
		{name: "level 4 still basics", level: 4, want: []string{"Common Wood", "Stick"}},
		{name: "level 5 unlocks oak", level: 5, want: []string{"Common Wood", "Stick", "Oak Wood"}},
		{name: "level 15 unlocks rosewood", level: 15, want: []string{"Common Wood", "Stick", "Oak Wood", "Rosewood"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleMaterials(domain.SkillWood, tt.level, materials)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestEligibleMaterials_UnknownItemNeverGranted(t *testing.T) {
	materials := append(woodMaterials(), domain.Item{ID: 99, Name: "Ancient Root"})
	got := EligibleMaterials(domain.SkillWood, 100, materials)
	assert.NotContains(t, names(got), "Ancient Root")
}

func TestResolveGather(t *testing.T) {
	materials := woodMaterials()

	// Pick index 1 of {Common Wood, Stick}, quantity roll 2 -> 3 units.
	r := &scriptRNG{ints: []int{1, 2}}
	outcome, err := ResolveGather(r, domain.SkillWood, 1, materials)
	require.NoError(t, err)

	assert.Equal(t, "Stick", outcome.Item.Name)
	assert.Equal(t, 3, outcome.Quantity)
	assert.Equal(t, 12, outcome.XP, "10 + 2*level")
}

func TestResolveGather_NoEligibleMaterials(t *testing.T) {
	r := &scriptRNG{}
	_, err := ResolveGather(r, domain.SkillMining, 1, []domain.Item{{Name: "Ancient Root"}})
	assert.ErrorIs(t, err, domain.ErrNoEligibleMaterials)
}

func TestResolveGather_QuantityBounds(t *testing.T) {
	materials := woodMaterials()
	for seed := int64(0); seed < 30; seed++ {
		outcome, err := ResolveGather(rng.NewSeeded(uint64(seed)), domain.SkillWood, 15, materials)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outcome.Quantity, 1)
		assert.LessOrEqual(t, outcome.Quantity, 3)
	}
}
