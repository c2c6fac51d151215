package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// catalogCache holds one expirable LRU per cached shape. Entries rotate out
// on TTL; there is no explicit invalidation because catalog rows are
// reference data.
type catalogCache struct {
	items     *expirable.LRU[string, *domain.Item]
	itemLists *expirable.LRU[string, []domain.Item]
	recipes   *expirable.LRU[int64, *domain.Recipe]
	monsters  *expirable.LRU[string, []domain.Monster]
	templates *expirable.LRU[int64, *domain.AdventureTemplate]
}

func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		items:     expirable.NewLRU[string, *domain.Item](size, nil, ttl),
		itemLists: expirable.NewLRU[string, []domain.Item](size, nil, ttl),
		recipes:   expirable.NewLRU[int64, *domain.Recipe](size, nil, ttl),
		monsters:  expirable.NewLRU[string, []domain.Monster](size, nil, ttl),
		templates: expirable.NewLRU[int64, *domain.AdventureTemplate](size, nil, ttl),
	}
}

func (c *catalogCache) getItem(key string) (*domain.Item, bool) {
	return c.items.Get(key)
}

func (c *catalogCache) setItem(key string, item *domain.Item) {
	c.items.Add(key, item)
}

func (c *catalogCache) getItemList(key string) ([]domain.Item, bool) {
	return c.itemLists.Get(key)
}

func (c *catalogCache) setItemList(key string, items []domain.Item) {
	c.itemLists.Add(key, items)
}

func (c *catalogCache) getRecipe(id int64) (*domain.Recipe, bool) {
	return c.recipes.Get(id)
}

func (c *catalogCache) setRecipe(id int64, recipe *domain.Recipe) {
	c.recipes.Add(id, recipe)
}

func (c *catalogCache) getMonsters(key string) ([]domain.Monster, bool) {
	return c.monsters.Get(key)
}

func (c *catalogCache) setMonsters(key string, monsters []domain.Monster) {
	c.monsters.Add(key, monsters)
}

func (c *catalogCache) getTemplate(id int64) (*domain.AdventureTemplate, bool) {
	return c.templates.Get(id)
}

func (c *catalogCache) setTemplate(id int64, tpl *domain.AdventureTemplate) {
	c.templates.Add(id, tpl)
}
