// Package catalog serves immutable reference data (items, recipes, monsters,
// adventure templates) behind an in-memory cache. Catalog rows only change on
// deploy, so a short TTL is enough to pick up reseeds without a restart.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// Service is the read side of the game catalog.
type Service interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	// Materials returns the gatherable items of one gathering category.
	Materials(ctx context.Context, category domain.SkillType) ([]domain.Item, error)
	// DowngradePool returns the products one tier below the given tier in
	// the same category. Empty for the lowest tier.
	DowngradePool(ctx context.Context, category string, tier domain.Tier) ([]domain.Item, error)
	ListMonsters(ctx context.Context) ([]domain.Monster, error)
	MonstersByTier(ctx context.Context, tier domain.Tier) ([]domain.Monster, error)
	GetTemplate(ctx context.Context, id int64) (*domain.AdventureTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.AdventureTemplate, error)
}

type service struct {
	repo  repository.Catalog
	cache *catalogCache
}

// NewService creates a catalog service over the given repository.
func NewService(repo repository.Catalog) Service {
	return &service{
		repo:  repo,
		cache: newCatalogCache(defaultCacheSize, defaultCacheTTL),
	}
}

func (s *service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	key := fmt.Sprintf("item:id:%d", id)
	if item, ok := s.cache.getItem(key); ok {
		return item, nil
	}
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.setItem(key, item)
	return item, nil
}

func (s *service) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	key := "item:name:" + name
	if item, ok := s.cache.getItem(key); ok {
		return item, nil
	}
	item, err := s.repo.GetItemByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.setItem(key, item)
	return item, nil
}

func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	if items, ok := s.cache.getItemList("items:all"); ok {
		return items, nil
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.setItemList("items:all", items)
	return items, nil
}

func (s *service) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	if recipe, ok := s.cache.getRecipe(id); ok {
		return recipe, nil
	}
	recipe, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.setRecipe(id, recipe)
	return recipe, nil
}

func (s *service) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

func (s *service) Materials(ctx context.Context, category domain.SkillType) ([]domain.Item, error) {
	key := "materials:" + string(category)
	if items, ok := s.cache.getItemList(key); ok {
		return items, nil
	}
	items, err := s.repo.ListMaterials(ctx, string(category))
	if err != nil {
		return nil, err
	}
	s.cache.setItemList(key, items)
	return items, nil
}

func (s *service) DowngradePool(ctx context.Context, category string, tier domain.Tier) ([]domain.Item, error) {
	below, ok := tier.Below()
	if !ok {
		return nil, nil
	}
	key := "products:" + category + ":" + string(below)
	if items, found := s.cache.getItemList(key); found {
		return items, nil
	}
	items, err := s.repo.ListProducts(ctx, category, below)
	if err != nil {
		return nil, err
	}
	s.cache.setItemList(key, items)
	return items, nil
}

func (s *service) ListMonsters(ctx context.Context) ([]domain.Monster, error) {
	if monsters, ok := s.cache.getMonsters("monsters:all"); ok {
		return monsters, nil
	}
	monsters, err := s.repo.ListMonsters(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.setMonsters("monsters:all", monsters)
	return monsters, nil
}

func (s *service) MonstersByTier(ctx context.Context, tier domain.Tier) ([]domain.Monster, error) {
	key := "monsters:" + string(tier)
	if monsters, ok := s.cache.getMonsters(key); ok {
		return monsters, nil
	}
	monsters, err := s.repo.ListMonstersByTier(ctx, tier)
	if err != nil {
		return nil, err
	}
	s.cache.setMonsters(key, monsters)
	return monsters, nil
}

func (s *service) GetTemplate(ctx context.Context, id int64) (*domain.AdventureTemplate, error) {
	if tpl, ok := s.cache.getTemplate(id); ok {
		return tpl, nil
	}
	tpl, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.setTemplate(id, tpl)
	return tpl, nil
}

func (s *service) ListTemplates(ctx context.Context) ([]domain.AdventureTemplate, error) {
	return s.repo.ListTemplates(ctx)
}
