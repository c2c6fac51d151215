package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// CatalogRepository implements read-only reference data access for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetItemByID retrieves an item by its id
func (r *CatalogRepository) GetItemByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE item_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}
	return item, nil
}

// GetItemByName retrieves an item by its exact name
func (r *CatalogRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return item, nil
}

// ListItems returns the full item catalog
func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	return r.listItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
}

// ListMaterials returns material-kind items of a gathering category
func (r *CatalogRepository) ListMaterials(ctx context.Context, category string) ([]domain.Item, error) {
	return r.listItems(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE kind = 'material' AND category = $1 ORDER BY item_id`, category)
}

// ListProducts returns product-kind items of a category and tier
func (r *CatalogRepository) ListProducts(ctx context.Context, category string, tier domain.Tier) ([]domain.Item, error) {
	return r.listItems(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE kind = 'product' AND category = $1 AND tier = $2 ORDER BY item_id`,
		category, string(tier))
}

func (r *CatalogRepository) listItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

// GetRecipe retrieves a recipe with its ingredient list
func (r *CatalogRepository) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.QueryRow(ctx,
		`SELECT recipe_id, item_id, skill_type, duration_seconds, min_skill_level,
		        success_rate, xp_reward
		 FROM recipes WHERE recipe_id = $1`, id).Scan(
		&recipe.ID, &recipe.ItemID, &recipe.SkillType, &recipe.DurationSeconds,
		&recipe.MinSkillLevel, &recipe.SuccessRate, &recipe.XPReward)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	ingredients, err := r.listIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	return &recipe, nil
}

// ListRecipes returns all recipes with their ingredient lists
func (r *CatalogRepository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx,
		`SELECT recipe_id, item_id, skill_type, duration_seconds, min_skill_level,
		        success_rate, xp_reward
		 FROM recipes ORDER BY recipe_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	index := make(map[int64]int)
	for rows.Next() {
		var recipe domain.Recipe
		err := rows.Scan(&recipe.ID, &recipe.ItemID, &recipe.SkillType,
			&recipe.DurationSeconds, &recipe.MinSkillLevel, &recipe.SuccessRate,
			&recipe.XPReward)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		index[recipe.ID] = len(recipes)
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	ingRows, err := r.db.Query(ctx,
		`SELECT ri.recipe_id, ri.item_id, i.name, ri.quantity
		 FROM recipe_ingredients ri JOIN items i ON i.item_id = ri.item_id
		 ORDER BY ri.recipe_id, ri.item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var recipeID int64
		var ing domain.RecipeIngredient
		if err := ingRows.Scan(&recipeID, &ing.ItemID, &ing.ItemName, &ing.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, ing)
		}
	}
	if err := ingRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return recipes, nil
}

func (r *CatalogRepository) listIngredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ri.item_id, i.name, ri.quantity
		 FROM recipe_ingredients ri JOIN items i ON i.item_id = ri.item_id
		 WHERE ri.recipe_id = $1 ORDER BY ri.item_id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.RecipeIngredient
	for rows.Next() {
		var ing domain.RecipeIngredient
		if err := rows.Scan(&ing.ItemID, &ing.ItemName, &ing.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return ingredients, nil
}

// ListMonsters returns the full monster catalog
func (r *CatalogRepository) ListMonsters(ctx context.Context) ([]domain.Monster, error) {
	return r.listMonsters(ctx, `SELECT monster_id, name, tier FROM monsters ORDER BY monster_id`)
}

// ListMonstersByTier returns the monsters of one tier
func (r *CatalogRepository) ListMonstersByTier(ctx context.Context, tier domain.Tier) ([]domain.Monster, error) {
	return r.listMonsters(ctx,
		`SELECT monster_id, name, tier FROM monsters WHERE tier = $1 ORDER BY monster_id`,
		string(tier))
}

func (r *CatalogRepository) listMonsters(ctx context.Context, query string, args ...any) ([]domain.Monster, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}
	defer rows.Close()

	var monsters []domain.Monster
	for rows.Next() {
		var m domain.Monster
		if err := rows.Scan(&m.ID, &m.Name, &m.Tier); err != nil {
			return nil, fmt.Errorf("failed to scan monster: %w", err)
		}
		monsters = append(monsters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monsters: %w", err)
	}
	return monsters, nil
}

// GetTemplate retrieves an adventure template by id
func (r *CatalogRepository) GetTemplate(ctx context.Context, id int64) (*domain.AdventureTemplate, error) {
	var tpl domain.AdventureTemplate
	err := r.db.QueryRow(ctx,
		`SELECT template_id, name, description, type FROM adventure_templates
		 WHERE template_id = $1`, id).Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &tpl, nil
}

// ListTemplates returns all adventure templates
func (r *CatalogRepository) ListTemplates(ctx context.Context) ([]domain.AdventureTemplate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT template_id, name, description, type FROM adventure_templates
		 ORDER BY template_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.AdventureTemplate
	for rows.Next() {
		var tpl domain.AdventureTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Type); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}
	return templates, nil
}
