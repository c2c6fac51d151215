package repository

import (
	"context"
	"time"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// User provides account storage for the auth service.
type User interface {
	// CreateUser inserts a user and their player row atomically.
	// Returns domain.ErrUsernameTaken on a duplicate username.
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, displayName, email string) error
}

// Player provides the player aggregate with self-healing row creation.
type Player interface {
	// GetOrCreateByUserID returns the player for an account, creating the
	// row (and default skill rows) if missing. Idempotent and race-safe.
	GetOrCreateByUserID(ctx context.Context, userID int64) (*domain.Player, error)
	// GetProfile returns the player joined with all six skill rows,
	// materializing missing ones with defaults.
	GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error)
	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryItem, error)
}

// Catalog is read-only reference data access.
type Catalog interface {
	GetItemByID(ctx context.Context, id int64) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	// ListMaterials returns material-kind items of a gathering category.
	ListMaterials(ctx context.Context, category string) ([]domain.Item, error)
	// ListProducts returns product-kind items of a category and tier,
	// the downgrade candidate pool.
	ListProducts(ctx context.Context, category string, tier domain.Tier) ([]domain.Item, error)
	ListMonsters(ctx context.Context) ([]domain.Monster, error)
	ListMonstersByTier(ctx context.Context, tier domain.Tier) ([]domain.Monster, error)
	GetTemplate(ctx context.Context, id int64) (*domain.AdventureTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.AdventureTemplate, error)
}

// Task provides active-task reads and the transactional entry point for the
// scheduler.
type Task interface {
	ListTasks(ctx context.Context, playerID int64) ([]domain.ActiveTask, error)
	BeginTx(ctx context.Context) (Tx, error)
}

// Guild provides guild reads/creation and the transactional entry point for
// promotion.
type Guild interface {
	// CreateGuild creates a guild with the creator as leader and sole
	// member. Returns domain.ErrGuildNameTaken or domain.ErrAlreadyInGuild.
	CreateGuild(ctx context.Context, name string, leaderID int64) (*domain.Guild, error)
	GetGuildByPlayer(ctx context.Context, playerID int64) (*domain.Guild, error)
	GetGuildMembers(ctx context.Context, guildID int64) ([]domain.GuildMember, error)
	BeginTx(ctx context.Context) (Tx, error)
}

// Shop provides shop reads, wholesale restock, and the transactional entry
// point for buy/sell.
type Shop interface {
	GetShop(ctx context.Context, id int64) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]domain.Shop, error)
	GetStock(ctx context.Context, shopID int64) ([]domain.StockEntry, error)
	// RefreshStock replaces a shop's stock wholesale and stamps
	// last_refresh. Safe to race; the losing writer's rows win, which is
	// acceptable for cosmetic economy state.
	RefreshStock(ctx context.Context, shopID int64, entries []domain.StockEntry, refreshedAt time.Time) error
	BeginTx(ctx context.Context) (Tx, error)
}
