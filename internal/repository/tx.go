package repository

import (
	"context"
	"errors"
	"time"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
)

// Tx defines the interface for transactional operations. Start and Claim are
// check-then-act sequences; everything between BeginTx and Commit sees one
// consistent snapshot, with row locks (FOR UPDATE) where two requests could
// race for the same reward.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Active tasks. GetTaskForUpdate returns domain.ErrNoActiveTask when
	// no task of the type exists; InsertTask returns
	// domain.ErrTaskAlreadyActive when the (player, type) slot is taken.
	GetTaskForUpdate(ctx context.Context, playerID int64, taskType domain.TaskType) (*domain.ActiveTask, error)
	InsertTask(ctx context.Context, task *domain.ActiveTask) error
	DeleteTask(ctx context.Context, taskID int64) error

	// Players and skills. Missing skill rows are materialized with
	// defaults; the unique constraint makes concurrent creation safe.
	GetPlayerForUpdate(ctx context.Context, playerID int64) (*domain.Player, error)
	UpdatePlayerProgress(ctx context.Context, player *domain.Player) error
	AdjustGold(ctx context.Context, playerID int64, delta int) error
	GetSkillForUpdate(ctx context.Context, playerID int64, skillType domain.SkillType) (domain.Skill, error)
	UpdateSkill(ctx context.Context, skill domain.Skill) error

	// Inventory. RemoveItem fails with domain.ErrInsufficientItems rather
	// than let a quantity go negative. GetCategoryHoldings returns stacks
	// in ascending item id so multi-stack drains are deterministic.
	GetItemQuantity(ctx context.Context, playerID, itemID int64) (int, error)
	GetCategoryHoldings(ctx context.Context, playerID int64, category, excludeItem string) ([]domain.InventoryEntry, error)
	AddItem(ctx context.Context, playerID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) error

	// Guilds.
	GetGuildByPlayerForUpdate(ctx context.Context, playerID int64) (*domain.Guild, error)
	GetGuildMembers(ctx context.Context, guildID int64) ([]domain.GuildMember, error)
	UpdateGuildClass(ctx context.Context, guildID int64, class int) error

	// Shop stock.
	GetStockForUpdate(ctx context.Context, shopID, itemID int64) (*domain.StockEntry, error)
	AdjustStock(ctx context.Context, shopID, itemID int64, delta int) error
	ReplaceShopStock(ctx context.Context, shopID int64, entries []domain.StockEntry, refreshedAt time.Time) error
}

// ErrTxClosed is returned by Rollback after a successful Commit; SafeRollback
// treats it as benign.
var ErrTxClosed = errors.New("transaction is closed")

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
