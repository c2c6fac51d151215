package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// TaskRepository implements active-task storage for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListTasks returns a player's in-flight tasks
func (r *TaskRepository) ListTasks(ctx context.Context, playerID int64) ([]domain.ActiveTask, error) {
	rows, err := r.db.Query(ctx,
		`SELECT task_id, player_id, task_type, target_id, category, payload,
		        start_time, end_time
		 FROM active_tasks WHERE player_id = $1 ORDER BY task_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ActiveTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

// BeginTx starts a transaction covering tasks, players, skills, inventory,
// guilds and shop stock.
func (r *TaskRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	return beginTx(ctx, r.db)
}

// Tx implements repository.Tx on a single pgx transaction.
type Tx struct {
	tx pgx.Tx
}

func beginTx(ctx context.Context, db *pgxpool.Pool) (*Tx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return err
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.ActiveTask, error) {
	var task domain.ActiveTask
	var payload []byte
	err := row.Scan(&task.ID, &task.PlayerID, &task.Type, &task.TargetID,
		&task.Category, &payload, &task.StartTime, &task.EndTime)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		task.Payload = &domain.AdventurePayload{}
		if err := json.Unmarshal(payload, task.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
		}
	}
	return &task, nil
}

// GetTaskForUpdate locks and returns the player's task of one type
func (t *Tx) GetTaskForUpdate(ctx context.Context, playerID int64, taskType domain.TaskType) (*domain.ActiveTask, error) {
	task, err := scanTask(t.tx.QueryRow(ctx,
		`SELECT task_id, player_id, task_type, target_id, category, payload,
		        start_time, end_time
		 FROM active_tasks WHERE player_id = $1 AND task_type = $2
		 FOR UPDATE`, playerID, string(taskType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveTask
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// InsertTask creates a task row, filling in the generated id
func (t *Tx) InsertTask(ctx context.Context, task *domain.ActiveTask) error {
	var payload []byte
	if task.Payload != nil {
		var err error
		payload, err = json.Marshal(task.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal task payload: %w", err)
		}
	}

	err := t.tx.QueryRow(ctx,
		`INSERT INTO active_tasks (player_id, task_type, target_id, category, payload, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING task_id`,
		task.PlayerID, string(task.Type), task.TargetID, string(task.Category),
		payload, task.StartTime, task.EndTime,
	).Scan(&task.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrTaskAlreadyActive
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// DeleteTask removes a claimed task
func (t *Tx) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM active_tasks WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetPlayerForUpdate locks and returns a player row
func (t *Tx) GetPlayerForUpdate(ctx context.Context, playerID int64) (*domain.Player, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+playerColumns+`
		 FROM players p JOIN users u ON u.user_id = p.user_id
		 WHERE p.player_id = $1
		 FOR UPDATE OF p`, playerID)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// UpdatePlayerProgress persists the rank and adventure fields of a locked
// player row
func (t *Tx) UpdatePlayerProgress(ctx context.Context, player *domain.Player) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE players SET level = $2, xp = $3, rank_letter = $4, rank_level = $5,
		        adventure_xp = $6, completed_adventures = $7, last_adventure_claim = $8
		 WHERE player_id = $1`,
		player.ID, player.Level, player.XP, string(player.RankLetter),
		player.RankLevel, player.AdventureXP, player.CompletedAdventures,
		player.LastAdventureClaim)
	if err != nil {
		return fmt.Errorf("failed to update player progress: %w", err)
	}
	return nil
}

// AdjustGold applies a gold delta, failing rather than going negative
func (t *Tx) AdjustGold(ctx context.Context, playerID int64, delta int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE players SET gold = gold + $2 WHERE player_id = $1`, playerID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientGold
		}
		return fmt.Errorf("failed to adjust gold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// GetSkillForUpdate locks and returns one skill row, materializing it at the
// defaults when missing
func (t *Tx) GetSkillForUpdate(ctx context.Context, playerID int64, skillType domain.SkillType) (domain.Skill, error) {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO player_skills (player_id, skill_type) VALUES ($1, $2)
		 ON CONFLICT (player_id, skill_type) DO NOTHING`,
		playerID, string(skillType))
	if err != nil {
		return domain.Skill{}, fmt.Errorf("failed to materialize skill: %w", err)
	}

	skill := domain.Skill{PlayerID: playerID, Type: skillType}
	err = t.tx.QueryRow(ctx,
		`SELECT level, xp FROM player_skills
		 WHERE player_id = $1 AND skill_type = $2
		 FOR UPDATE`, playerID, string(skillType)).Scan(&skill.Level, &skill.XP)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("failed to get skill: %w", err)
	}
	return skill, nil
}

// UpdateSkill persists a locked skill row
func (t *Tx) UpdateSkill(ctx context.Context, skill domain.Skill) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE player_skills SET level = $3, xp = $4
		 WHERE player_id = $1 AND skill_type = $2`,
		skill.PlayerID, string(skill.Type), skill.Level, skill.XP)
	if err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return nil
}

// GetItemQuantity returns a stack size, zero when the stack doesn't exist
func (t *Tx) GetItemQuantity(ctx context.Context, playerID, itemID int64) (int, error) {
	var quantity int
	err := t.tx.QueryRow(ctx,
		`SELECT quantity FROM inventory WHERE player_id = $1 AND item_id = $2
		 FOR UPDATE`, playerID, itemID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get item quantity: %w", err)
	}
	return quantity, nil
}

// GetCategoryHoldings locks and returns a player's non-empty stacks of one
// item category, ascending by item id
func (t *Tx) GetCategoryHoldings(ctx context.Context, playerID int64, category, excludeItem string) ([]domain.InventoryEntry, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT inv.player_id, inv.item_id, inv.quantity
		 FROM inventory inv JOIN items i ON i.item_id = inv.item_id
		 WHERE inv.player_id = $1 AND i.category = $2 AND i.name <> $3
		       AND inv.quantity > 0
		 ORDER BY inv.item_id
		 FOR UPDATE OF inv`, playerID, category, excludeItem)
	if err != nil {
		return nil, fmt.Errorf("failed to get category holdings: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.PlayerID, &e.ItemID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}
	return entries, nil
}

// AddItem upserts quantity onto a stack
func (t *Tx) AddItem(ctx context.Context, playerID, itemID int64, quantity int) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO inventory (player_id, item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, item_id) DO UPDATE
		 SET quantity = inventory.quantity + EXCLUDED.quantity`,
		playerID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	return nil
}

// RemoveItem deducts from a stack, failing whole rather than going negative
func (t *Tx) RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE inventory SET quantity = quantity - $3
		 WHERE player_id = $1 AND item_id = $2`,
		playerID, itemID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientItems
		}
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientItems
	}
	return nil
}

// GetGuildByPlayerForUpdate locks and returns the guild a player belongs to
func (t *Tx) GetGuildByPlayerForUpdate(ctx context.Context, playerID int64) (*domain.Guild, error) {
	var g domain.Guild
	err := t.tx.QueryRow(ctx,
		`SELECT g.guild_id, g.name, g.class, g.leader_id
		 FROM guilds g JOIN guild_members gm ON gm.guild_id = g.guild_id
		 WHERE gm.player_id = $1
		 FOR UPDATE OF g`, playerID).Scan(&g.ID, &g.Name, &g.Class, &g.LeaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotInGuild
		}
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	return &g, nil
}

// GetGuildMembers returns the roster joined with promotion-relevant fields
func (t *Tx) GetGuildMembers(ctx context.Context, guildID int64) ([]domain.GuildMember, error) {
	return queryGuildMembers(ctx, t.tx, guildID)
}

// UpdateGuildClass persists a promotion
func (t *Tx) UpdateGuildClass(ctx context.Context, guildID int64, class int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE guilds SET class = $2 WHERE guild_id = $1`, guildID, class)
	if err != nil {
		return fmt.Errorf("failed to update guild class: %w", err)
	}
	return nil
}

// GetStockForUpdate locks and returns one shop stock entry
func (t *Tx) GetStockForUpdate(ctx context.Context, shopID, itemID int64) (*domain.StockEntry, error) {
	var entry domain.StockEntry
	err := t.tx.QueryRow(ctx,
		`SELECT ss.shop_id, ss.item_id, i.name, i.category, i.kind, ss.quantity, ss.price
		 FROM shop_stock ss JOIN items i ON i.item_id = ss.item_id
		 WHERE ss.shop_id = $1 AND ss.item_id = $2
		 FOR UPDATE OF ss`, shopID, itemID).Scan(
		&entry.ShopID, &entry.ItemID, &entry.ItemName, &entry.Category,
		&entry.Kind, &entry.Quantity, &entry.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get stock entry: %w", err)
	}
	return &entry, nil
}

// AdjustStock applies a quantity delta to a stock entry
func (t *Tx) AdjustStock(ctx context.Context, shopID, itemID int64, delta int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE shop_stock SET quantity = quantity + $3
		 WHERE shop_id = $1 AND item_id = $2`, shopID, itemID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ReplaceShopStock swaps a shop's stock wholesale and stamps the refresh
func (t *Tx) ReplaceShopStock(ctx context.Context, shopID int64, entries []domain.StockEntry, refreshedAt time.Time) error {
	return replaceShopStock(ctx, t.tx, shopID, entries, refreshedAt)
}
