package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `p.player_id, p.user_id, u.username, u.display_name, p.gold,
	p.level, p.xp, p.rank_letter, p.rank_level, p.adventure_xp,
	p.completed_adventures, p.last_adventure_claim`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.UserID, &p.Username, &p.DisplayName, &p.Gold,
		&p.Level, &p.XP, &p.RankLetter, &p.RankLevel, &p.AdventureXP,
		&p.CompletedAdventures, &p.LastAdventureClaim)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreateByUserID returns the player row for an account, creating it on
// first access. ON CONFLICT DO NOTHING makes concurrent creation safe.
func (r *PlayerRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (*domain.Player, error) {
	player, err := r.getByUserID(ctx, userID)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO players (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return r.getByUserID(ctx, userID)
}

func (r *PlayerRepository) getByUserID(ctx context.Context, userID int64) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+playerColumns+`
		 FROM players p JOIN users u ON u.user_id = p.user_id
		 WHERE p.user_id = $1`, userID)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetProfile returns the player with all six skill tracks. Missing skill rows
// are reported at their defaults without being materialized.
func (r *PlayerRepository) GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+playerColumns+`
		 FROM players p JOIN users u ON u.user_id = p.user_id
		 WHERE p.player_id = $1`, playerID)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_type, level, xp FROM player_skills WHERE player_id = $1`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get skills: %w", err)
	}
	defer rows.Close()

	stored := make(map[domain.SkillType]domain.Skill)
	for rows.Next() {
		s := domain.Skill{PlayerID: playerID}
		if err := rows.Scan(&s.Type, &s.Level, &s.XP); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		stored[s.Type] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}

	profile := &domain.Profile{Player: *player}
	for _, t := range domain.SkillTypes {
		if s, ok := stored[t]; ok {
			profile.Skills = append(profile.Skills, s)
			continue
		}
		profile.Skills = append(profile.Skills, domain.Skill{PlayerID: playerID, Type: t, Level: 1})
	}
	return profile, nil
}

// GetInventory returns the player's non-empty stacks joined with catalog data
func (r *PlayerRepository) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.item_id, i.name, i.kind, i.category, i.rarity, i.tier,
		        i.damage, i.stat_value, i.base_price, inv.quantity
		 FROM inventory inv JOIN items i ON i.item_id = inv.item_id
		 WHERE inv.player_id = $1 AND inv.quantity > 0
		 ORDER BY i.item_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var entry domain.InventoryItem
		err := rows.Scan(&entry.ID, &entry.Name, &entry.Kind, &entry.Category,
			&entry.Rarity, &entry.Tier, &entry.Damage, &entry.StatValue,
			&entry.BasePrice, &entry.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}
	return items, nil
}
