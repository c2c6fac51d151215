package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// GuildRepository implements guild storage for PostgreSQL
type GuildRepository struct {
	db *pgxpool.Pool
}

// NewGuildRepository creates a new GuildRepository
func NewGuildRepository(db *pgxpool.Pool) *GuildRepository {
	return &GuildRepository{db: db}
}

// CreateGuild creates a guild with the creator as leader and sole member
func (r *GuildRepository) CreateGuild(ctx context.Context, name string, leaderID int64) (*domain.Guild, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer safeRollback(ctx, tx)

	guild := &domain.Guild{Name: name, Class: domain.GuildStartingClass, LeaderID: leaderID}
	err = tx.QueryRow(ctx,
		`INSERT INTO guilds (name, class, leader_id) VALUES ($1, $2, $3)
		 RETURNING guild_id`, name, guild.Class, leaderID).Scan(&guild.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, domain.ErrGuildNameTaken
		}
		return nil, fmt.Errorf("failed to create guild: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO guild_members (guild_id, player_id) VALUES ($1, $2)`,
		guild.ID, leaderID)
	if err != nil {
		// player_id is unique across all guilds
		if isUniqueViolation(err, "") {
			return nil, domain.ErrAlreadyInGuild
		}
		return nil, fmt.Errorf("failed to add guild leader: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit guild creation: %w", err)
	}
	return guild, nil
}

// GetGuildByPlayer returns the guild a player belongs to
func (r *GuildRepository) GetGuildByPlayer(ctx context.Context, playerID int64) (*domain.Guild, error) {
	var g domain.Guild
	err := r.db.QueryRow(ctx,
		`SELECT g.guild_id, g.name, g.class, g.leader_id
		 FROM guilds g JOIN guild_members gm ON gm.guild_id = g.guild_id
		 WHERE gm.player_id = $1`, playerID).Scan(&g.ID, &g.Name, &g.Class, &g.LeaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotInGuild
		}
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	return &g, nil
}

// GetGuildMembers returns the roster joined with promotion-relevant fields
func (r *GuildRepository) GetGuildMembers(ctx context.Context, guildID int64) ([]domain.GuildMember, error) {
	return queryGuildMembers(ctx, r.db, guildID)
}

// BeginTx starts a transaction for guild promotion
func (r *GuildRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	return beginTx(ctx, r.db)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryGuildMembers(ctx context.Context, q querier, guildID int64) ([]domain.GuildMember, error) {
	rows, err := q.Query(ctx,
		`SELECT p.player_id, u.username, u.display_name, p.rank_letter,
		        p.rank_level, p.completed_adventures
		 FROM guild_members gm
		 JOIN players p ON p.player_id = gm.player_id
		 JOIN users u ON u.user_id = p.user_id
		 WHERE gm.guild_id = $1
		 ORDER BY p.player_id`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild members: %w", err)
	}
	defer rows.Close()

	var members []domain.GuildMember
	for rows.Next() {
		var m domain.GuildMember
		err := rows.Scan(&m.PlayerID, &m.Username, &m.DisplayName,
			&m.RankLetter, &m.RankLevel, &m.CompletedAdventures)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guild member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guild members: %w", err)
	}
	return members, nil
}
