package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// ShopRepository implements shop storage for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

// GetShop returns one shop by id
func (r *ShopRepository) GetShop(ctx context.Context, id int64) (*domain.Shop, error) {
	var s domain.Shop
	err := r.db.QueryRow(ctx,
		`SELECT shop_id, name, category, last_refresh FROM shops WHERE shop_id = $1`,
		id).Scan(&s.ID, &s.Name, &s.Category, &s.LastRefresh)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return &s, nil
}

// ListShops returns all shops
func (r *ShopRepository) ListShops(ctx context.Context) ([]domain.Shop, error) {
	rows, err := r.db.Query(ctx,
		`SELECT shop_id, name, category, last_refresh FROM shops ORDER BY shop_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.LastRefresh); err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shops: %w", err)
	}
	return shops, nil
}

// GetStock returns a shop's current stock joined with catalog data
func (r *ShopRepository) GetStock(ctx context.Context, shopID int64) ([]domain.StockEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ss.shop_id, ss.item_id, i.name, i.category, i.kind, ss.quantity, ss.price
		 FROM shop_stock ss JOIN items i ON i.item_id = ss.item_id
		 WHERE ss.shop_id = $1
		 ORDER BY ss.item_id`, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var e domain.StockEntry
		err := rows.Scan(&e.ShopID, &e.ItemID, &e.ItemName, &e.Category,
			&e.Kind, &e.Quantity, &e.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stock: %w", err)
	}
	return entries, nil
}

// RefreshStock replaces a shop's stock wholesale and stamps last_refresh
func (r *ShopRepository) RefreshStock(ctx context.Context, shopID int64, entries []domain.StockEntry, refreshedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer safeRollback(ctx, tx)

	if err := replaceShopStock(ctx, tx, shopID, entries, refreshedAt); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit stock refresh: %w", err)
	}
	return nil
}

// BeginTx starts a transaction for buy/sell
func (r *ShopRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	return beginTx(ctx, r.db)
}

func replaceShopStock(ctx context.Context, tx pgx.Tx, shopID int64, entries []domain.StockEntry, refreshedAt time.Time) error {
	if _, err := tx.Exec(ctx, `DELETE FROM shop_stock WHERE shop_id = $1`, shopID); err != nil {
		return fmt.Errorf("failed to clear stock: %w", err)
	}
	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO shop_stock (shop_id, item_id, quantity, price)
			 VALUES ($1, $2, $3, $4)`,
			shopID, e.ItemID, e.Quantity, e.Price)
		if err != nil {
			return fmt.Errorf("failed to insert stock entry: %w", err)
		}
	}
	_, err := tx.Exec(ctx,
		`UPDATE shops SET last_refresh = $2 WHERE shop_id = $1`, shopID, refreshedAt)
	if err != nil {
		return fmt.Errorf("failed to stamp refresh: %w", err)
	}
	return nil
}
