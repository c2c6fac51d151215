// Package shop implements per-category stores with lazily regenerated stock.
// Stock older than an hour is rerolled on the next read; nothing runs on a
// timer.
package shop

import (
	"context"
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/catalog"
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/repository"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// PurchaseResult reports a completed buy.
type PurchaseResult struct {
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	TotalCost int    `json:"total_cost"`
}

// SaleResult reports a completed sell.
type SaleResult struct {
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	TotalPaid int    `json:"total_paid"`
}

// Service defines the interface for shop operations.
type Service interface {
	ListShops(ctx context.Context) ([]domain.Shop, error)
	// Stock returns a shop's current stock, regenerating it first when
	// stale.
	Stock(ctx context.Context, shopID int64) ([]domain.StockEntry, error)
	Buy(ctx context.Context, playerID, shopID, itemID int64, quantity int) (*PurchaseResult, error)
	// Sell accepts any item at any shop for 80% of base price, regardless
	// of the shop's category or current stock.
	Sell(ctx context.Context, playerID, shopID, itemID int64, quantity int) (*SaleResult, error)
}

type service struct {
	repo    repository.Shop
	catalog catalog.Service
	clock   clockwork.Clock
	rng     rng.RNG
}

// NewService creates a shop service.
func NewService(repo repository.Shop, cat catalog.Service, clock clockwork.Clock, r rng.RNG) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		clock:   clock,
		rng:     r,
	}
}

func (s *service) ListShops(ctx context.Context) ([]domain.Shop, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

func (s *service) Stock(ctx context.Context, shopID int64) ([]domain.StockEntry, error) {
	shop, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFresh(ctx, shop); err != nil {
		return nil, err
	}
	stock, err := s.repo.GetStock(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return stock, nil
}

// ensureFresh rerolls the shop's stock when the refresh window has passed.
// Two racing refreshes both regenerate; last writer wins, which is fine for
// cosmetic economy state.
func (s *service) ensureFresh(ctx context.Context, shop *domain.Shop) error {
	now := s.clock.Now()
	if now.Sub(shop.LastRefresh) <= domain.ShopRefreshWindow {
		return nil
	}

	items, err := s.catalog.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	var entries []domain.StockEntry
	for _, item := range items {
		if item.Category != shop.Category {
			continue
		}
		quantity := domain.ShopStockMinQuantity + s.rng.IntN(domain.ShopStockMaxQuantity-domain.ShopStockMinQuantity)
		factor := domain.ShopPriceFactorMin + s.rng.Float64()*domain.ShopPriceFactorSpread
		entries = append(entries, domain.StockEntry{
			ShopID:   shop.ID,
			ItemID:   item.ID,
			ItemName: item.Name,
			Category: item.Category,
			Kind:     string(item.Kind),
			Quantity: quantity,
			Price:    int(math.Floor(float64(item.BasePrice) * factor)),
		})
	}

	if err := s.repo.RefreshStock(ctx, shop.ID, entries, now); err != nil {
		return fmt.Errorf("failed to refresh stock: %w", err)
	}
	shop.LastRefresh = now
	metrics.ShopRefreshes.Inc()
	logger.FromContext(ctx).Info("Shop stock refreshed", "shopID", shop.ID, "items", len(entries))
	return nil
}

func (s *service) Buy(ctx context.Context, playerID, shopID, itemID int64, quantity int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "playerID", playerID, "shopID", shopID, "itemID", itemID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	shop, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFresh(ctx, shop); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	stock, err := tx.GetStockForUpdate(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	if stock.Quantity < quantity {
		return nil, fmt.Errorf("%w: %d of %d available", domain.ErrInsufficientStock, stock.Quantity, quantity)
	}

	cost := stock.Price * quantity
	if err := tx.AdjustGold(ctx, playerID, -cost); err != nil {
		return nil, err
	}
	if err := tx.AdjustStock(ctx, shopID, itemID, -quantity); err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	if err := tx.AddItem(ctx, playerID, itemID, quantity); err != nil {
		return nil, fmt.Errorf("failed to grant item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ItemsBought.WithLabelValues(stock.ItemName).Add(float64(quantity))
	metrics.GoldSpent.Add(float64(cost))
	log.Info("Purchase complete", "playerID", playerID, "item", stock.ItemName, "quantity", quantity, "cost", cost)
	return &PurchaseResult{
		ItemName:  stock.ItemName,
		Quantity:  quantity,
		UnitPrice: stock.Price,
		TotalCost: cost,
	}, nil
}

func (s *service) Sell(ctx context.Context, playerID, shopID, itemID int64, quantity int) (*SaleResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Sell called", "playerID", playerID, "shopID", shopID, "itemID", itemID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	// The shop must exist, but what it sells doesn't matter for selling.
	if _, err := s.repo.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.RemoveItem(ctx, playerID, itemID, quantity); err != nil {
		return nil, err
	}
	unitPrice := item.SellPrice()
	paid := unitPrice * quantity
	if err := tx.AdjustGold(ctx, playerID, paid); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ItemsSold.WithLabelValues(item.Name).Add(float64(quantity))
	metrics.GoldEarned.Add(float64(paid))
	log.Info("Sale complete", "playerID", playerID, "item", item.Name, "quantity", quantity, "paid", paid)
	return &SaleResult{
		ItemName:  item.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		TotalPaid: paid,
	}, nil
}
