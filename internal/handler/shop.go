package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/shop"
)

// TradeRequest is the body for both buy and sell
type TradeRequest struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// ShopHandler handles shop HTTP requests
type ShopHandler struct {
	shopSvc shop.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopSvc shop.Service) *ShopHandler {
	return &ShopHandler{shopSvc: shopSvc}
}

// List handles the shop list endpoint
// @Summary List shops
// @Tags shop
// @Produce json
// @Success 200 {array} domain.Shop
// @Router /shops [get]
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shopSvc.ListShops(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list shops", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shops)
}

// Stock handles the shop stock endpoint
// @Summary Get a shop's stock
// @Description Returns current stock, regenerating it when stale
// @Tags shop
// @Produce json
// @Param shopID path int true "Shop ID"
// @Success 200 {array} domain.StockEntry
// @Failure 404 {object} ErrorResponse "Shop not found"
// @Router /shops/{shopID}/stock [get]
func (h *ShopHandler) Stock(w http.ResponseWriter, r *http.Request) {
	shopID, ok := URLParamInt64(w, r, "shopID")
	if !ok {
		return
	}

	stock, err := h.shopSvc.Stock(r.Context(), shopID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if stock == nil {
		stock = []domain.StockEntry{}
	}
	respondJSON(w, http.StatusOK, stock)
}

// Buy handles the buy endpoint
// @Summary Buy an item
// @Description Buys from the shop's current stock at the stored price
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path int true "Shop ID"
// @Param request body TradeRequest true "Item and quantity"
// @Success 200 {object} shop.PurchaseResult
// @Failure 422 {object} ErrorResponse "Not enough stock or gold"
// @Router /shops/{shopID}/buy [post]
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	shopID, ok := URLParamInt64(w, r, "shopID")
	if !ok {
		return
	}
	var req TradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
		return
	}

	result, err := h.shopSvc.Buy(r.Context(), player.ID, shopID, req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	metrics.ItemsBought.WithLabelValues(result.ItemName).Add(float64(result.Quantity))
	metrics.GoldSpent.Add(float64(result.TotalCost))
	respondJSON(w, http.StatusOK, result)
}

// Sell handles the sell endpoint
// @Summary Sell an item
// @Description Sells any held item to any shop at 80% of base price
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path int true "Shop ID"
// @Param request body TradeRequest true "Item and quantity"
// @Success 200 {object} shop.SaleResult
// @Failure 422 {object} ErrorResponse "Not enough items"
// @Router /shops/{shopID}/sell [post]
func (h *ShopHandler) Sell(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	shopID, ok := URLParamInt64(w, r, "shopID")
	if !ok {
		return
	}
	var req TradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
		return
	}

	result, err := h.shopSvc.Sell(r.Context(), player.ID, shopID, req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	metrics.ItemsSold.WithLabelValues(result.ItemName).Add(float64(result.Quantity))
	metrics.GoldEarned.Add(float64(result.TotalPaid))
	respondJSON(w, http.StatusOK, result)
}
