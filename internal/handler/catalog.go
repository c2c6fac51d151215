package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/catalog"
	"github.com/emberfall-games/guildhall/internal/logger"
)

// CatalogHandler serves read-only reference data
type CatalogHandler struct {
	catalogSvc catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Items handles the item list endpoint
// @Summary List all items
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Item
// @Router /items [get]
func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogSvc.ListItems(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list items", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Recipes handles the recipe list endpoint
// @Summary List all recipes
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Recipe
// @Router /recipes [get]
func (h *CatalogHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.catalogSvc.ListRecipes(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list recipes", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipes)
}

// Templates handles the adventure template list endpoint
// @Summary List adventure templates
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.AdventureTemplate
// @Router /adventures [get]
func (h *CatalogHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.catalogSvc.ListTemplates(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list templates", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

// Monsters handles the monster list endpoint
// @Summary List all monsters
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Monster
// @Router /monsters [get]
func (h *CatalogHandler) Monsters(w http.ResponseWriter, r *http.Request) {
	monsters, err := h.catalogSvc.ListMonsters(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list monsters", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, monsters)
}
