package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/task"
)

// StartCraftRequest starts a crafting task
type StartCraftRequest struct {
	RecipeID int64 `json:"recipe_id" validate:"required,gt=0"`
}

// StartGatherRequest starts a gathering task
type StartGatherRequest struct {
	Category string `json:"category" validate:"required,gathercategory"`
}

// StartAdventureRequest starts an adventure
type StartAdventureRequest struct {
	Tier       string `json:"tier" validate:"required,tier"`
	TemplateID int64  `json:"template_id" validate:"required,gt=0"`
}

// TaskHandler handles task lifecycle HTTP requests
type TaskHandler struct {
	taskSvc task.Service
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskSvc task.Service) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// List handles the active task listing endpoint
// @Summary List active tasks
// @Description Returns the caller's in-flight tasks of all types
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ActiveTask
// @Router /tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.ListTasks(r.Context(), player.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list tasks", "error", err, "playerID", player.ID)
		respondServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.ActiveTask{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

// StartCraft handles the craft start endpoint
// @Summary Start a crafting task
// @Description Deducts the recipe's ingredients and schedules the craft
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartCraftRequest true "Recipe to craft"
// @Success 200 {object} task.StartResult
// @Failure 404 {object} ErrorResponse "Recipe not found"
// @Failure 409 {object} ErrorResponse "A crafting task is already active"
// @Failure 422 {object} ErrorResponse "Skill too low or missing materials"
// @Router /tasks/craft [post]
func (h *TaskHandler) StartCraft(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	var req StartCraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start craft"); err != nil {
		return
	}

	result, err := h.taskSvc.StartCraft(r.Context(), player.ID, req.RecipeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ClaimCraft handles the craft claim endpoint
// @Summary Claim a finished crafting task
// @Description Rolls the outcome, grants the item and xp, consumes the task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} task.CraftResult
// @Failure 409 {object} ErrorResponse "No task or not finished"
// @Router /tasks/craft/claim [post]
func (h *TaskHandler) ClaimCraft(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	result, err := h.taskSvc.ClaimCraft(r.Context(), player.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// StartGather handles the gather start endpoint
// @Summary Start a gathering task
// @Description Schedules a gathering run in one of the four categories
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartGatherRequest true "Gathering category"
// @Success 200 {object} task.StartResult
// @Failure 409 {object} ErrorResponse "A gathering task is already active"
// @Router /tasks/gather [post]
func (h *TaskHandler) StartGather(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	var req StartGatherRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start gather"); err != nil {
		return
	}

	result, err := h.taskSvc.StartGather(r.Context(), player.ID, domain.SkillType(req.Category))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ClaimGather handles the gather claim endpoint
// @Summary Claim a finished gathering task
// @Description Grants a category material scaled by skill level
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} task.GatherResult
// @Failure 409 {object} ErrorResponse "No task or not finished"
// @Router /tasks/gather/claim [post]
func (h *TaskHandler) ClaimGather(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	result, err := h.taskSvc.ClaimGather(r.Context(), player.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// StartAdventure handles the adventure start endpoint
// @Summary Start an adventure
// @Description Consumes supplies and schedules a tier-gated adventure
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartAdventureRequest true "Tier and template"
// @Success 200 {object} task.StartResult
// @Failure 404 {object} ErrorResponse "Template not found"
// @Failure 409 {object} ErrorResponse "An adventure is already active"
// @Failure 422 {object} ErrorResponse "Rank too low, on cooldown, or missing supplies"
// @Router /tasks/adventure [post]
func (h *TaskHandler) StartAdventure(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	var req StartAdventureRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start adventure"); err != nil {
		return
	}

	result, err := h.taskSvc.StartAdventure(r.Context(), player.ID, domain.Tier(req.Tier), req.TemplateID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ClaimAdventure handles the adventure claim endpoint
// @Summary Claim a finished adventure
// @Description Grants rank xp and starts the adventure cooldown
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} task.AdventureResult
// @Failure 409 {object} ErrorResponse "No task or not finished"
// @Router /tasks/adventure/claim [post]
func (h *TaskHandler) ClaimAdventure(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	result, err := h.taskSvc.ClaimAdventure(r.Context(), player.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
