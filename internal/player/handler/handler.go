// Package handler provides HTTP handlers for player endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
	"github.com/samarthbadyal/hoopsim/internal/player/service"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Handler handles HTTP requests for player endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new player handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreatePlayer handles POST /api/players request.
func (h *Handler) CreatePlayer(c *gin.Context) {
	var req playerModel.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreatePlayer(c.Request.Context(), &req)
	if err != nil {
		h.writePlayerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListPlayers handles GET /api/players request.
func (h *Handler) ListPlayers(c *gin.Context) {
	resp, err := h.service.ListPlayers(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing players", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPlayer handles GET /api/players/:id request.
func (h *Handler) GetPlayer(c *gin.Context) {
	playerID := c.Param("id")

	resp, err := h.service.GetPlayer(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, playerModel.ErrPlayerNotFound) {
			notFoundResponse(c, "player not found")
			return
		}
		h.logger.Errorw("error getting player", "player_id", playerID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePlayer handles PUT /api/players/:id request.
func (h *Handler) UpdatePlayer(c *gin.Context) {
	playerID := c.Param("id")

	var req playerModel.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdatePlayer(c.Request.Context(), playerID, &req)
	if err != nil {
		h.writePlayerError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePlayer handles DELETE /api/players/:id request.
func (h *Handler) DeletePlayer(c *gin.Context) {
	playerID := c.Param("id")

	err := h.service.DeletePlayer(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, playerModel.ErrPlayerNotFound) {
			notFoundResponse(c, "player not found")
			return
		}
		if errors.Is(err, playerModel.ErrPlayerHasHistory) {
			errorResponse(c, "PLAYER_HAS_HISTORY",
				"player appears in simulated matchup history", http.StatusConflict)
			return
		}
		h.logger.Errorw("error deleting player", "player_id", playerID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "player deleted"})
}

// GetLeaders handles GET /api/players/leaders request.
func (h *Handler) GetLeaders(c *gin.Context) {
	stat := c.DefaultQuery("stat", "points")

	resp, err := h.service.GetLeaders(c.Request.Context(), stat)
	if err != nil {
		if errors.Is(err, playerModel.ErrInvalidLeaderStat) {
			errorResponse(c, "INVALID_REQUEST",
				"stat must be one of: points, assists, rebounds, steals, blocks", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error getting leaders", "stat", stat, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writePlayerError maps service errors to HTTP responses shared by the
// create and update paths.
func (h *Handler) writePlayerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, playerModel.ErrPlayerNotFound):
		notFoundResponse(c, "player not found")
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, playerModel.ErrPlayerExists):
		errorResponse(c, "PLAYER_EXISTS", "player name must be unique", http.StatusBadRequest)
	case errors.Is(err, playerModel.ErrRosterFull):
		errorResponse(c, "ROSTER_FULL", "team roster is full (maximum 5 players)", http.StatusBadRequest)
	case errors.Is(err, playerModel.ErrInvalidName),
		errors.Is(err, playerModel.ErrInvalidPosition),
		errors.Is(err, playerModel.ErrInvalidSkill),
		errors.Is(err, playerModel.ErrInvalidPhysicals):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("player operation failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
