// Package handler provides HTTP handlers for matchup endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchupModel "github.com/samarthbadyal/hoopsim/internal/matchup/model"
	"github.com/samarthbadyal/hoopsim/internal/matchup/service"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Handler handles HTTP requests for matchup endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new matchup handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateMatchup handles POST /api/matchups request.
func (h *Handler) CreateMatchup(c *gin.Context) {
	var req matchupModel.CreateMatchupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateMatchup(c.Request.Context(), &req)
	if err != nil {
		h.writeMatchupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListMatchups handles GET /api/matchups request.
func (h *Handler) ListMatchups(c *gin.Context) {
	resp, err := h.service.ListMatchups(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing matchups", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMatchup handles GET /api/matchups/:id request.
func (h *Handler) GetMatchup(c *gin.Context) {
	matchupID := c.Param("id")

	resp, err := h.service.GetMatchup(c.Request.Context(), matchupID)
	if err != nil {
		if errors.Is(err, matchupModel.ErrMatchupNotFound) {
			notFoundResponse(c, "matchup not found")
			return
		}
		h.logger.Errorw("error getting matchup", "matchup_id", matchupID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMatchup handles PUT /api/matchups/:id request.
func (h *Handler) UpdateMatchup(c *gin.Context) {
	matchupID := c.Param("id")

	var req matchupModel.UpdateMatchupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateMatchup(c.Request.Context(), matchupID, &req)
	if err != nil {
		h.writeMatchupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteMatchup handles DELETE /api/matchups/:id request.
func (h *Handler) DeleteMatchup(c *gin.Context) {
	matchupID := c.Param("id")

	err := h.service.DeleteMatchup(c.Request.Context(), matchupID)
	if err != nil {
		h.writeMatchupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "matchup deleted"})
}

// Simulate handles POST /api/matchups/:id/simulate request.
func (h *Handler) Simulate(c *gin.Context) {
	matchupID := c.Param("id")

	resp, err := h.service.Simulate(c.Request.Context(), matchupID)
	if err != nil {
		if errors.Is(err, matchupModel.ErrSimulationConflict) {
			errorResponse(c, "CONFLICT",
				"simulation could not commit, retry the request", http.StatusConflict)
			return
		}
		h.writeMatchupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeMatchupError maps service errors to HTTP responses.
func (h *Handler) writeMatchupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matchupModel.ErrMatchupNotFound):
		notFoundResponse(c, "matchup not found")
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, matchupModel.ErrAlreadySimulated):
		errorResponse(c, "MATCHUP_SIMULATED",
			"matchup is already simulated", http.StatusConflict)
	case errors.Is(err, matchupModel.ErrSameTeam),
		errors.Is(err, matchupModel.ErrDateInPast),
		errors.Is(err, matchupModel.ErrInvalidLocation):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("matchup operation failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
