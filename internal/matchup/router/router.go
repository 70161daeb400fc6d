// Package router provides matchup module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/samarthbadyal/hoopsim/internal/matchup/handler"
	"github.com/samarthbadyal/hoopsim/internal/matchup/repository"
	"github.com/samarthbadyal/hoopsim/internal/matchup/service"
	"github.com/samarthbadyal/hoopsim/internal/sim"
)

// RegisterRoutes registers matchup module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, generator *sim.Generator, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, generator, logger)
	h := handler.New(svc, logger)

	r.POST("/api/matchups", h.CreateMatchup)
	r.GET("/api/matchups", h.ListMatchups)
	r.GET("/api/matchups/:id", h.GetMatchup)
	r.PUT("/api/matchups/:id", h.UpdateMatchup)
	r.DELETE("/api/matchups/:id", h.DeleteMatchup)
	r.POST("/api/matchups/:id/simulate", h.Simulate)
}
