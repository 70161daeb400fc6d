// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/samarthbadyal/hoopsim/internal/team/handler"
	"github.com/samarthbadyal/hoopsim/internal/team/repository"
	"github.com/samarthbadyal/hoopsim/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/api/teams", h.CreateTeam)
	r.GET("/api/teams", h.ListTeams)
	r.GET("/api/teams/standings", h.GetStandings)
	r.GET("/api/teams/:id", h.GetTeam)
	r.PUT("/api/teams/:id", h.UpdateTeam)
	r.DELETE("/api/teams/:id", h.DeleteTeam)
}
