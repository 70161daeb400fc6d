// Package router provides player module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/samarthbadyal/hoopsim/internal/player/handler"
	"github.com/samarthbadyal/hoopsim/internal/player/repository"
	"github.com/samarthbadyal/hoopsim/internal/player/service"
)

// RegisterRoutes registers player module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/api/players", h.CreatePlayer)
	r.GET("/api/players", h.ListPlayers)
	r.GET("/api/players/leaders", h.GetLeaders)
	r.GET("/api/players/:id", h.GetPlayer)
	r.PUT("/api/players/:id", h.UpdatePlayer)
	r.DELETE("/api/players/:id", h.DeletePlayer)
}
