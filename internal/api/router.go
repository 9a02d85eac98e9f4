package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"parking-lot-backend/config"
	"parking-lot-backend/internal/issue"
	"parking-lot-backend/internal/mw"
	"parking-lot-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, pool *issue.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, pool, cfg.Agenda.Timezone)

	rateLimiter := mw.RateLimiter(cfg.Server)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.Invalidate(cacheStore))
	{
		api.GET("/lots", caching, handler.ListLots)
		api.POST("/lots", handler.CreateLot)
		api.GET("/lots/:lot_id", caching, handler.GetLot)
		api.DELETE("/lots/:lot_id", handler.DeleteLot)
		api.PUT("/lots/:lot_id/grid", handler.ResizeLot)
		api.GET("/lots/:lot_id/layout", caching, handler.GetLotLayout)
		api.POST("/lots/:lot_id/merges", handler.MergeLotRows)
		api.DELETE("/lots/:lot_id/merges", handler.ResetLotMerges)

		api.GET("/users", handler.ListUsers)
		api.POST("/users", handler.CreateUser)
		api.GET("/users/:user_id", handler.GetUser)
		api.DELETE("/users/:user_id", handler.DeleteUser)

		api.GET("/vehicles", handler.ListVehicles)
		api.POST("/vehicles", handler.CreateVehicle)
		api.DELETE("/vehicles/:vehicle_id", handler.DeleteVehicle)

		api.GET("/schedules", handler.ListSchedules)
		api.POST("/schedules", handler.CreateSchedule)
		api.DELETE("/schedules/:schedule_id", handler.DeleteSchedule)
		api.GET("/agenda", handler.GetAgenda)

		api.GET("/issues", handler.ListIssueReports)
		api.POST("/issues", handler.SubmitIssueReport)
		api.POST("/issues/:issue_id/resolve", handler.ResolveIssueReport)
	}

	return r
}
