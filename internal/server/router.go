package server

import (
	"net/http"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"
	"github.com/estebancatanoe/IngenieriaWeb/internal/config"
	"github.com/estebancatanoe/IngenieriaWeb/internal/handlers"
	"github.com/estebancatanoe/IngenieriaWeb/internal/middleware"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, engine *booking.Engine) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("lab_session", store))
	r.Use(middleware.RequestID())
	r.Use(middleware.InjectUser())

	api := handlers.NewAPI(engine)

	// AUTH
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// DEVICES
	auth.GET("/devices", api.ListDevices)
	auth.GET("/devices/:id", api.GetDevice)
	auth.POST("/devices",
		middleware.RequireRole(models.RoleAdministrator),
		api.CreateDevice,
	)
	auth.POST("/devices/:id",
		middleware.RequireRole(models.RoleAdministrator),
		api.UpdateDevice,
	)
	auth.POST("/devices/:id/retire",
		middleware.RequireRole(models.RoleAdministrator),
		api.RetireDevice,
	)

	// RESERVATIONS
	auth.POST("/reservations", api.CreateReservation)
	auth.GET("/reservations/mine", api.MyReservations)
	auth.GET("/reservations",
		middleware.RequireRole(models.RoleAdministrator),
		api.ListReservations,
	)
	auth.POST("/reservations/:id/status",
		middleware.RequireRole(models.RoleAdministrator),
		api.UpdateReservationStatus,
	)

	// AUDIT
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdministrator),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
