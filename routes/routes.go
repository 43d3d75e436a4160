package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/config"
	"github.com/vipulsahu063/PSMSystem/handlers"
	"github.com/vipulsahu063/PSMSystem/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	st := handlers.NewStationHandler()
	fld := handlers.NewFieldHandler()
	off := handlers.NewOfficerHandler()
	dash := handlers.NewDashboardHandler()
	exp := handlers.NewExportHandler()
	up := handlers.NewUploadHandler(cfg)

	// ===== Public =====
	e.GET("/healthz", handlers.Health)
	e.POST("/admin/login", auth.AdminLogin)
	e.POST("/station/login", auth.StationLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Any authenticated session =====
	authed := e.Group("", authMW)
	authed.POST("/auth/change-password", auth.ChangePassword)
	authed.POST("/uploads/sign", up.Sign)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/stations", st.List)
	admin.POST("/stations", st.Create)
	admin.DELETE("/stations/:id", st.Delete)
	admin.POST("/stations/:id/reset-password", st.ResetPassword)

	admin.GET("/fields/:station_id", fld.List)
	admin.POST("/fields/:station_id", fld.Replace)
	admin.DELETE("/fields/:station_id", fld.Clear)

	// ===== Station routes (admin may impersonate via ?station_id=) =====
	station := e.Group("/station",
		authMW,
		middlewares.RequireRole("station", "admin"),
		middlewares.StationScope(),
	)

	station.GET("/fields", fld.List)
	station.GET("/dashboard", dash.Stats)

	station.GET("/officers/form", off.Form)
	station.GET("/officers", off.List)
	station.POST("/officers", off.Create)
	station.DELETE("/officers/:id", off.Delete)
	station.POST("/officers/bulk-delete", off.BulkDelete)
	station.GET("/officers/export", exp.Export)
}
