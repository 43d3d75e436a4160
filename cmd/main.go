package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vipulsahu063/PSMSystem/config"
	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/routes"
)

// @title           PSMSystem API
// @version         1.0
// @description     Police station management backend (Echo + PostgreSQL)
// @BasePath        /
func main() {
	cfg := config.Load()

	// fail fast if the database is not up
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
