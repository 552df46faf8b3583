package main

import (
	"github.com/gin-gonic/gin"

	"github.com/officeeats/cafeteria-app/config"
	"github.com/officeeats/cafeteria-app/router"
	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize database: %v", err)
	}

	carts := services.NewCartManager()
	notifier := services.NewNotifier(&services.LogSender{DB: db}, cfg.NotifyTimeout)
	orders := services.NewOrderService(db, carts, notifier)
	stats := services.NewStatsService(db)

	r := router.SetupRouter(db, carts, orders, stats, notifier)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
