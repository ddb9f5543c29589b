package main

import (
	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
	"github.com/organizai/organizai/routes"
	"github.com/organizai/organizai/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.ActionLogEntry{},
		&models.StreakState{},
		&models.UnlockedAchievement{},
		&models.Goal{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
