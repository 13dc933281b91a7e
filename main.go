package main

import (
	"log"

	"github.com/TonyMalanga/BroadcastControl/config"
	"github.com/TonyMalanga/BroadcastControl/internal/action"
	"github.com/TonyMalanga/BroadcastControl/internal/livestate"
	"github.com/TonyMalanga/BroadcastControl/internal/operator"
	"github.com/TonyMalanga/BroadcastControl/internal/roster"
	"github.com/TonyMalanga/BroadcastControl/internal/session"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/routes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&session.Session{},
		&roster.Roster{}, &roster.SheetSource{}, &roster.ImportLog{},
		&stats.StatLine{},
		&livestate.LiveState{},
		&action.Action{},
		&operator.Operator{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
