package main

import (
	"github.com/emotu/micro-cloud/config"
	"github.com/emotu/micro-cloud/internal/app"
	"github.com/emotu/micro-cloud/internal/api/routes"
	"github.com/emotu/micro-cloud/internal/cache"
	"github.com/emotu/micro-cloud/internal/db"
	"github.com/emotu/micro-cloud/internal/logger"
)

func main() {
	settings := config.Load()
	logger.Initialize()

	conn, err := db.New(db.Options{
		Host:     settings.DBHost,
		Port:     settings.DBPort,
		User:     settings.DBUser,
		Password: settings.DBPassword,
		DBName:   settings.DBName,
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	server := app.New(&routes.Deps{
		DB:       conn,
		Cache:    cache.New(settings.RedisAddr),
		Settings: settings,
	})

	logger.Infof("%s listening on %s", settings.APIName, settings.ListenAddr)
	if err := server.Listen(settings.ListenAddr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
