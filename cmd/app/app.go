package main

import (
	"os"

	"github.com/DRSN-tech/fitting-backend/internal/app"
	config "github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

// @title			Fitting Backend API
// @version			1.0
// @description		Кэширующий векторный поиск и рекомендации товаров
// @BasePath		/api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
