package main

import (
	"os"

	"github.com/DRSN-tech/storefront/internal/app"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Витрина каталога товаров: пагинация, поиск, сортировка и корзина.
//	@BasePath		/api/v1

func main() {
	logCfg := config.LoadLogCfg()
	log := logger.NewSlogLoggerWithOptions(logger.Options{
		Level: logCfg.Level,
		File:  logCfg.File,
	})

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
