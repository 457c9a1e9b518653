package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/project/catalog/config"
	"github.com/project/catalog/internal/app"
	"github.com/project/catalog/pkg/logger"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("can not read .env file: %s", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("can not get application config: %s", err)
	}

	l, err := logger.NewFile(cfg.Log.File)
	if err != nil {
		log.Fatalf("can not initialize logger at %s: %s", cfg.Log.File, err)
	}
	defer func() { _ = l.Sync() }()

	app.Run(l, cfg)
}
