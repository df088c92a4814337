package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"imagechart/config"
	"imagechart/internal/appServer"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment as-is")
	}

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config: %v", err)
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config: %v", err)
	}

	appServer.NewServer(cfg)
}
