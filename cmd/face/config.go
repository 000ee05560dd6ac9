package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DBPath string `envconfig:"DB_PATH" default:"network.db"`
}

func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("face", &cfg); err != nil {
		return config{}, fmt.Errorf("cannot parse config: %w", err)
	}
	return cfg, nil
}
