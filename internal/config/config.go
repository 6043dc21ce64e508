package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type StorefrontConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	StorefrontDB `yaml:"storefront_db"`
	LogConfig    `yaml:"log_config"`
	Kafka        `yaml:"kafka"`
	Tenant       `yaml:"tenant"`
	Migrations   `yaml:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StorefrontDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Enabled bool     `yaml:"enabled"`
}

type Tenant struct {
	// AllowFallback serves the first active store when no domain matches.
	// Meant for local and staging environments with a single store.
	AllowFallback bool `yaml:"allow_fallback"`
}

type Migrations struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

func MustLoad() *StorefrontConfig {
	configPath := os.Getenv("STOREFRONT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("STOREFRONT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg StorefrontConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
