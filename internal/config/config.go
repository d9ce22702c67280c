package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	Redis Redis `yaml:"redis"`

	JWT JWT `yaml:"jwt"`

	Session Session `yaml:"session"`
}

type Server struct {
	Address string `yaml:"address"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type Redis struct {
	// Enabled selects the Redis cart store; when false carts are kept
	// in process memory.
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // In Hours
}

type Session struct {
	// CartTTL bounds how long an untouched cart survives.
	CartTTL time.Duration `yaml:"cart_ttl"`
}

func Load() (*Config, error) {
	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Session.CartTTL == 0 {
		cfg.Session.CartTTL = 2 * time.Hour
	}

	return &cfg, nil
}
