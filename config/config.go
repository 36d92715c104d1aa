package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Listen    string `yaml:"listen"`
		JWTSecret string `yaml:"jwt_secret"` // base64
	} `yaml:"server"`

	Cache struct {
		Path string `yaml:"path"` // SQLite file
	} `yaml:"cache"`

	Remote struct {
		DSN            string `yaml:"dsn"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"remote"`

	Archive struct {
		Bucket string `yaml:"bucket"` // empty disables S3 archiving
		Prefix string `yaml:"prefix"`
	} `yaml:"archive"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Replace environment variables in the YAML content
	content := string(data)
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		placeholder := "${" + pair[0] + "}"
		content = strings.ReplaceAll(content, placeholder, pair[1])
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "kintai-cache.db"
	}
	if cfg.Remote.MaxConnections <= 0 {
		cfg.Remote.MaxConnections = 10
	}

	return &cfg, nil
}
