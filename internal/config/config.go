/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the process configuration.
//
// Sources are layered, later ones winning: built-in defaults, an optional YAML
// file, then environment variables (a `.env` file in the working directory is
// loaded into the environment first). The result is validated before use.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Backends selectable with DOCREPO_BACKEND
const (
	BackendMongo    = "mongo"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config is the root configuration object
type Config struct {
	Backend  string         `koanf:"backend" yaml:"backend" validate:"required,oneof=mongo dynamodb memory"`
	Mongo    MongoConfig    `koanf:"mongo" yaml:"mongo"`
	DynamoDB DynamoDBConfig `koanf:"dynamodb" yaml:"dynamodb"`
	Log      LogConfig      `koanf:"log" yaml:"log"`
}

// MongoConfig locates the MongoDB deployment. URI, when set, replaces Host and Port.
type MongoConfig struct {
	Host           string        `koanf:"host" yaml:"host" validate:"required"`
	Port           int           `koanf:"port" yaml:"port" validate:"min=1,max=65535"`
	URI            string        `koanf:"uri" yaml:"uri" validate:"omitempty,uri"`
	ReplicaSet     string        `koanf:"replica_set" yaml:"replica_set"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" yaml:"connect_timeout" validate:"min=0"`
}

// DynamoDBConfig holds the DynamoDB client settings
type DynamoDBConfig struct {
	Region    string `koanf:"region" yaml:"region"`
	Endpoint  string `koanf:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	AccessKey string `koanf:"access_key" yaml:"access_key"`
	SecretKey string `koanf:"secret_key" yaml:"secret_key" validate:"required_with=AccessKey"`
}

// LogConfig selects the log level and output format
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=console json"`
}

// envKeys maps environment variables to configuration paths
var envKeys = map[string]string{
	"DOCREPO_BACKEND":       "backend",
	"MONGO_HOST":            "mongo.host",
	"MONGO_PORT":            "mongo.port",
	"MONGO_URI":             "mongo.uri",
	"MONGO_REPLICA_SET":     "mongo.replica_set",
	"MONGO_CONNECT_TIMEOUT": "mongo.connect_timeout",
	"DYNAMODB_REGION":       "dynamodb.region",
	"DYNAMODB_ENDPOINT":     "dynamodb.endpoint",
	"DYNAMODB_ACCESS_KEY":   "dynamodb.access_key",
	"DYNAMODB_SECRET_KEY":   "dynamodb.secret_key",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
}

// Default returns the configuration used when no source overrides a value
func Default() Config {
	return Config{
		Backend: BackendMongo,
		Mongo: MongoConfig{
			Host:           "127.0.0.1",
			Port:           27017,
			ConnectTimeout: 10 * time.Second,
		},
		DynamoDB: DynamoDBConfig{
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := loadYAML(k, path); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider("", ".", func(key string) string {
		return envKeys[key]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML merges only the keys present in the file, keeping defaults for the rest.
func loadYAML(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for key, value := range flattenMap("", raw) {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s from %s: %w", key, path, err)
		}
	}
	return nil
}

func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nested) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}

// Validate checks field constraints and the settings the selected backend needs.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(Config)
		if c.Backend == BackendDynamoDB && strings.TrimSpace(c.DynamoDB.Region) == "" {
			sl.ReportError(c.DynamoDB.Region, "DynamoDB.Region", "region", "required_for_backend", c.Backend)
		}
	}, Config{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
