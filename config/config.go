/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the docstore configuration: a YAML file, an optional
// .env file, and environment overrides, validated with struct tags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/logger"
	"github.com/suparena/docstore/schema"
	"github.com/suparena/docstore/storagemodels"
)

// Environment variables that override the file.
const (
	EnvRegion          = "AWS_REGION"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvEndpoint        = "DYNAMODB_ENDPOINT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
)

// Config is the root of the configuration file
type Config struct {
	AWS         AWS           `yaml:"aws"`
	Logging     logger.Config `yaml:"logging"`
	Indexes     Indexes       `yaml:"indexes"`
	Defaults    Defaults      `yaml:"defaults"`
	Collections []Collection  `yaml:"collections" validate:"dive"`
}

// AWS holds the DynamoDB connection settings
type AWS struct {
	Region          string `yaml:"region" validate:"required"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey" validate:"required_with=AccessKeyID"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
}

// Indexes names the secondary index layout shared by every table
type Indexes struct {
	PartitionKey string `yaml:"partitionKey"`
	RecentIndex  string `yaml:"recentIndex" validate:"required_with=PartitionKey"`
}

// Defaults holds read defaults
type Defaults struct {
	Limit int32 `yaml:"limit" validate:"gte=0"`
}

// Collection binds a logical name to a table and its field definitions
type Collection struct {
	Name   string            `yaml:"name" validate:"required"`
	Table  string            `yaml:"table" validate:"required"`
	Fields schema.Definition `yaml:"fields" validate:"required,min=1,dive"`
}

// Default returns the configuration used for keys the file leaves out.
func Default() *Config {
	return &Config{
		AWS:      AWS{Region: "us-east-1"},
		Logging:  logger.Config{Enabled: true, Level: "info", Format: "json"},
		Indexes:  Indexes{PartitionKey: storagemodels.FieldDocType, RecentIndex: "created-index"},
		Defaults: Defaults{Limit: storagemodels.DefaultLimit},
	}
}

// Load reads the configuration at path. The given env files are loaded first
// (".env" when none are given; a missing file is skipped), so they feed the
// environment overrides. Variables already set in the process win.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnv(envFiles); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags, then that collection names are unique.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", e.Namespace(), e.Tag()))
			}
			return storeerrors.NewValidationError("", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("failed to validate config: %w", err)
	}

	seen := make(map[string]bool, len(c.Collections))
	for _, col := range c.Collections {
		if seen[col.Name] {
			return storeerrors.NewValidationError("collections", fmt.Sprintf("duplicate collection %q", col.Name))
		}
		seen[col.Name] = true
	}
	return nil
}

// Collection returns the named collection.
func (c *Config) Collection(name string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return Collection{}, false
}

func (c *Config) applyEnv() {
	override := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(EnvRegion, &c.AWS.Region)
	override(EnvAccessKeyID, &c.AWS.AccessKeyID)
	override(EnvSecretAccessKey, &c.AWS.SecretAccessKey)
	override(EnvEndpoint, &c.AWS.Endpoint)
	override(EnvLogLevel, &c.Logging.Level)
	override(EnvLogFormat, &c.Logging.Format)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

func loadEnv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}
