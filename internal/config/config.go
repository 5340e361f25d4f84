// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package config loads the ragchat configuration with the standard
// precedence: flags > environment (RAGCHAT_ prefix) > config file >
// defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Config is the top-level ragchat configuration.
type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
}

// ServerConfig controls the serving endpoint.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	MaxPortRetries int    `mapstructure:"max_port_retries"`
}

// ProvidersConfig selects and configures the embedding and completion
// collaborators. Embedding and Completion name a provider or "auto".
type ProvidersConfig struct {
	Embedding  string `mapstructure:"embedding"`
	Completion string `mapstructure:"completion"`

	Anthropic ProviderConfig `mapstructure:"anthropic"`
	OpenAI    ProviderConfig `mapstructure:"openai"`
	Google    ProviderConfig `mapstructure:"google"`
}

// ProviderConfig holds one provider's credentials and model overrides.
// APIKey may be a literal or a keyring://service/key URI.
type ProviderConfig struct {
	APIKey          string `mapstructure:"api_key"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	CompletionModel string `mapstructure:"completion_model"`
}

// RetrievalConfig tunes the search step.
type RetrievalConfig struct {
	TopK     int     `mapstructure:"top_k"`
	MinScore float64 `mapstructure:"min_score"`
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	MinSectionLength int `mapstructure:"min_section_length"`
}

// SetDefaults installs the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 3117)
	v.SetDefault("server.max_port_retries", 10)
	v.SetDefault("providers.embedding", "auto")
	v.SetDefault("providers.completion", "auto")
	v.SetDefault("retrieval.top_k", 3)
	v.SetDefault("retrieval.min_score", 0.3)
	v.SetDefault("ingest.min_section_length", 50)
}

// SetupEnv binds RAGCHAT_-prefixed environment variables.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("RAGCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults only when the
// path is empty) with environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ragerr.Wrapf(err, ragerr.CodeConfigLoadReadFailure, "reading config %s", path)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates a populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeConfigLoadReadFailure, "unmarshalling config")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ragerr.Wrap(errors.Join(errs...), ragerr.CodeConfigValidateInvalidValue, "validating config")
	}
	return &cfg, nil
}

// Validate checks the configuration for logical errors, collecting every
// issue rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, ragerr.New(ragerr.CodeConfigValidateInvalidValue, "config: data_dir must not be empty"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxPortRetries < 1 {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: server.max_port_retries must be at least 1, got %d", c.Server.MaxPortRetries))
	}

	validEmbedding := map[string]bool{"auto": true, "openai": true, "google": true}
	if !validEmbedding[c.Providers.Embedding] {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: providers.embedding must be one of [auto, openai, google], got %q", c.Providers.Embedding))
	}
	validCompletion := map[string]bool{"auto": true, "anthropic": true, "openai": true, "google": true}
	if !validCompletion[c.Providers.Completion] {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: providers.completion must be one of [auto, anthropic, openai, google], got %q", c.Providers.Completion))
	}

	if c.Retrieval.TopK < 1 {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: retrieval.top_k must be at least 1, got %d", c.Retrieval.TopK))
	}
	if c.Retrieval.MinScore < -1 || c.Retrieval.MinScore > 1 {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: retrieval.min_score must be within [-1, 1], got %g", c.Retrieval.MinScore))
	}

	if c.Ingest.MinSectionLength < 1 {
		errs = append(errs, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue,
			"config: ingest.min_section_length must be at least 1, got %d", c.Ingest.MinSectionLength))
	}

	return errs
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ragchat"
	}
	return filepath.Join(home, ".ragchat")
}
