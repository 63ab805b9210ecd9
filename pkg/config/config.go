package config

// Package config provides a reusable loader for the stream processor's
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/synnergychain/stream-processor-sdk/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for a processord instance. It
// mirrors the structure of the YAML files under config.
type Config struct {
	Server struct {
		Host                 string `mapstructure:"host" json:"host"`
		Port                 int    `mapstructure:"port" json:"port"`
		Debug                bool   `mapstructure:"debug" json:"debug"`
		RecordTimeoutSeconds int    `mapstructure:"record_timeout_seconds" json:"record_timeout_seconds"`
		MaxConcurrentRecords int    `mapstructure:"max_concurrent_records" json:"max_concurrent_records"`
		RPCRetries           int    `mapstructure:"rpc_retries" json:"rpc_retries"`
	} `mapstructure:"server" json:"server"`

	Store struct {
		CacheSize int `mapstructure:"cache_size" json:"cache_size"`
	} `mapstructure:"store" json:"store"`

	Schema struct {
		File string `mapstructure:"file" json:"file"`
	} `mapstructure:"schema" json:"schema"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.SetEnvPrefix("PROCESSORD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // picks up PROCESSORD_* overrides

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the PROCESSORD_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("PROCESSORD_ENV", ""))
}
