package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

const envPrefix = "TXBUILDER"

// Config mirrors the config file; it is turned into a models.Client
type Config struct {
	RPCURL          string `mapstructure:"rpc_url"`
	Seed            string `mapstructure:"seed"`
	SS58Prefix      uint8  `mapstructure:"ss58_prefix"`
	MortalityPeriod uint64 `mapstructure:"mortality_period"`
	LogLevel        string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rpc_url", "ws://127.0.0.1:9944")
	v.SetDefault("seed", "")
	v.SetDefault("ss58_prefix", models.SubstrateSS58Prefix)
	v.SetDefault("mortality_period", models.DefaultMortalPeriod)
	v.SetDefault("log_level", "info")
}

// Load reads path (if not empty, else ./txbuilder.yaml when present) and
// TXBUILDER_* environment variables, which take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("txbuilder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.RPCURL == "" {
		return nil, errors.New("rpc_url is required")
	}

	return &cfg, nil
}

func (c *Config) Client() models.Client {
	return models.Client{
		Addr:            c.RPCURL,
		Seed:            c.Seed,
		SS58Prefix:      c.SS58Prefix,
		MortalityPeriod: c.MortalityPeriod,
	}
}
