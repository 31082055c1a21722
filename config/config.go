// Package config loads sparkd configuration from an optional TOML file with
// environment-variable overrides. Environment always wins over the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// SparkConfig holds the Spark wallet gateway credentials and session
// parameters.
type SparkConfig struct {
	// APIKey authenticates against the gateway. Required.
	APIKey string `toml:"api_key"`

	// Mnemonic is the wallet seed phrase handed to the gateway on
	// connect. Required.
	Mnemonic string `toml:"mnemonic"`

	// Passphrase is the optional mnemonic passphrase.
	Passphrase string `toml:"passphrase"`

	// GatewayURL is the base URL of the gateway's HTTP API.
	GatewayURL string `toml:"gateway_url"`

	// StorageDir is the gateway-side storage directory for wallet data.
	StorageDir string `toml:"storage_dir"`
}

type Config struct {
	// Backend selects the wallet backend variant. Only "spark" is
	// implemented; unknown values fail at startup.
	Backend string `toml:"backend"`

	Spark SparkConfig `toml:"spark"`
}

func Default() Config {
	return Config{
		Backend: "spark",
		Spark: SparkConfig{
			GatewayURL: "http://localhost:8089",
			StorageDir: "./.data",
		},
	}
}

// Load reads path (when it exists) and overlays environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warnf("configuration file %s not found, using defaults and environment variables", path)
	case err != nil:
		return Config{}, fmt.Errorf("reading configuration file: %w", err)
	default:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing configuration file: %w", err)
		}
		log.Infof("loaded configuration from %s", path)
	}

	if v, ok := os.LookupEnv("SPARKD_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("SPARK_API_KEY"); ok {
		cfg.Spark.APIKey = v
	}
	if v, ok := os.LookupEnv("SPARK_MNEMONIC"); ok {
		cfg.Spark.Mnemonic = v
	}
	if v, ok := os.LookupEnv("SPARK_PASSPHRASE"); ok {
		cfg.Spark.Passphrase = v
	}
	if v, ok := os.LookupEnv("SPARK_GATEWAY_URL"); ok {
		cfg.Spark.GatewayURL = v
	}
	if v, ok := os.LookupEnv("SPARK_STORAGE_DIR"); ok {
		cfg.Spark.StorageDir = v
	}

	log.Debugf("configuration loaded - backend: %s, gateway: %s, api key present: %t, mnemonic present: %t",
		cfg.Backend, cfg.Spark.GatewayURL, cfg.Spark.APIKey != "", cfg.Spark.Mnemonic != "")

	return cfg, nil
}

// Validate checks the credentials a spark backend cannot run without.
func (c *SparkConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("spark API key is required")
	}
	if c.Mnemonic == "" {
		return errors.New("mnemonic seed is required")
	}
	if c.GatewayURL == "" {
		return errors.New("gateway URL is required")
	}

	return nil
}
