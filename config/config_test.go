package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sparkd.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, "spark", cfg.Backend)
	require.Equal(t, "http://localhost:8089", cfg.Spark.GatewayURL)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
backend = "spark"

[spark]
api_key = "file-key"
mnemonic = "abandon abandon about"
gateway_url = "http://gateway:9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file-key", cfg.Spark.APIKey)
	require.Equal(t, "abandon abandon about", cfg.Spark.Mnemonic)
	require.Equal(t, "http://gateway:9000", cfg.Spark.GatewayURL)
	// Untouched keys keep their defaults.
	require.Equal(t, "./.data", cfg.Spark.StorageDir)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
[spark]
api_key = "file-key"
mnemonic = "file mnemonic"
`)

	t.Setenv("SPARK_API_KEY", "env-key")
	t.Setenv("SPARK_GATEWAY_URL", "http://env-gateway:8089")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-key", cfg.Spark.APIKey)
	require.Equal(t, "http://env-gateway:8089", cfg.Spark.GatewayURL)
	// Keys without an environment override still come from the file.
	require.Equal(t, "file mnemonic", cfg.Spark.Mnemonic)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, `backend = [not toml`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestSparkConfigValidate(t *testing.T) {
	valid := SparkConfig{
		APIKey:     "key",
		Mnemonic:   "abandon abandon about",
		GatewayURL: "http://localhost:8089",
	}

	tests := []struct {
		name    string
		mutate  func(*SparkConfig)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(*SparkConfig) {},
		},
		{
			name:    "missing API key",
			mutate:  func(c *SparkConfig) { c.APIKey = "" },
			wantErr: "spark API key is required",
		},
		{
			name:    "missing mnemonic",
			mutate:  func(c *SparkConfig) { c.Mnemonic = "" },
			wantErr: "mnemonic seed is required",
		},
		{
			name:    "missing gateway URL",
			mutate:  func(c *SparkConfig) { c.GatewayURL = "" },
			wantErr: "gateway URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
