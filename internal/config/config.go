// Package config loads the application configuration from a config.toml
// next to the executable, with defaults and environment overrides.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures where source extracts live and where the
// database and exports go.
type DataConfig struct {
	DataDir   string `toml:"data_dir"`
	SourceDir string `toml:"source_dir"`
}

// BusinessConfig configures the scoring runs.
type BusinessConfig struct {
	// Countries to score, in run order.
	Countries []string `toml:"countries"`
	// ReferenceDate pins the run's "today" (YYYY-MM-DD). Empty means the
	// wall clock at startup.
	ReferenceDate string `toml:"reference_date"`
	// Workers bounds the scoring worker pool; 0 means one per CPU.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20452,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:   "data",
			SourceDir: "source",
		},
		Business: BusinessConfig{
			Countries: []string{"DE", "AT", "FR", "CH"},
			Workers:   0,
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory. A
// missing file is not an error; defaults apply.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Environment overrides for local runs and tests.
	if v := os.Getenv("RFM_SOURCE_DIR"); v != "" {
		config.Data.SourceDir = v
	}
	if v := os.Getenv("RFM_REFERENCE_DATE"); v != "" {
		config.Business.ReferenceDate = v
	}

	return config, nil
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its export subdirectory
// next to the executable and returns its absolute path.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// SourcePath resolves a source extract for a country. Extracts live in
// one subdirectory per country under the source directory.
func SourcePath(config *AppConfig, country, filename string) string {
	dir := config.Data.SourceDir
	if !filepath.IsAbs(dir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dir = filepath.Join(exeDir, dir)
	}
	return filepath.Join(dir, country, filename)
}
