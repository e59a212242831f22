package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.  The values are
// read by viper from a config file or environment variables.
type Config struct {
	SafetyMargin  float64  `mapstructure:"safetyMargin"`
	SampleCap     int      `mapstructure:"sampleCap"`
	ArchiveSuffix string   `mapstructure:"archiveSuffix"`
	Workers       int      `mapstructure:"workers"`
	Terms         []string `mapstructure:"terms"`
}

// loadConfig reads configuration from file or environment variables.
// A missing config file is fine; defaults apply.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bdat"))
		}
		v.SetConfigName("bdat")
		v.SetConfigType("yaml")
	}

	v.SetDefault("safetyMargin", 1.2)
	v.SetDefault("sampleCap", 256)
	v.SetDefault("archiveSuffix", "_msg")
	v.SetDefault("workers", runtime.GOMAXPROCS(0))

	v.SetEnvPrefix("BDAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
