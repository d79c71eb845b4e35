// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type AnalysisConfig struct {
	// DefaultFixedCosts fills in when a CLI run does not pass --fixed-costs.
	DefaultFixedCosts float64
	// BatchParallel caps concurrent scenarios in a batch simulation.
	BatchParallel int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("ANALYSIS_DEFAULT_FIXED_COSTS", 0.0)
		viper.SetDefault("ANALYSIS_BATCH_PARALLEL", 4)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Analysis: AnalysisConfig{
				DefaultFixedCosts: viper.GetFloat64("ANALYSIS_DEFAULT_FIXED_COSTS"),
				BatchParallel:     viper.GetInt("ANALYSIS_BATCH_PARALLEL"),
			},
		}
	})

	return instance
}
