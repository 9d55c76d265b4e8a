package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Display DisplayConfig
}

type AppConfig struct {
	Env string
}

type StorageConfig struct {
	// Driver selects the durable medium: "json" or "sqlite".
	Driver string
	// Path is the data file location (JSON file or SQLite database).
	Path string
}

type DisplayConfig struct {
	// Locale is the BCP 47 tag used for locale-aware sorting.
	Locale string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_DRIVER", "json")
	viper.SetDefault("STORAGE_PATH", "data/stockroom.json")
	viper.SetDefault("DISPLAY_LOCALE", "en")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		App: AppConfig{
			Env: viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			Driver: viper.GetString("STORAGE_DRIVER"),
			Path:   viper.GetString("STORAGE_PATH"),
		},
		Display: DisplayConfig{
			Locale: viper.GetString("DISPLAY_LOCALE"),
		},
	}
}
