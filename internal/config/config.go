package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Messenger MessengerConfig
	Draw      DrawConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// MessengerConfig holds chat transport configuration
type MessengerConfig struct {
	BaseURL       string
	BotToken      string
	GroupID       string // chat the roster is drawn from
	MockMessenger bool
}

// DrawConfig holds draw engine configuration. The tick interval and cadence
// are deliberately external values, not literals in the scheduler.
type DrawConfig struct {
	TickInterval   time.Duration
	CadenceDays    int     // default global cadence, overridable via draw settings
	CycleThreshold float64 // realized-pair fraction that exhausts a cycle
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Secrets come from the environment, never from the yaml file
	if token := GetEnv("MESSENGER_BOT_TOKEN", ""); token != "" {
		config.Messenger.BotToken = token
	}
	if secret := GetEnv("JWT_SECRET", ""); secret != "" {
		config.JWT.Secret = secret
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "random-coffee")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Messenger.BaseURL", "https://api.telegram.org")
	viper.SetDefault("Messenger.MockMessenger", true)
	viper.SetDefault("Draw.TickInterval", time.Hour)
	viper.SetDefault("Draw.CadenceDays", 7)
	viper.SetDefault("Draw.CycleThreshold", 0.9)
}
