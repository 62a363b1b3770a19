package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`
	ClientOrigin    string `mapstructure:"CLIENT_ORIGIN"`
	SeedDemoData    bool   `mapstructure:"SEED_DEMO_DATA"`
	AWSRegion       string `mapstructure:"AWS_REGION"`
	// NotifySenderEmail is the verified sender for delivery-confirmation
	// mail. When empty, mail is logged instead of sent.
	NotifySenderEmail string `mapstructure:"NOTIFY_SENDER_EMAIL"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("CLIENT_ORIGIN", "*")

	viper.AutomaticEnv() // Read in environment variables that match

	err := viper.ReadInConfig()
	if err != nil {
		// A missing .env file is fine, everything can come from the
		// environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
