package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	SMTP      SMTPConfig `mapstructure:"-"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// SMTPConfig is read straight from the environment, not the config file.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" validate:"required"`
	Port     int    `envconfig:"SMTP_PORT" default:"587" validate:"required"`
	User     string `envconfig:"SMTP_USER" validate:"required"`
	Password string `envconfig:"SMTP_PASSWORD" validate:"required"`
	From     string `envconfig:"SMTP_FROM"`
	UseTLS   bool   `envconfig:"SMTP_USE_TLS" default:"true"`
}

// smtpEnvNames maps struct fields to the environment variables named in
// missing-settings errors.
var smtpEnvNames = map[string]string{
	"Host":     "SMTP_HOST",
	"Port":     "SMTP_PORT",
	"User":     "SMTP_USER",
	"Password": "SMTP_PASSWORD",
	"From":     "SMTP_FROM",
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("ratelimit.rps", 50)
	viper.SetDefault("ratelimit.burst", 100)
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.base_url", "http://localhost:3000")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.SMTP); err != nil {
		return nil, fmt.Errorf("failed to read SMTP environment: %w", err)
	}
	if config.SMTP.From == "" {
		config.SMTP.From = config.SMTP.User
	}

	return &config, nil
}

// ValidateSMTP reports the SMTP settings still missing from the
// environment. Only meaningful when email sending is enabled.
func (c *Config) ValidateSMTP() error {
	err := validator.New().Struct(c.SMTP)
	if err == nil {
		if c.SMTP.From == "" {
			return fmt.Errorf("Missing SMTP settings: SMTP_FROM")
		}
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		if name, known := smtpEnvNames[verr.StructField()]; known {
			missing = append(missing, name)
		}
	}
	return fmt.Errorf("Missing SMTP settings: %s", strings.Join(missing, ", "))
}
