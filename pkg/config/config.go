package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

type ClassifierConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ModerationConfig carries the decision engine's tunables.
type ModerationConfig struct {
	// Ascending toxicity thresholds bucketing classifier scores into
	// severities.
	ToxicityThresholdLow    float64 `mapstructure:"toxicity_threshold_low"`
	ToxicityThresholdMedium float64 `mapstructure:"toxicity_threshold_medium"`
	ToxicityThresholdHigh   float64 `mapstructure:"toxicity_threshold_high"`

	// Strike ladder.
	MaxStrikesTempBan int           `mapstructure:"max_strikes_temp_ban"`
	MaxStrikesPermBan int           `mapstructure:"max_strikes_perm_ban"`
	TempBanDuration   time.Duration `mapstructure:"temp_ban_duration"`
	StrikeResetWindow time.Duration `mapstructure:"strike_reset_window"`

	// Blacklist cache.
	BlacklistCacheTTL time.Duration `mapstructure:"blacklist_cache_ttl"`

	// Language detection.
	SupportedLanguages []string `mapstructure:"supported_languages"`
	DefaultLanguage    string   `mapstructure:"default_language"`

	// Periodic expired-ban sweep cadence. Zero disables the loop.
	BanSweepInterval time.Duration `mapstructure:"ban_sweep_interval"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues()
	return globalConfig.Moderation.Validate()
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	m := &globalConfig.Moderation
	if m.ToxicityThresholdLow == 0 {
		m.ToxicityThresholdLow = 0.5
	}
	if m.ToxicityThresholdMedium == 0 {
		m.ToxicityThresholdMedium = 0.7
	}
	if m.ToxicityThresholdHigh == 0 {
		m.ToxicityThresholdHigh = 0.9
	}
	if m.MaxStrikesTempBan == 0 {
		m.MaxStrikesTempBan = 3
	}
	if m.MaxStrikesPermBan == 0 {
		m.MaxStrikesPermBan = 5
	}
	if m.TempBanDuration == 0 {
		m.TempBanDuration = 24 * time.Hour
	}
	if m.StrikeResetWindow == 0 {
		m.StrikeResetWindow = 30 * 24 * time.Hour
	}
	if m.BlacklistCacheTTL == 0 {
		m.BlacklistCacheTTL = 30 * time.Minute
	}
	if len(m.SupportedLanguages) == 0 {
		m.SupportedLanguages = []string{"es", "en", "pt", "fr", "de", "it"}
	}
	if m.DefaultLanguage == "" {
		m.DefaultLanguage = "es"
	}
	if globalConfig.Classifier.Timeout == 0 {
		globalConfig.Classifier.Timeout = 5 * time.Second
	}
}

// Validate rejects configurations that would break the strike ladder.
func (m *ModerationConfig) Validate() error {
	if m.MaxStrikesTempBan >= m.MaxStrikesPermBan {
		return fmt.Errorf("max_strikes_temp_ban (%d) must be lower than max_strikes_perm_ban (%d)",
			m.MaxStrikesTempBan, m.MaxStrikesPermBan)
	}
	if !(m.ToxicityThresholdLow < m.ToxicityThresholdMedium && m.ToxicityThresholdMedium < m.ToxicityThresholdHigh) {
		return fmt.Errorf("toxicity thresholds must be strictly ascending: %.2f, %.2f, %.2f",
			m.ToxicityThresholdLow, m.ToxicityThresholdMedium, m.ToxicityThresholdHigh)
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
