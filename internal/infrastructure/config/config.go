package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Survey   SurveyConfig   `mapstructure:"survey"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

// CorpusConfig describes where the lexical corpus comes from and where it is kept.
type CorpusConfig struct {
	Name      string        `mapstructure:"name"`
	URL       string        `mapstructure:"url"`
	DataDir   string        `mapstructure:"data_dir"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LemmaLang string        `mapstructure:"lemma_lang"`
}

// SurveyConfig holds defaults for the miss survey commands
type SurveyConfig struct {
	Dest string `mapstructure:"dest"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverSQLite     = "sqlite3"
	DriverSQLitePure = "sqlite"
	DriverPostgres   = "postgres"
	DriverPgx        = "pgx"
)

// Load reads configuration from file and environment variables.
// An explicit file path takes precedence over the .env lookup.
func Load(file ...string) (*Config, error) {
	v := viper.New()
	if len(file) > 0 && strings.TrimSpace(file[0]) != "" {
		v.SetConfigFile(file[0])
	} else {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "atservices")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.log_sql", false)

	// Corpus defaults
	v.SetDefault("corpus.name", "collatinus")
	v.SetDefault("corpus.url", "https://github.com/biblissima/collatinus/archive/refs/heads/master.zip")
	v.SetDefault("corpus.data_dir", "data")
	v.SetDefault("corpus.timeout", 5*time.Minute)
	v.SetDefault("corpus.lemma_lang", "lat")

	v.SetDefault("survey.dest", "misses.csv")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// DatabaseDriver returns the normalized database/sql driver name.
func (c *Config) DatabaseDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch driver {
	case "", DriverSQLite:
		return DriverSQLite, nil
	case DriverSQLitePure:
		return DriverSQLitePure, nil
	case "postgresql", DriverPostgres:
		return DriverPostgres, nil
	case DriverPgx:
		return DriverPgx, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
}

// DatabaseURL returns the connection string for the configured driver.
func (c *Config) DatabaseURL() (string, error) {
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn, nil
	}
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	switch driver {
	case DriverSQLite:
		return fmt.Sprintf("file:%s.db?_fk=1", c.Database.Name), nil
	case DriverSQLitePure:
		return fmt.Sprintf("file:%s.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", c.Database.Name), nil
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	), nil
}
