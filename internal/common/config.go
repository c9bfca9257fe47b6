package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig   `mapstructure:"db"`
	DocumentAI DocumentAIConfig `mapstructure:"docai"`
	Output     OutputConfig     `mapstructure:"output"`
	Batch      BatchConfig      `mapstructure:"batch"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver           string        `mapstructure:"driver"` // "postgres" | "sqlite"
	DSN              string        `mapstructure:"url"`
	MaxConns         int32         `mapstructure:"max_conns"`
	MinConns         int32         `mapstructure:"min_conns"`
	MaxConnLifetime  time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime  time.Duration `mapstructure:"max_conn_idle_time"`
	DialTimeout      time.Duration `mapstructure:"dial_timeout"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// DocumentAIConfig identifies the remote processor and how to authenticate against it
type DocumentAIConfig struct {
	ProjectID       string        `mapstructure:"project_id"`
	Location        string        `mapstructure:"location"`
	ProcessorID     string        `mapstructure:"processor_id"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Endpoint        string        `mapstructure:"endpoint"` // overrides <location>-documentai.googleapis.com
	Timeout         time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds snapshot output settings
type OutputConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
	SnapshotDir  string `mapstructure:"snapshot_dir"`
}

// BatchConfig holds worker queue settings
type BatchConfig struct {
	Workers        int           `mapstructure:"workers"`
	QueueSize      int           `mapstructure:"queue_size"`
	ProcessTimeout time.Duration `mapstructure:"process_timeout"`
}

var defaults = map[string]any{
	"db.driver":             "postgres",
	"db.url":                "",
	"db.max_conns":          10,
	"db.min_conns":          1,
	"db.max_conn_lifetime":  30 * time.Minute,
	"db.max_conn_idle_time": 5 * time.Minute,
	"db.dial_timeout":       3 * time.Second,
	"db.statement_timeout":  0,

	"docai.project_id":       "",
	"docai.location":         "us",
	"docai.processor_id":     "",
	"docai.credentials_file": "",
	"docai.endpoint":         "",
	"docai.timeout":          2 * time.Minute,

	"output.snapshot_path": "output_data.json",
	"output.snapshot_dir":  "",

	"batch.workers":         4,
	"batch.queue_size":      256,
	"batch.process_timeout": 3 * time.Minute,
}

// LoadConfig loads configuration from an optional config file and environment variables.
// Environment keys are the upper-cased config keys with '.' replaced by '_' (db.url -> DB_URL).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError(CodeConfigError, fmt.Sprintf("read config %s", path), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewAppError(CodeConfigError, "decode config", err)
	}
	return &cfg, nil
}

// ValidateDatabase checks the settings needed to open the store.
func (c *Config) ValidateDatabase() error {
	v := NewValidator().
		Field("db.driver", c.Database.Driver, Required, OneOf("postgres", "sqlite"))
	if c.Database.Driver == "postgres" {
		v.Field("db.url", c.Database.DSN, Required)
	}
	return v.Error()
}

// ValidateDocumentAI checks the settings needed to call the remote processor.
func (c *Config) ValidateDocumentAI() error {
	return NewValidator().
		Field("docai.project_id", c.DocumentAI.ProjectID, Required).
		Field("docai.location", c.DocumentAI.Location, Required).
		Field("docai.processor_id", c.DocumentAI.ProcessorID, Required).
		Error()
}
