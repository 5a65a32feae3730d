package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MemoryDatabase is the filename that selects an in-memory SQLite database.
const MemoryDatabase = ":memory:"

// Config holds all configuration options for the duo task board
type Config struct {
	Database    DatabaseConfig    `yaml:"database" envPrefix:"DB_"`
	Server      ServerConfig      `yaml:"server" envPrefix:"SERVER_"`
	UI          UIConfig          `yaml:"ui" envPrefix:"UI_"`
	Users       UsersConfig       `yaml:"users" envPrefix:"USER"`
	Validation  ValidationConfig  `yaml:"validation" envPrefix:"VALIDATION_"`
	Log         LogConfig         `yaml:"log" envPrefix:"LOG_"`
	Application ApplicationConfig `yaml:"application" envPrefix:"APP_"`
	Commands    CommandsConfig    `yaml:"commands" envPrefix:"CMD_"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"DIR"`
	Filename       string        `yaml:"filename" env:"FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"QUERY_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	Compression     bool          `yaml:"compression" env:"COMPRESSION"`
}

// UIConfig holds browser board configuration
type UIConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
	DatastarURL  string        `yaml:"datastar_url" env:"DATASTAR_URL"`
}

// UsersConfig holds the names given to the two users when they are first created
type UsersConfig struct {
	User1Name string `yaml:"user1_name" env:"1_NAME"`
	User2Name string `yaml:"user2_name" env:"2_NAME"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `yaml:"title_max_length" env:"TITLE_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"DESCRIPTION_MAX"`
	UserNameMaxLength    int `yaml:"user_name_max_length" env:"USER_NAME_MAX"`
	ImportMaxTasks       int `yaml:"import_max_tasks" env:"IMPORT_MAX_TASKS"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat   string `yaml:"list_default_format" env:"LIST_DEFAULT_FORMAT"`
	ExportDefaultFormat string `yaml:"export_default_format" env:"EXPORT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".duo")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "duo.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Compression:     true,
		},
		UI: UIConfig{
			PollInterval: 3 * time.Second,
			DatastarURL:  "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js",
		},
		Users: UsersConfig{
			User1Name: "User One",
			User2Name: "User Two",
		},
		Validation: ValidationConfig{
			TitleMaxLength:       200,
			DescriptionMaxLength: 2000,
			UserNameMaxLength:    50,
			ImportMaxTasks:       500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Commands: CommandsConfig{
			ListDefaultFormat:   "table",
			ExportDefaultFormat: "json",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == MemoryDatabase {
		return MemoryDatabase
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Dir == "" && c.Database.Filename != MemoryDatabase {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	if c.UI.PollInterval < 100*time.Millisecond {
		return &ConfigError{Field: "ui.poll_interval", Message: "poll interval must be at least 100ms"}
	}
	if c.UI.DatastarURL == "" {
		return &ConfigError{Field: "ui.datastar_url", Message: "datastar script url cannot be empty"}
	}

	if strings.TrimSpace(c.Users.User1Name) == "" || strings.TrimSpace(c.Users.User2Name) == "" {
		return &ConfigError{Field: "users", Message: "default user names cannot be empty"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if c.Validation.UserNameMaxLength < 1 {
		return &ConfigError{Field: "validation.user_name_max_length", Message: "user name maximum length must be at least 1"}
	}
	if c.Validation.ImportMaxTasks < 1 {
		return &ConfigError{Field: "validation.import_max_tasks", Message: "import batch limit must be at least 1"}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "log.level", Message: "log level must be debug, info, warn or error"}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "log.format", Message: "log format must be text or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
