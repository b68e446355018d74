package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Pipeline PipelineConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey     string
	APIKeyFile string
	Model      string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

type PipelineConfig struct {
	MinResumeWords int
}

var defaults = map[string]any{
	"port":                "3000",
	"env":                 "development",
	"log_json":            false,
	"log_debug":           false,
	"db_enabled":          false,
	"db_host":             "localhost",
	"db_port":             "5432",
	"db_user":             "postgres",
	"db_password":         "postgres",
	"db_name":             "resume_analyzer",
	"gemini_api_key":      "",
	"gemini_api_key_file": "",
	"gemini_model":        "gemini-2.5-flash",
	"upload_path":         "./uploads",
	"max_file_size":       int64(10485760),
	"worker_concurrency":  3,
	"retry_max_attempts":  3,
	"retry_initial_delay": "2s",
	"min_resume_words":    50,
}

// LoadDotEnv reads .env into the process environment when present.
// It reports whether a file was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load resolves the configuration from v. Keys are looked up in the environment
// (PORT, GEMINI_MODEL, ...) and in any flags bound to v by the caller.
func Load(v *viper.Viper) *Config {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("port"),
			Env:  v.GetString("env"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("log_json"),
			Debug: v.GetBool("log_debug"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("db_enabled"),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
		},
		Gemini: GeminiConfig{
			APIKey:     v.GetString("gemini_api_key"),
			APIKeyFile: v.GetString("gemini_api_key_file"),
			Model:      v.GetString("gemini_model"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("upload_path"),
			MaxFileSize: v.GetInt64("max_file_size"),
		},
		Worker: WorkerConfig{
			Concurrency:       positiveOr(v.GetInt("worker_concurrency"), 3),
			RetryMaxAttempts:  positiveOr(v.GetInt("retry_max_attempts"), 3),
			RetryInitialDelay: durationOr(v.GetString("retry_initial_delay"), 2*time.Second),
		},
		Pipeline: PipelineConfig{
			MinResumeWords: positiveOr(v.GetInt("min_resume_words"), 50),
		},
	}

	return cfg
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func durationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	return fallback
}
