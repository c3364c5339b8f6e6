package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Minio  MinioConfig  `yaml:"minio"`
	Engine EngineConfig `yaml:"engine"`
	Auth   AuthConfig   `yaml:"auth"`
	Store  StoreConfig  `yaml:"store"`
	Users  []User       `yaml:"users"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// EngineConfig configures the external document-analysis engine.
// Assistants maps a document category key to the ID of the analysis
// profile configured on the engine for that category.
type EngineConfig struct {
	APIURL          string            `yaml:"api_url"`
	APIKey          string            `yaml:"api_key"`
	PollIntervalSec int               `yaml:"poll_interval_seconds"`
	PollTimeoutSec  int               `yaml:"poll_timeout_seconds"`
	Assistants      map[string]string `yaml:"assistants"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type StoreConfig struct {
	MaxDocuments int `yaml:"max_documents"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"is_admin"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Engine.APIURL == "" {
		cfg.Engine.APIURL = "https://api.openai.com/v1"
	}
	if cfg.Engine.PollIntervalSec == 0 {
		cfg.Engine.PollIntervalSec = 2
	}
	if cfg.Engine.PollTimeoutSec == 0 {
		cfg.Engine.PollTimeoutSec = 300
	}
	if cfg.Store.MaxDocuments == 0 {
		cfg.Store.MaxDocuments = 100
	}

	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
