package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskspace/domain"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	TaskAPI     TaskAPIConfig
	Auth        AuthConfig
	Journal     JournalConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type TaskAPIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	ProbeInterval time.Duration
	// DueDateLocation interprets zone-less due dates.
	DueDateLocation *time.Location
}

type AuthConfig struct {
	CredentialsFile string
	Credentials     domain.CredentialTable
}

type JournalConfig struct {
	Path           string
	RetentionHours int
	PruneInterval  time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Options override values otherwise taken from the environment.
type Options struct {
	EnvFile         string
	CredentialsFile string
	Address         string
}

// LoadWith reads configuration from environment variables (optionally a
// .env file), applies defaults and then the command-line overrides in opts.
func LoadWith(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	loc, err := time.LoadLocation(getString("DUE_DATE_LOCATION", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("DUE_DATE_LOCATION: %w", err)
	}

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskspace"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		TaskAPI: TaskAPIConfig{
			BaseURL:         getString("TASK_API_URL", "https://task-api-w4t2.onrender.com"),
			Timeout:         getDuration("TASK_API_TIMEOUT", 10*time.Second),
			ProbeInterval:   getDuration("TASK_API_PROBE_INTERVAL", 30*time.Second),
			DueDateLocation: loc,
		},
		Auth: AuthConfig{
			CredentialsFile: getString("CREDENTIALS_FILE", ""),
		},
		Journal: JournalConfig{
			Path:           getString("JOURNAL_PATH", "./data/journal.db"),
			RetentionHours: getInt("JOURNAL_RETENTION_HOURS", 24*14),
			PruneInterval:  getDuration("JOURNAL_PRUNE_INTERVAL", time.Hour),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if opts.CredentialsFile != "" {
		cfg.Auth.CredentialsFile = opts.CredentialsFile
	}
	if opts.Address != "" {
		host, port, err := splitAddress(opts.Address)
		if err != nil {
			return nil, err
		}
		cfg.HTTP.Host, cfg.HTTP.Port = host, port
	}

	creds, err := loadCredentials(cfg.Auth.CredentialsFile, os.Getenv("AUTH_USERS"))
	if err != nil {
		return nil, err
	}
	cfg.Auth.Credentials = creds

	return cfg, nil
}

type credentialsFile struct {
	Users map[string]domain.Credential `yaml:"users"`
}

// loadCredentials merges the YAML credential file with AUTH_USERS entries.
// Environment entries win over file entries with the same username.
func loadCredentials(path, env string) (domain.CredentialTable, error) {
	table := domain.CredentialTable{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		var file credentialsFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		for name, cred := range file.Users {
			if !cred.Role.Valid() {
				return nil, fmt.Errorf("credentials: user %q has unknown role %q", name, cred.Role)
			}
			table[name] = cred
		}
	}

	for _, entry := range strings.Split(env, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("AUTH_USERS: malformed entry %q, want name:password:role", entry)
		}
		role := domain.Role(parts[2])
		if !role.Valid() {
			return nil, fmt.Errorf("AUTH_USERS: user %q has unknown role %q", parts[0], parts[2])
		}
		table[parts[0]] = domain.Credential{Password: parts[1], Role: role}
	}
	return table, nil
}

func splitAddress(addr string) (string, string, error) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return "", "", fmt.Errorf("address %q: missing port", addr)
	}
	host := addr[:i]
	if host == "" {
		host = "0.0.0.0"
	}
	return host, addr[i+1:], nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// JournalRetention returns the retention window as a duration.
func (c *Config) JournalRetention() time.Duration {
	return time.Duration(c.Journal.RetentionHours) * time.Hour
}
