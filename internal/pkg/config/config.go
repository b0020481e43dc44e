// Package config reads the client configuration from the environment, an optional .env file and
// an optional YAML accounts file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL      = "PATHE_BASE_URL"
	EnvAPIURL       = "PATHE_API_URL"
	EnvUsername     = "PATHE_USERNAME"
	EnvPassword     = "PATHE_PASSWORD"
	EnvInsecureTLS  = "PATHE_INSECURE_TLS"
	EnvTimeout      = "PATHE_TIMEOUT"
	EnvDBURL        = "PATHE_DB_URL"
	EnvAccountsFile = "PATHE_ACCOUNTS_FILE"
	EnvDebug        = "PATHE_DEBUG"

	DefaultBaseURL = "https://www.pathe.nl"
	DefaultAPIURL  = "https://api.pathe.nl"
	DefaultTimeout = 30 * time.Second

	SourcePortal = "portal"
	SourceAPI    = "api"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type Account struct {
	Name        string `yaml:"name"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	PasswordEnv string `yaml:"password_env"`
	Source      string `yaml:"source"` // portal (default) or api
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

type Config struct {
	BaseURL      string
	APIURL       string
	Username     string
	Password     string
	InsecureTLS  bool
	Timeout      time.Duration
	DBURL        string
	AccountsFile string
	Debug        bool
	Accounts     []Account
}

// Load reads the configuration. Variables from lookup take precedence over those in envFile, which
// may be empty or missing.
func Load(envFile string, lookup LookupFunc) (Config, error) {
	fileValues := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		default:
			fileValues = values
		}
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileValues[key])
	}

	cfg := Config{
		BaseURL:      orDefault(get(EnvBaseURL), DefaultBaseURL),
		APIURL:       orDefault(get(EnvAPIURL), DefaultAPIURL),
		Username:     get(EnvUsername),
		Password:     get(EnvPassword),
		DBURL:        get(EnvDBURL),
		AccountsFile: get(EnvAccountsFile),
		Timeout:      DefaultTimeout,
	}

	var err error
	if cfg.InsecureTLS, err = parseBool(EnvInsecureTLS, get(EnvInsecureTLS)); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = parseBool(EnvDebug, get(EnvDebug)); err != nil {
		return Config{}, err
	}
	if raw := get(EnvTimeout); raw != "" {
		if cfg.Timeout, err = time.ParseDuration(raw); err != nil || cfg.Timeout <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q is not a positive duration", ErrInvalidConfig, EnvTimeout, raw)
		}
	}

	if cfg.AccountsFile != "" {
		if cfg.Accounts, err = LoadAccounts(cfg.AccountsFile, get); err != nil {
			return Config{}, err
		}
	} else if cfg.Username != "" {
		cfg.Accounts = []Account{{Name: cfg.Username, Username: cfg.Username, Password: cfg.Password, Source: SourcePortal}}
	}

	return cfg, nil
}

// LoadAccounts reads the accounts file. Passwords may be given inline or by the name of a variable.
func LoadAccounts(path string, get func(string) string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var file accountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	seen := map[string]bool{}
	for i := range file.Accounts {
		a := &file.Accounts[i]
		if a.Username == "" {
			return nil, fmt.Errorf("%w: account %d has no username", ErrInvalidConfig, i+1)
		}
		if a.Name == "" {
			a.Name = a.Username
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%w: duplicate account %q", ErrInvalidConfig, a.Name)
		}
		seen[a.Name] = true

		if a.Password == "" && a.PasswordEnv != "" {
			a.Password = get(a.PasswordEnv)
		}
		if a.Password == "" {
			return nil, fmt.Errorf("%w: account %q has no password", ErrInvalidConfig, a.Name)
		}

		switch a.Source {
		case "":
			a.Source = SourcePortal
		case SourcePortal, SourceAPI:
		default:
			return nil, fmt.Errorf("%w: account %q has unknown source %q", ErrInvalidConfig, a.Name, a.Source)
		}
	}

	return file.Accounts, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(key, raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, raw)
	}
	return b, nil
}
