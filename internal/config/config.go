package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is shared by both binaries; each reads the sections it needs.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	DB        DBConfig        `mapstructure:"db"`
	Client    ClientConfig    `mapstructure:"client"`
	Log       LogConfig       `mapstructure:"log"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// AuthConfig is the single accepted credential pair.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ClientConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	StatePath string        `mapstructure:"state_path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type SimulatorConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Tick    time.Duration `mapstructure:"tick"`
}

// Options locates the inputs. Zero values mean: optional .env in the
// working directory, optional configs/config.yml, no flags.
type Options struct {
	ConfigFile string
	EnvFile    string
	Flags      *pflag.FlagSet
}

// envBindings keeps the environment variable names the deployment already uses.
var envBindings = map[string]string{
	"auth.username":   "AUTH_USERNAME",
	"auth.password":   "AUTH_PASSWORD",
	"server.port":     "API_PORT",
	"client.base_url": "API_BASE_URL",
}

// flagBindings maps command-line flag names onto config keys.
var flagBindings = map[string]string{
	"port":      "server.port",
	"db":        "db.path",
	"base-url":  "client.base_url",
	"timeout":   "client.timeout",
	"state":     "client.state_path",
	"log-level": "log.level",
	"dev":       "log.development",
	"simulate":  "simulator.enabled",
}

var (
	ErrMissingAuth     = errors.New("AUTH_USERNAME and AUTH_PASSWORD must be set")
	ErrInvalidUsername = errors.New("auth username must not contain ':'")
	ErrInvalidTick     = errors.New("simulator.tick must be positive")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("db.path", "autogrow.db")
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.timeout", 15*time.Second)
	v.SetDefault("client.state_path", "autogrow-state.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", 5*time.Second)
}

// Load resolves configuration with precedence flags > environment >
// config file > defaults.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagBindings {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads a .env file into the process environment without
// overriding variables that are already set. A missing default file is fine.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ValidateServer enforces what the verification service needs to start.
func (c *Config) ValidateServer() error {
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return ErrMissingAuth
	}
	if strings.Contains(c.Auth.Username, ":") {
		return ErrInvalidUsername
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTick, c.Simulator.Tick)
	}
	return nil
}
