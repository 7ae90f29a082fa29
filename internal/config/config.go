// Package config loads board settings with Viper from a YAML file,
// QUOTEBOARD_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"quoteboard/internal/logging"
)

const EnvPrefix = "QUOTEBOARD"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// DefaultSessionSecret is the built-in cookie secret. Anyone can derive the
// cookie keys from it.
const DefaultSessionSecret = "change-me-in-production"

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	Environment     string        `mapstructure:"environment" yaml:"environment"`
	StaticDir       string        `mapstructure:"static_dir" yaml:"static_dir"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type DataConfig struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	PostsFile    string `mapstructure:"posts_file" yaml:"posts_file"`
	ContactsFile string `mapstructure:"contacts_file" yaml:"contacts_file"`
	Watch        bool   `mapstructure:"watch" yaml:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type SessionConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Secret string `mapstructure:"secret" yaml:"secret"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Environment:     EnvProduction,
			StaticDir:       "./web/static",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Data: DataConfig{
			Dir:          "./data",
			PostsFile:    "posts.json",
			ContactsFile: "contacts.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			Name:   "quoteboard",
			Secret: DefaultSessionSecret,
		},
	}
}

// SetDefaults registers every default with v so that environment variables
// are picked up by Unmarshal even for keys missing from the config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.environment", d.Server.Environment)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("data.dir", d.Data.Dir)
	v.SetDefault("data.posts_file", d.Data.PostsFile)
	v.SetDefault("data.contacts_file", d.Data.ContactsFile)
	v.SetDefault("data.watch", d.Data.Watch)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("session.name", d.Session.Name)
	v.SetDefault("session.secret", d.Session.Secret)
}

// NewViper returns a Viper instance with defaults and environment binding.
// When file is empty, quoteboard.yml in the working directory is used if
// present.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file == "" {
		file = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("quoteboard")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file into v. A missing default file is not an
// error; a missing explicit file is.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.Environment = strings.ToLower(strings.TrimSpace(cfg.Server.Environment))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	switch c.Server.Environment {
	case EnvProduction, EnvDevelopment, "test":
	default:
		return fmt.Errorf("server.environment %q must be production, development or test", c.Server.Environment)
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	for key, name := range map[string]string{
		"data.posts_file":    c.Data.PostsFile,
		"data.contacts_file": c.Data.ContactsFile,
	} {
		if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("%s %q must be a plain file name", key, name)
		}
	}
	if c.Data.PostsFile == c.Data.ContactsFile {
		return fmt.Errorf("data.posts_file and data.contacts_file must differ")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	if c.Session.Name == "" {
		return fmt.Errorf("session.name must not be empty")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret must not be empty")
	}
	return nil
}

// Warnings lists settings that load fine but should not reach production.
func (c *Config) Warnings() []string {
	var w []string
	if c.IsProduction() && c.Session.Secret == DefaultSessionSecret {
		w = append(w, "session.secret is the built-in default; flash cookies can be forged, set QUOTEBOARD_SESSION_SECRET")
	}
	return w
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func (c *Config) PostsPath() string {
	return filepath.Join(c.Data.Dir, c.Data.PostsFile)
}

func (c *Config) ContactsPath() string {
	return filepath.Join(c.Data.Dir, c.Data.ContactsFile)
}

// LoggerConfig translates the log section for the logging package.
func (c *Config) LoggerConfig() *logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = c.Log.Format
	return lc
}

// WriteYAML writes c to path, refusing to overwrite an existing file.
func WriteYAML(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
