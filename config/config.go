package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	logcfg "github.com/ncobase/newsdesk/logging/logger/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. NEWSDESK_GRAPHQL_ENDPOINT for graphql.endpoint.
const EnvPrefix = "NEWSDESK"

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Server   *Server
	Logger   *logcfg.Config
	GraphQL  *GraphQL
	Storage  *Storage
	Assets   *Assets
	Observes *Observes
	Viper    *viper.Viper

	path string
	mu   sync.Mutex
}

// Server holds the local dashboard listener settings
type Server struct {
	Host string
	Port int
}

// Addr returns host:port
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig loads the configuration. An empty path searches the default
// locations; a missing file there is not an error and defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.newsdesk")
		v.AddConfigPath("/etc/newsdesk")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	cfg.path = configPath
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Server: &Server{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Logger:   logcfg.GetConfig(v),
		GraphQL:  getGraphQLConfig(v),
		Storage:  getStorageConfig(v),
		Assets:   getAssetsConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}
}

// ConfigFile returns the file the configuration was read from, if any
func (c *Config) ConfigFile() string {
	return c.Viper.ConfigFileUsed()
}

// IsDevelopment reports whether run_mode is development
func (c *Config) IsDevelopment() bool {
	return c.RunMode == "development" || c.RunMode == "debug"
}

// Reload re-reads the underlying file and refreshes every section in place.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	next := fromViper(c.Viper)
	c.AppName = next.AppName
	c.RunMode = next.RunMode
	c.Server = next.Server
	c.Logger = next.Logger
	c.GraphQL = next.GraphQL
	c.Storage = next.Storage
	c.Assets = next.Assets
	c.Observes = next.Observes
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
// onError receives reload failures; callback receives the refreshed config.
func (c *Config) Watch(callback func(*Config), onError func(error)) {
	if c.ConfigFile() == "" {
		return
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		if err := c.Reload(); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if callback != nil {
			callback(c)
		}
	})
	c.Viper.WatchConfig()
}
