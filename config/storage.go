package config

import (
	"github.com/spf13/viper"
)

// Storage selects and configures the local key-value store that holds the
// session and the news draft.
type Storage struct {
	Driver string `json:"driver" yaml:"driver"` // file | sqlite | redis | memory
	Path   string `json:"path" yaml:"path"`
	Sqlite *Sqlite
	Redis  *Redis
}

// Sqlite store settings
type Sqlite struct {
	Source string `json:"source" yaml:"source"`
}

// Redis store settings
type Redis struct {
	Addr     string `json:"addr" yaml:"addr"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix" yaml:"prefix"`
}

// getStorageConfig get storage config
func getStorageConfig(v *viper.Viper) *Storage {
	return &Storage{
		Driver: v.GetString("storage.driver"),
		Path:   v.GetString("storage.path"),
		Sqlite: &Sqlite{
			Source: v.GetString("storage.sqlite.source"),
		},
		Redis: &Redis{
			Addr:     v.GetString("storage.redis.addr"),
			Username: v.GetString("storage.redis.username"),
			Password: v.GetString("storage.redis.password"),
			DB:       v.GetInt("storage.redis.db"),
			Prefix:   v.GetString("storage.redis.prefix"),
		},
	}
}
