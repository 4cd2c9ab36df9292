package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultDir returns the per-user state directory, ~/.newsdesk
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newsdesk"
	}
	return filepath.Join(home, ".newsdesk")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "newsdesk")
	v.SetDefault("run_mode", "production")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 4100)

	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")

	v.SetDefault("graphql.endpoint", "http://localhost:4000/graphql")
	v.SetDefault("graphql.timeout", 30*time.Second)
	v.SetDefault("graphql.user_agent", "newsdesk")
	v.SetDefault("graphql.breaker.enabled", false)
	v.SetDefault("graphql.breaker.max_requests", 1)
	v.SetDefault("graphql.breaker.interval", time.Minute)
	v.SetDefault("graphql.breaker.timeout", 30*time.Second)
	v.SetDefault("graphql.breaker.failure_threshold", 5)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(DefaultDir(), "store.json"))
	v.SetDefault("storage.sqlite.source", filepath.Join(DefaultDir(), "store.db"))
	v.SetDefault("storage.redis.addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "newsdesk:")

	v.SetDefault("assets.provider", "cloudinary")
	v.SetDefault("assets.cloudinary.cloud_name", "dboyuslx5")
	v.SetDefault("assets.cloudinary.upload_preset", "news_uploads")
	v.SetDefault("assets.cloudinary.folder", "news")
	v.SetDefault("assets.s3.use_ssl", true)
	v.SetDefault("assets.s3.prefix", "news")

	v.SetDefault("observes.tracer.sampling_rate", 1.0)
}
