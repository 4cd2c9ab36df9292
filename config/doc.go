// Package config loads newsdesk configuration with Viper from a YAML file,
// NEWSDESK_* environment variables and built-in defaults.
//
// Example config.yaml:
//
//	app_name: newsdesk
//	run_mode: development
//
//	server:
//	  host: 127.0.0.1
//	  port: 4100
//
//	graphql:
//	  endpoint: https://api.example.com/graphql
//	  timeout: 30s
//
//	storage:
//	  driver: sqlite            # file | sqlite | redis | memory
//	  sqlite:
//	    source: /var/lib/newsdesk/store.db
//
//	assets:
//	  provider: cloudinary      # cloudinary | s3
//	  cloudinary:
//	    cloud_name: demo
//	    upload_preset: news_uploads
//
// Environment variables take precedence over the file, with dots replaced by
// underscores:
//
//	export NEWSDESK_GRAPHQL_ENDPOINT=https://api.example.com/graphql
//
// Watch reloads the file on change:
//
//	cfg.Watch(func(c *config.Config) {
//	    logger.Infof(ctx, "config reloaded, endpoint %s", c.GraphQL.Endpoint)
//	}, nil)
package config
