package config

import (
	"time"

	"github.com/spf13/viper"
)

// GraphQL holds the remote API settings
type GraphQL struct {
	Endpoint  string        `json:"endpoint" yaml:"endpoint"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
	Breaker   *Breaker      `json:"breaker" yaml:"breaker"`
}

// Breaker configures the optional circuit breaker in front of the API
type Breaker struct {
	Enabled          bool          `json:"enabled" yaml:"enabled"`
	MaxRequests      uint32        `json:"max_requests" yaml:"max_requests"`
	Interval         time.Duration `json:"interval" yaml:"interval"`
	Timeout          time.Duration `json:"timeout" yaml:"timeout"`
	FailureThreshold uint32        `json:"failure_threshold" yaml:"failure_threshold"`
}

func getGraphQLConfig(v *viper.Viper) *GraphQL {
	return &GraphQL{
		Endpoint:  v.GetString("graphql.endpoint"),
		Timeout:   getDurationOrDefault(v, "graphql.timeout", 30*time.Second),
		UserAgent: v.GetString("graphql.user_agent"),
		Breaker: &Breaker{
			Enabled:          v.GetBool("graphql.breaker.enabled"),
			MaxRequests:      getUint32OrDefault(v, "graphql.breaker.max_requests", 1),
			Interval:         getDurationOrDefault(v, "graphql.breaker.interval", time.Minute),
			Timeout:          getDurationOrDefault(v, "graphql.breaker.timeout", 30*time.Second),
			FailureThreshold: getUint32OrDefault(v, "graphql.breaker.failure_threshold", 5),
		},
	}
}
