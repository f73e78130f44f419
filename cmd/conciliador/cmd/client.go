package cmd

import (
	"time"

	"github.com/ofitec/conciliador/pkg/cache"
	"github.com/ofitec/conciliador/pkg/config"
	"github.com/ofitec/conciliador/pkg/mapping"
	"github.com/ofitec/conciliador/pkg/reconcile"
)

// newClient builds a reconciliation client from configuration. When a Redis
// address is configured, suggestion responses are cached there.
func newClient(cfg *config.Config) *reconcile.Client {
	var suggestionCache cache.Repository
	if cfg.API.RedisAddr != "" {
		suggestionCache = cache.NewRedis(cfg.API.RedisAddr, 5*time.Minute)
	}

	return reconcile.NewClient(reconcile.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Cache:   suggestionCache,
	})
}

// loadMapper loads the target-kind mapping: the configured YAML file when
// set, the built-in defaults otherwise.
func loadMapper(cfg *config.Config) *mapping.Mapper {
	if cfg.Local.MappingPath == "" {
		return mapping.Default()
	}
	mapper, err := mapping.NewMapper(cfg.Local.MappingPath)
	exitOnError(err, "failed to load mapping")
	return mapper
}
