package providers

import (
	"github.com/km-arc/go-injector/config"
	"github.com/km-arc/go-injector/registry"
	"github.com/km-arc/go-injector/routing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Well-known binding keys registered by the framework providers.
var (
	ConfigKey = registry.Named("config")
	LoggerKey = registry.Named("logger")
	RouterKey = registry.Named("router")
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it under ConfigKey.
type ConfigServiceProvider struct {
	BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *registry.Registry) {
	envFiles := p.EnvFiles
	app.Create(ConfigKey, func(registry.Scope) (any, error) {
		return config.Load(envFiles...), nil
	})
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider builds a zap logger from the loaded configuration
// and binds it under LoggerKey: production config in production, development
// config elsewhere, level overridden by LOG_LEVEL when it parses.
type LoggerServiceProvider struct {
	BaseProvider
}

func (p *LoggerServiceProvider) Register(app *registry.Registry) {
	app.Create(LoggerKey, func(s registry.Scope) (any, error) {
		v, err := s.Get(ConfigKey)
		if err != nil {
			return nil, err
		}
		return buildLogger(v.(*config.Config))
	})
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.App.Env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router under RouterKey.
type RoutingServiceProvider struct {
	BaseProvider
}

func (p *RoutingServiceProvider) Register(app *registry.Registry) {
	app.Create(RouterKey, func(registry.Scope) (any, error) {
		return routing.New(), nil
	})
}
