package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-injector/config"
	"github.com/km-arc/go-injector/providers"
	"github.com/km-arc/go-injector/registry"
	"github.com/km-arc/go-injector/routing"
)

// Application is the top-level application container.
// It embeds the binding Registry and carries the ProviderRegistry so user
// code can call app.Bind(), app.Use(), app.Register() directly.
type Application struct {
	*registry.Registry
	Providers *providers.ProviderRegistry
}

// New creates and bootstraps the application.
func New(envFiles ...string) *Application {
	c := registry.New()
	reg := providers.NewProviderRegistry(c)

	app := &Application{
		Registry:  c,
		Providers: reg,
	}

	// Framework core providers, in dependency order
	reg.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	reg.Register(&providers.LoggerServiceProvider{})
	reg.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider providers.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the registry.
func (a *Application) Config() *config.Config {
	return registry.MustResolve[*config.Config](a.Registry, providers.ConfigKey)
}

// Logger resolves the application *zap.Logger from the registry.
func (a *Application) Logger() *zap.Logger {
	return registry.MustResolve[*zap.Logger](a.Registry, providers.LoggerKey)
}

// Router resolves *routing.Router from the registry.
func (a *Application) Router() *routing.Router {
	return registry.MustResolve[*routing.Router](a.Registry, providers.RouterKey)
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	logger := a.Logger()
	addr := ":" + cfg.App.Port
	logger.Info("server starting",
		zap.String("app", cfg.App.Name),
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
	)
	return http.ListenAndServe(addr, a.Router())
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
