package main

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-injector/app"
	"github.com/km-arc/go-injector/providers"
	"github.com/km-arc/go-injector/registry"
	"github.com/km-arc/go-injector/routing"
)

// ── Demo services ────────────────────────────────────────────────────────────

type Clock struct{}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Now() time.Time { return time.Now() }

// Greeter depends on the Clock and a logger, wired by constructor injection.
type Greeter struct {
	clock  *Clock
	logger *zap.Logger
}

func NewGreeter(clock *Clock, logger *zap.Logger) *Greeter {
	return &Greeter{clock: clock, logger: logger}
}

func (g *Greeter) Greet(name string) string {
	g.logger.Debug("greeting", zap.String("name", name))
	hour := g.clock.Now().Hour()
	switch {
	case hour < 12:
		return "Good morning, " + name
	case hour < 18:
		return "Good afternoon, " + name
	default:
		return "Good evening, " + name
	}
}

// ── Binding keys ─────────────────────────────────────────────────────────────

var (
	clockClass   = registry.NewClass(NewClock)
	greeterClass = registry.NewClass(NewGreeter,
		registry.Inject(clockClass.Key()),
		registry.Inject(providers.LoggerKey),
	)
	greeterKey = registry.Named("greeter")
	bannerKey  = registry.Named("banner")
)

// AppServiceProvider wires the demo services.
type AppServiceProvider struct {
	providers.BaseProvider
}

func (p *AppServiceProvider) Register(a *registry.Registry) {
	a.Bind(clockClass.Key())
	a.Bind(greeterKey, greeterClass)
	a.Use(bannerKey, "go-injector demo")
}

func main() {
	application := app.New() // loads .env automatically
	application.Register(&AppServiceProvider{})
	application.Boot()

	r := application.Router()
	logger := application.Logger()

	// ── Basic routes ─────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		banner := registry.MustResolve[string](application.Registry, bannerKey)
		writeJSON(w, http.StatusOK, map[string]any{"message": banner})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/greet/{name}
		api.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
			greeter, err := registry.Resolve[*Greeter](application.Registry, greeterKey)
			if err != nil {
				logger.Error("resolving greeter", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
				return
			}
			name := routing.Param(req, "name")
			writeJSON(w, http.StatusOK, map[string]any{
				"greeting":   greeter.Greet(name),
				"request_id": routing.GetRequestID(req),
			})
		})

		// GET /api/v1/fresh — a brand-new Greeter per request via Inject
		api.Get("/fresh", func(w http.ResponseWriter, req *http.Request) {
			v, err := application.Inject(greeterClass)
			if err != nil {
				logger.Error("injecting greeter", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"greeting": v.(*Greeter).Greet("stranger"),
			})
		})
	})

	if err := application.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
