package app_test

import (
	"testing"

	"github.com/km-arc/go-injector/app"
	"github.com/km-arc/go-injector/registry"
)

func TestNew_CoreServicesResolvable(t *testing.T) {
	t.Setenv("APP_NAME", "KernelTest")
	t.Setenv("APP_ENV", "testing")

	application := app.New()
	application.Boot()

	if cfg := application.Config(); cfg.App.Name != "KernelTest" {
		t.Errorf("Config().App.Name: got %q want %q", cfg.App.Name, "KernelTest")
	}
	if application.Logger() == nil {
		t.Error("expected Logger() to resolve")
	}
	if application.Router() == nil {
		t.Error("expected Router() to resolve")
	}
}

func TestApplication_EnvironmentHelpers(t *testing.T) {
	t.Setenv("APP_ENV", "testing")

	application := app.New()
	application.Boot()

	if !application.IsTesting() {
		t.Error("IsTesting() should be true when APP_ENV=testing")
	}
	if application.IsProduction() {
		t.Error("IsProduction() should be false when APP_ENV=testing")
	}
	if application.Environment() != "testing" {
		t.Errorf("Environment(): got %q want %q", application.Environment(), "testing")
	}
}

func TestApplication_UserBindingsResolveFrameworkServices(t *testing.T) {
	t.Setenv("APP_ENV", "testing")

	application := app.New()
	application.Use(registry.Named("greeting"), "hello")
	application.Boot()

	got, err := application.Get(registry.Named("greeting"))
	if err != nil {
		t.Fatalf("greeting: %v", err)
	}
	if got != "hello" {
		t.Errorf("greeting: got %q want %q", got, "hello")
	}
}
