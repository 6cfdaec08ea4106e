package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected default backend timeout 10s, got %v", cfg.Backend.Timeout)
	}
	if !cfg.PayHere.Sandbox {
		t.Fatalf("expected sandbox to default to true")
	}
	if cfg.PayHere.Currency != "LKR" {
		t.Fatalf("expected default currency LKR, got %q", cfg.PayHere.Currency)
	}
	rate, err := cfg.Checkout.Rate()
	if err != nil {
		t.Fatalf("parsing default advance rate: %v", err)
	}
	if rate.String() != "0.5" {
		t.Fatalf("expected default advance rate 0.5, got %s", rate)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvPayHereSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvPayHereSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_BadAdvanceRate(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("CAMPMART_CHECKOUT_ADVANCE_RATE", "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected out-of-range advance rate to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvBackendBaseURL, "https://api.campmart.lk")
	t.Setenv(EnvPayHereMerchantID, "1211149")
	t.Setenv(EnvPayHereSecret, "TestSecret#42")
	t.Setenv(EnvPayHereReturnURL, "https://checkout.campmart.lk/payhere/return")
	t.Setenv(EnvPayHereCancelURL, "https://checkout.campmart.lk/payhere/cancel")
	t.Setenv(EnvPayHereNotifyURL, "https://api.campmart.lk/payments/notify")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
