package helpers

import (
	"testing"

	"github.com/kode4food/sluice/internal/config"
	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/events"
)

// TestEnv holds all the components needed for engine testing
type TestEnv struct {
	Engine   *engine.Engine
	Registry *engine.Registry
	Store    *engine.Store
	Hub      *events.Hub
	Config   *config.Config
	Cleanup  func()
}

// NewTestConfig creates a configuration suitable for tests: debug
// logging, a short task timeout, and rate limiting disabled
func NewTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LogLevel = "debug"
	cfg.AuthSecret = "test-secret-0123456789abcdef0123456789abcdef"
	cfg.TaskTimeout = 5
	cfg.RateLimitEnabled = false
	return cfg
}

// NewTestEngine creates a fully configured engine environment backed by
// a fresh registry, store, and event hub
func NewTestEngine(t *testing.T) *TestEnv {
	t.Helper()

	cfg := NewTestConfig()
	registry := engine.NewRegistry()
	store := engine.NewStore()
	hub := events.NewHub()

	return &TestEnv{
		Engine:   engine.New(registry, store, hub, cfg),
		Registry: registry,
		Store:    store,
		Hub:      hub,
		Config:   cfg,
		Cleanup:  hub.Close,
	}
}

// WithTestEnv runs a test function against a fresh engine environment
// and tears it down afterward
func WithTestEnv(t *testing.T, fn func(*TestEnv)) {
	t.Helper()

	env := NewTestEngine(t)
	defer env.Cleanup()
	fn(env)
}
