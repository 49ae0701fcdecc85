package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// envOnce ensures .env files are loaded exactly once per process.
	envOnce sync.Once

	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into the provided configuration struct.
// The result is cached per concrete type, so repeated calls with the same
// type return the initially loaded value regardless of later environment
// changes. A .env file in the working directory is loaded on first use;
// its absence is not an error.
func Load[T any](cfg *T) error {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})

	cacheMu.Lock()
	defer cacheMu.Unlock()

	typ := reflect.TypeOf(*cfg)
	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to load %s: %w", typ, err)
	}

	cache[typ] = *cfg
	return nil
}

// MustLoad is like Load but panics on failure.
// Intended for application startup where a missing required variable
// should stop the process immediately.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
