package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the outcome of parsing one config type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache         sync.Map // reflect.Type -> *entry
	defaultDotenv sync.Once
)

// LoadEnv loads the given dotenv files into the process environment.
// Variables already set are kept. Call it before the first Load when the
// files are not ./.env.
func LoadEnv(paths ...string) error {
	defaultDotenv.Do(func() {})
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// Load fills v from the environment. Each type is parsed once per process;
// later calls copy the cached value, or return the cached error.
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultDotenv.Do(func() {
		// ./.env is optional
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	actual, _ := cache.LoadOrStore(key, &entry{})
	e := actual.(*entry)

	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load for startup code: it panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
