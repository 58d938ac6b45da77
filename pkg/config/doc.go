// Package config loads typed configuration from environment variables with
// github.com/caarlos0/env, reading an optional .env file through godotenv
// first.
//
//	type AppConfig struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		HTTP httpserver.Config
//		CEP  cep.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Every struct type is parsed once; the result (or the error) is cached for
// the lifetime of the process.
package config
