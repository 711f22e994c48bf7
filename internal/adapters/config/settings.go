package config

import (
	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"
)

// Environment variables bound to Settings.
const (
	EnvStatePath    = "QUANT_STATE"
	EnvRedisAddr    = "QUANT_REDIS_ADDR"
	EnvRedisChannel = "QUANT_REDIS_CHANNEL"
	EnvTelemetry    = "QUANT_TELEMETRY"
)

// Defaults applied when the environment leaves a setting unset or empty.
// They mirror the envDefault tags on Settings.
const (
	DefaultStatePath    = ".quant/valuations.json"
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisChannel = "quant:market"
	DefaultTelemetry    = TelemetryProgrock
)

// Telemetry backends accepted by EnvTelemetry.
const (
	TelemetryProgrock = "progrock"
	TelemetryOff      = "off"
)

// Settings holds the runtime configuration shared by the adapters.
type Settings struct {
	StatePath    string `env:"QUANT_STATE"         envDefault:".quant/valuations.json"`
	RedisAddr    string `env:"QUANT_REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisChannel string `env:"QUANT_REDIS_CHANNEL" envDefault:"quant:market"`
	Telemetry    string `env:"QUANT_TELEMETRY"     envDefault:"progrock"`
}

// LoadSettings binds Settings from environ. A nil environ reads the process
// environment.
func LoadSettings(environ map[string]string) (Settings, error) {
	s, err := env.ParseAsWithOptions[Settings](env.Options{Environment: environ})
	if err != nil {
		return Settings{}, zerr.Wrap(err, "failed to read settings from environment")
	}
	return s, nil
}
