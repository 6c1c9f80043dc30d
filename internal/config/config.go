package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Database Database `envPrefix:"DATABASE_"`
	Session  Session  `envPrefix:"SESSION_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
	Account  Account  `envPrefix:"ACCOUNT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Database struct {
	Path string `env:"PATH" envDefault:"demo.db"`
}

type Session struct {
	TTL time.Duration `env:"TTL" envDefault:"24h"`
}

// Checkout holds the order integrity protocol settings. SigningKey is
// hex-encoded and has no default: the service refuses to start without one.
type Checkout struct {
	SigningKey    string        `env:"SIGNING_KEY,required,notEmpty"`
	CommitmentTTL time.Duration `env:"COMMITMENT_TTL" envDefault:"15m"`
}

type Account struct {
	// starting balance for newly registered demo accounts, in minor units
	StartingBalance int64 `env:"STARTING_BALANCE" envDefault:"50000"`
}
