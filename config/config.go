package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

type Config struct {
	conf.Version
	Web  Web
	DB   DB
	Cors Cors
	Rate Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

// DB configures the document store. InMemory swaps Postgres for a process-local
// store, which is only useful for demos and local development.
type DB struct {
	User           string        `conf:"default:postgres"`
	Password       string        `conf:"default:postgres,mask"`
	Host           string        `conf:"default:localhost:5432"`
	Name           string        `conf:"default:courses"`
	MaxIdleConns   int           `conf:"default:2"`
	MaxOpenConns   int           `conf:"default:10"`
	DisableTLS     bool          `conf:"default:true"`
	ConnectTimeout time.Duration `conf:"default:5s"`
	OpTimeout      time.Duration `conf:"default:5s"`
	Migrate        bool          `conf:"default:true"`
	InMemory       bool          `conf:"default:false"`
}

type Cors struct {
	Origin string `conf:"default:*"`
}

type Rate struct {
	Enabled  bool          `conf:"default:true"`
	Burst    int           `conf:"default:20"`
	Interval time.Duration `conf:"default:100ms"`
	Expiry   time.Duration `conf:"default:10m"`
}
