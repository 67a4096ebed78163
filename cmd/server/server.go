package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/course-selling/api"
	"github.com/irsalhamdi/course-selling/config"
	"github.com/irsalhamdi/course-selling/database"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/metrics"
	"github.com/irsalhamdi/course-selling/rate"
	"github.com/sirupsen/logrus"
)

var build = "develop"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	const prefix = "COURSES"
	cfg := config.Config{
		Version: conf.Version{
			Build: build,
			Desc:  "course selling api",
		},
	}
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	logger.WithField("version", build).Info("starting server")
	defer logger.Info("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	logger.Infof("config:\n%s", out)

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(nil)

	backend, closeDB := openBackend(ctx, logger, cfg.DB)
	defer closeDB()

	store := docstore.New(backend,
		docstore.WithTimeout(cfg.DB.OpTimeout),
		docstore.WithObserver(m.ObserveStore),
	)

	var limiter *rate.Limiter
	if cfg.Rate.Enabled {
		limiter = rate.NewLimiter(ctx, cfg.Rate.Burst, cfg.Rate.Expiry, rate.Every(cfg.Rate.Interval))
	}

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:   cfg.Cors.Origin,
		Log:          logger,
		Store:        store,
		Metrics:      m,
		Limiter:      limiter,
		DBConfigured: dbConfigured(prefix, cfg.DB, os.Args[1:], os.LookupEnv),
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

// openBackend connects the document store. A database that cannot be reached
// leaves the store unavailable instead of stopping the process.
func openBackend(ctx context.Context, logger logrus.FieldLogger, cfg config.DB) (docstore.Backend, func()) {
	noop := func() {}

	if cfg.InMemory {
		logger.Warn("using the in-memory document store, data is lost on exit")
		return docstore.NewMemory(), noop
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.WithError(err).Error("document store unavailable")
		return nil, noop
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("closing database")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := database.StatusCheck(ctx, db); err != nil {
		logger.WithError(err).Error("document store unavailable")
		closeDB()
		return nil, noop
	}

	if cfg.Migrate {
		if err := database.Migrate(db); err != nil {
			logger.WithError(err).Error("migrating document store")
			closeDB()
			return nil, noop
		}
	}

	logger.WithFields(logrus.Fields{
		"host": cfg.Host,
		"name": cfg.Name,
	}).Info("connected to document store")

	return database.NewDocuments(db, cfg.Name), closeDB
}

// dbConfigured reports whether the database host was given explicitly, by
// flag or environment, rather than left at its default.
func dbConfigured(prefix string, cfg config.DB, args []string, lookup func(string) (string, bool)) bool {
	if cfg.InMemory {
		return false
	}
	for _, a := range args {
		if a == "--db-host" || strings.HasPrefix(a, "--db-host=") {
			return true
		}
	}
	v, ok := lookup(prefix + "_DB_HOST")
	return ok && v != ""
}
