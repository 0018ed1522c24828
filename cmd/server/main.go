package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auto_grow/internal/config"
	"auto_grow/internal/handlers"
	"auto_grow/internal/logger"
	"auto_grow/internal/repository"
	"auto_grow/internal/repository/db"
	"auto_grow/internal/server"
	"auto_grow/internal/service"

	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags := pflag.NewFlagSet("autogrow-server", pflag.ExitOnError)
	configFile := flags.String("config", "", "path to a config file (default configs/config.yml)")
	envFile := flags.String("env", "", "path to a .env file (default .env)")
	flags.String("port", "", "listen port")
	flags.String("db", "", "sqlite database path")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("dev", false, "development logging")
	flags.Bool("simulate", false, "append simulated sensor readings")
	_ = flags.Parse(os.Args[1:])

	// load configs/config.yml, .env and flags
	cfg, err := config.Load(config.Options{ConfigFile: *configFile, EnvFile: *envFile, Flags: flags})
	if err != nil {
		logger.Get(logger.InfoLevel, false).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Development)

	if err := cfg.ValidateServer(); err != nil {
		log.Fatalw("invalid server config", "err", err)
	}

	// open DB
	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.NewAuthService(cfg.Auth.Username, cfg.Auth.Password), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.Enabled {
		log.Infow("simulator enabled", "tick", cfg.Simulator.Tick)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Server.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		path = "autogrow.db"
		log.Infow("db.path not set; using default file", "default", path)
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
