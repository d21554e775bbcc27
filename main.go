package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/db"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/router"
	"github.com/simpletoolspro/eresource/storage"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	} else if dir := filepath.Dir(cfg.DatabaseURL); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to create database directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema, run additive migrations, seed the first admin
	if err := db.Bootstrap(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("database bootstrap failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", driver)

	// Prepare the upload store
	files, err := storage.New(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		slog.Error("upload store initialization failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, files)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.FrontendBase, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
