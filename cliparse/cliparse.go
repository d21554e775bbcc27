package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	FrontendBase  string
	PublicBaseURL string
	UploadDir     string
}

// ParseFlags validates flags, applying .env and environment fallbacks
func ParseFlags(args []string) (Config, error) {
	// Load .env if present; real env vars still win
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("eresource", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database path (sqlite) or URL (postgres)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Frontend / serving origins
	fs.StringVar(&cfg.FrontendBase, "frontend", "", "Allowed CORS origin for the frontend")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", "", "Public base URL for canonical upload links")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Directory for uploaded files")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		// Keep the original on-disk name so existing deployments pick up their data
		if p := os.Getenv("SQLITE_PATH"); p != "" {
			cfg.DatabaseURL = p
		} else {
			cfg.DatabaseURL = "eresource.db"
		}
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.FrontendBase == "" {
		cfg.FrontendBase = os.Getenv("FRONTEND_BASE")
		if cfg.FrontendBase == "" {
			cfg.FrontendBase = "https://eresource.simpletoolspro.com"
		}
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
		if cfg.PublicBaseURL == "" {
			cfg.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
		}
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = os.Getenv("UPLOAD_DIR")
		if cfg.UploadDir == "" {
			cfg.UploadDir = "uploads"
		}
	}

	return cfg, nil
}
