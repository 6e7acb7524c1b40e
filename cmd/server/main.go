package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"

	_ "modernc.org/sqlite"

	web "github.com/crazyman1830/jsonformatter/internal/adapters/http"
	"github.com/crazyman1830/jsonformatter/internal/adapters/storage"
	commentStore "github.com/crazyman1830/jsonformatter/internal/adapters/storage/comment"
	"github.com/crazyman1830/jsonformatter/internal/config"
	"github.com/crazyman1830/jsonformatter/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer cleanup()

	stores := &web.Stores{}
	if cfg.DBPath != "" {
		dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Connection pool settings for WAL mode
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)

		if err := db.Ping(); err != nil {
			log.Fatalf("database unreachable: %v", err)
		}
		if err := storage.InitDB(db); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}

		timedDB := storage.NewTimedDB(db)
		stores.CommentStore = commentStore.NewSQLiteStore(timedDB)
		slog.Info("startup", "event", "comment_store_ready", "backend", "sqlite", "path", cfg.DBPath)
	} else {
		stores.CommentStore = commentStore.NewMemoryStore()
		slog.Info("startup", "event", "comment_store_ready", "backend", "memory")
	}

	mux := web.NewMux("static", stores, web.Options{
		CSRFKey:       cfg.CSRFKey,
		RateLimit:     cfg.RateLimit,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		DefaultIndent: cfg.DefaultIndent,
		CacheSize:     cfg.CacheSize,
		Production:    cfg.IsProduction(),
	})

	slog.Info("startup", "event", "listening", "version", version, "addr", cfg.Addr, "env", cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
