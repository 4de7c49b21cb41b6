package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "fitzone/internal/adapters/email"
	web "fitzone/internal/adapters/http"
	"fitzone/internal/adapters/http/perf"
	"fitzone/internal/adapters/storage"
	sessionStore "fitzone/internal/adapters/storage/session"
	"fitzone/internal/adapters/upstream"
	"fitzone/internal/application/cache"
	"fitzone/internal/application/loader"
	"fitzone/internal/domain/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Local overrides from .env; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	if os.Getenv("FITZONE_DEBUG") != "" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Session store with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("FITZONE_DB", "fitzone.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
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
	sessions := sessionStore.NewSQLiteStore(db)

	// Remote backend the app fronts
	apiURL := envOrDefault("FITZONE_API_URL", "http://localhost:5000/api")
	backend := upstream.NewClient(apiURL)

	caches := cache.NewRegistry()
	deps := &web.Deps{
		Sessions: sessions,
		Backend:  backend,
		Loader:   loader.New(backend, caches),
	}

	// Configure email sender
	resendKey := os.Getenv("FITZONE_RESEND_KEY")
	emailFrom := envOrDefault("FITZONE_RESEND_FROM", "FitZone <noreply@fitzone.example>")
	emailReply := envOrDefault("FITZONE_REPLY_TO", "info@fitzone.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("FITZONE_ENV") == "production" {
			log.Println("WARNING: FITZONE_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set FITZONE_RESEND_KEY for real delivery)")
		}
	}

	// Expired sessions are also evicted lazily on access; this sweep keeps
	// the table from accumulating rows for browsers that never come back,
	// and reclaims the collection caches keyed by the swept IDs.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-session.TTL)
			ids, err := sessions.DeleteExpired(context.Background(), cutoff)
			if err != nil {
				slog.Warn("session_sweep_failed", "error", err)
				continue
			}
			for _, id := range ids {
				deps.Loader.Drop(id)
			}
			if len(ids) > 0 {
				slog.Info("session_sweep", "deleted", len(ids))
			}
		}
	}()

	collector := perf.NewCollector(perf.DefaultRingSize)
	mux := web.NewMux("static", deps, collector)

	addr := envOrDefault("FITZONE_ADDR", ":8080")
	log.Printf("FitZone %s starting on %s (env=%s, backend=%s)", version, addr, envOrDefault("FITZONE_ENV", "development"), apiURL)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
