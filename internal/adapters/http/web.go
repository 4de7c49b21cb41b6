package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"fitzone/internal/adapters/email"
	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/adapters/http/perf"
	sessionStore "fitzone/internal/adapters/storage/session"
	"fitzone/internal/adapters/upstream"
	"fitzone/internal/application/loader"
)

// Deps holds the dependencies the handlers work against: the durable session
// store, the remote FitZone backend, and the per-session collection loader.
type Deps struct {
	Sessions sessionStore.Store
	Backend  upstream.API
	Loader   *loader.Loader
}

// Global deps instance (set by NewMux; tests assign directly)
var deps *Deps

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// loadCSRFKey reads the CSRF secret from FITZONE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("FITZONE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("FITZONE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("FITZONE_ENV") == "production" {
		log.Fatal("FITZONE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set FITZONE_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps, collector *perf.Collector) http.Handler {
	deps = d
	perfCollector = collector
	middleware.SecureCookies = os.Getenv("FITZONE_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(d.Sessions, d.Loader.Drop),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
