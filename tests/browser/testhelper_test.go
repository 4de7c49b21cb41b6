package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "fitzone/internal/adapters/http"
	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/adapters/http/perf"
	"fitzone/internal/adapters/storage"
	sessionStore "fitzone/internal/adapters/storage/session"
	"fitzone/internal/adapters/upstream"
	"fitzone/internal/application/cache"
	"fitzone/internal/application/loader"
	memberDomain "fitzone/internal/domain/member"
	trainerDomain "fitzone/internal/domain/trainer"
)

// stubBackend is an in-memory stand-in for the remote FitZone REST API,
// served over httptest so the app under test talks real HTTP.
type stubBackend struct {
	mu       sync.Mutex
	members  map[string]memberDomain.Record
	trainers map[string]trainerDomain.Record
	nextID   int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		members:  make(map[string]memberDomain.Record),
		trainers: make(map[string]trainerDomain.Record),
	}
}

func (s *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /members", s.handleListMembers)
	mux.HandleFunc("POST /members", s.handleCreateMember)
	mux.HandleFunc("PUT /members/{id}", s.handleUpdateMember)
	mux.HandleFunc("DELETE /members/{id}", s.handleDeleteMember)
	mux.HandleFunc("GET /trainers", s.handleListTrainers)
	mux.HandleFunc("POST /trainers", s.handleCreateTrainer)
	return mux
}

// Accepted logins are fixed per role; anything else is a 401 with the
// backend's message shape.
func (s *stubBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	if body.Password != "TestPass123!" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		return
	}

	user := map[string]any{"_id": "u-" + body.Role, "name": "Test " + body.Role, "username": body.Username}
	if body.Role == "member" {
		user["plan"] = "Premium"
		user["paymentStatus"] = "Unpaid"
		user["attendance"] = 9
	}
	json.NewEncoder(w).Encode(map[string]any{
		"token": "test-token-" + body.Role,
		"role":  body.Role,
		"user":  user,
	})
}

func (s *stubBackend) requireToken(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer test-token-") {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "No token provided"})
		return false
	}
	return true
}

func (s *stubBackend) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]memberDomain.Record, 0, len(s.members))
	for _, m := range s.members {
		list = append(list, m)
	}
	json.NewEncoder(w).Encode(list)
}

func (s *stubBackend) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	var p memberDomain.Payload
	json.NewDecoder(r.Body).Decode(&p)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := memberDomain.Record{
		ID: fmt.Sprintf("m-%d", s.nextID), Name: p.Name, Username: p.Username,
		Email: p.Email, Phone: p.Phone, Plan: p.Plan,
		PaymentStatus: p.PaymentStatus, Attendance: p.Attendance,
	}
	s.members[rec.ID] = rec
	json.NewEncoder(w).Encode(rec)
}

func (s *stubBackend) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.members[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Member not found"})
		return
	}
	var p memberDomain.Payload
	json.NewDecoder(r.Body).Decode(&p)
	rec.Name, rec.Email, rec.Plan, rec.PaymentStatus = p.Name, p.Email, p.Plan, p.PaymentStatus
	s.members[id] = rec
	json.NewEncoder(w).Encode(rec)
}

func (s *stubBackend) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, r.PathValue("id"))
	json.NewEncoder(w).Encode(map[string]string{"message": "Member deleted"})
}

func (s *stubBackend) handleListTrainers(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]trainerDomain.Record, 0, len(s.trainers))
	for _, tr := range s.trainers {
		list = append(list, tr)
	}
	json.NewEncoder(w).Encode(list)
}

func (s *stubBackend) handleCreateTrainer(w http.ResponseWriter, r *http.Request) {
	if !s.requireToken(w, r) {
		return
	}
	var p trainerDomain.Payload
	json.NewDecoder(r.Body).Decode(&p)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := trainerDomain.Record{
		ID: fmt.Sprintf("t-%d", s.nextID), Name: p.Name, Username: p.Username,
		Specialization: p.Specialization, Experience: p.Experience, Phone: p.Phone,
	}
	s.trainers[rec.ID] = rec
	json.NewEncoder(w).Encode(rec)
}

// testApp holds the running app, its stub backend, and Playwright handles.
type testApp struct {
	BaseURL string
	Backend *stubBackend
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the full app over a temp session DB and the stub backend,
// and starts a real HTTP server plus a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in -short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	backend := newStubBackend()
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	deps := &web.Deps{
		Sessions: sessionStore.NewSQLiteStore(db),
		Backend:  upstream.NewClient(backendSrv.URL),
		Loader:   loader.New(upstream.NewClient(backendSrv.URL), cache.NewRegistry()),
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	staticDir := filepath.Join(findProjectRoot(t), "static")
	mux := web.NewMux(staticDir, deps, perf.NewCollector(100))
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Backend: backend,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login picks a role, fills the form, and waits for the dashboard.
func (a *testApp) login(t *testing.T, page playwright.Page, role string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login?role=" + role); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Username]").Fill(role); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to the directory
// containing go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
