package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sessionStore "fitzone/internal/adapters/storage/session"
	domainSession "fitzone/internal/domain/session"
)

// mockSessions implements the Sessions interface for testing.
type mockSessions struct {
	sessions map[string]domainSession.Session
	deleted  []string
}

func (m *mockSessions) Get(ctx context.Context, id string) (domainSession.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return domainSession.Session{}, sessionStore.ErrNotFound
}

func (m *mockSessions) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func validSession(id string) domainSession.Session {
	return domainSession.Session{
		ID:        id,
		APIToken:  "tok",
		Role:      domainSession.RoleAdmin,
		User:      domainSession.User{ID: "u1", Name: "Admin"},
		CreatedAt: time.Now(),
	}
}

// echoSession records whether a session reached the handler.
func echoSession(got *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, *got = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidCookie(t *testing.T) {
	store := &mockSessions{sessions: map[string]domainSession.Session{"s1": validSession("s1")}}
	var sawSession bool
	handler := Auth(store, nil)(echoSession(&sawSession))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "fitzone_session", Value: "s1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !sawSession {
		t.Error("handler should see the session")
	}
}

func TestAuth_NoCookie(t *testing.T) {
	store := &mockSessions{}
	var sawSession bool
	handler := Auth(store, nil)(echoSession(&sawSession))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/dashboard", nil))
	if sawSession {
		t.Error("no cookie should mean no session")
	}
}

// TestAuth_ExpiredDeleted verifies an expired session is evicted on sight,
// the eviction hook is told which ID died, and the request proceeds
// unauthenticated.
func TestAuth_ExpiredDeleted(t *testing.T) {
	expired := validSession("s1")
	expired.CreatedAt = time.Now().Add(-domainSession.TTL - time.Hour)
	store := &mockSessions{sessions: map[string]domainSession.Session{"s1": expired}}

	var sawSession bool
	var evicted []string
	handler := Auth(store, func(id string) { evicted = append(evicted, id) })(echoSession(&sawSession))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "fitzone_session", Value: "s1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sawSession {
		t.Error("expired session must not authenticate")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "s1" {
		t.Errorf("expired session should be deleted, got %v", store.deleted)
	}
	if len(evicted) != 1 || evicted[0] != "s1" {
		t.Errorf("eviction hook got %v, want [s1]", evicted)
	}
}

// TestAuth_PartialDeleted covers a persisted session missing its token: it is
// treated as no session and removed.
func TestAuth_PartialDeleted(t *testing.T) {
	partial := validSession("s1")
	partial.APIToken = ""
	store := &mockSessions{sessions: map[string]domainSession.Session{"s1": partial}}

	var sawSession bool
	var evicted []string
	handler := Auth(store, func(id string) { evicted = append(evicted, id) })(echoSession(&sawSession))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "fitzone_session", Value: "s1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sawSession {
		t.Error("partial session must not authenticate")
	}
	if len(store.deleted) != 1 {
		t.Errorf("partial session should be deleted, got %v", store.deleted)
	}
	if len(evicted) != 1 || evicted[0] != "s1" {
		t.Errorf("eviction hook got %v, want [s1]", evicted)
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("got %d, want redirect to login", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("got Location %q, want /login", loc)
	}

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), validSession("s1")))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200", rec.Code)
	}
}

func TestRequirePage(t *testing.T) {
	handler := RequirePage("members")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role string
		want int
	}{
		{domainSession.RoleAdmin, http.StatusOK},
		{domainSession.RoleMember, http.StatusForbidden},
		{domainSession.RoleTrainer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			sess := validSession("s1")
			sess.Role = tt.role
			req := httptest.NewRequest("GET", "/members", nil)
			req = req.WithContext(ContextWithSession(req.Context(), sess))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("role %s: got %d, want %d", tt.role, rec.Code, tt.want)
			}
		})
	}

	// Unauthenticated goes to login, not 403.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/members", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("got %d, want redirect for anonymous", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domainSession.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	sess := validSession("s1")
	sess.Role = domainSession.RoleTrainer
	req := httptest.NewRequest("GET", "/admin/perf", nil)
	req = req.WithContext(ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("got %d, want 403 for trainer", rec.Code)
	}
}
