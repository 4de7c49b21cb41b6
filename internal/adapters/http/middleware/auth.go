package middleware

import (
	"context"
	"net/http"
	"time"

	"fitzone/internal/application/nav"
	domainSession "fitzone/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "fitzone_session"

// SecureCookies controls the Secure flag on session cookies. Set in
// production; left off so local HTTP works.
var SecureCookies bool

// Sessions is the slice of the session store this middleware needs.
type Sessions interface {
	Get(ctx context.Context, id string) (domainSession.Session, error)
	Delete(ctx context.Context, id string) error
}

// Auth returns middleware that loads the persisted session for the request
// cookie and sets it in context. Expired or partial sessions are deleted on
// sight — the request proceeds unauthenticated — and onEvict (may be nil) is
// called with the session ID so state keyed by it can be reclaimed. It does
// NOT block requests; use RequireAuth or RequirePage for that.
func Auth(store Sessions, onEvict func(sessionID string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				sess, err := store.Get(r.Context(), cookie.Value)
				switch {
				case err != nil:
					// no usable session; fall through unauthenticated
				case sess.Expired(time.Now()) || !sess.Authenticated():
					_ = store.Delete(r.Context(), cookie.Value)
					if onEvict != nil {
						onEvict(cookie.Value)
					}
				default:
					ctx := context.WithValue(r.Context(), sessionContextKey, sess)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage returns middleware that admits only roles whose page set
// includes pageID. The same mapping drives the sidebar, so a page a role
// cannot see is also a page it cannot request.
func RequirePage(pageID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !nav.Allowed(sess.Role, pageID) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns middleware that blocks requests from users without one
// of the specified roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !roleSet[sess.Role] {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (domainSession.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(domainSession.Session)
	return sess, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess domainSession.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours, matches session.TTL
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
