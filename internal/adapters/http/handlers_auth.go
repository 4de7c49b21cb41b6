package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/adapters/upstream"
	"fitzone/internal/domain/session"
)

// handleLogin handles GET (role selection + form) and POST (authenticate
// against the backend) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, go straight to the dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		role := r.URL.Query().Get("role")
		if !session.ValidRole(role) {
			role = ""
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Role": role,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		role := r.FormValue("Role")
		username := r.FormValue("Username")
		password := r.FormValue("Password")
		if !session.ValidRole(role) {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": "please choose a role",
			})
			return
		}

		result, err := deps.Backend.Login(r.Context(), username, password, role)
		if err != nil {
			// Login failures stay inline on the form, not a global notice.
			msg := "login failed"
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				msg = apiErr.Message
			}
			renderTemplate(w, r, "login.html", map[string]any{
				"Role":  role,
				"Error": msg,
			})
			return
		}

		id, err := session.NewID()
		if err != nil {
			internalError(w, err)
			return
		}
		sess := session.Session{
			ID:        id,
			APIToken:  result.Token,
			Role:      result.Role,
			User:      result.User,
			CreatedAt: time.Now(),
		}
		if !sess.Authenticated() {
			// Backend answered 2xx but the triple is incomplete; treat as a
			// failed login rather than persisting partial state.
			renderTemplate(w, r, "login.html", map[string]any{
				"Role":  role,
				"Error": "login failed",
			})
			return
		}
		if err := deps.Sessions.Save(r.Context(), sess); err != nil {
			internalError(w, err)
			return
		}

		middleware.SetSessionCookie(w, sess.ID)
		slog.Info("auth_event", "event", "login", "role", sess.Role, "username", username)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout. The persisted token/user/role triple and
// the in-memory collection cache go together.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := deps.Sessions.Delete(r.Context(), sess.ID); err != nil {
			slog.Warn("session_delete_failed", "error", err)
		}
		deps.Loader.Drop(sess.ID)
		slog.Info("auth_event", "event", "logout", "role", sess.Role)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
