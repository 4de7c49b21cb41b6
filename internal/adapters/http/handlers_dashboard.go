package web

import (
	"net/http"

	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/application/nav"
	"fitzone/internal/domain/session"
)

// handleDashboard renders the role-specific dashboard. The admin variant is
// the only one that needs the collections; member and trainer dashboards are
// drawn from the login identity.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	data := map[string]any{
		"Title":  nav.TitleFor(nav.PageDashboard),
		"Active": nav.PageDashboard,
	}

	switch sess.Role {
	case session.RoleAdmin:
		snap := deps.Loader.RefreshAll(r.Context(), sess)
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, map[string]int{
				"memberCount":  len(snap.Members),
				"trainerCount": len(snap.Trainers),
			})
			return
		}
		data["MemberCount"] = len(snap.Members)
		data["TrainerCount"] = len(snap.Trainers)
	case session.RoleMember:
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, sess.User)
			return
		}
		data["User"] = sess.User
	case session.RoleTrainer:
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, sess.User)
			return
		}
		data["User"] = sess.User
	}

	renderTemplate(w, r, "dashboard.html", data)
}
