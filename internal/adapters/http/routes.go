package web

import (
	"net/http"

	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/application/nav"
	"fitzone/internal/domain/session"
)

// registerRoutes maps paths to handlers. Page routes are gated by the same
// role -> pages mapping the sidebar renders from.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	mux.Handle("/dashboard",
		middleware.RequirePage(nav.PageDashboard)(http.HandlerFunc(handleDashboard)))

	mux.Handle("/members",
		middleware.RequirePage(nav.PageMembers)(http.HandlerFunc(handleMembers)))
	mux.Handle("/members/new",
		middleware.RequirePage(nav.PageMembers)(http.HandlerFunc(handleMemberNew)))
	mux.Handle("/members/{id}/edit",
		middleware.RequirePage(nav.PageMembers)(http.HandlerFunc(handleMemberEdit)))
	mux.Handle("/members/{id}/delete",
		middleware.RequirePage(nav.PageMembers)(http.HandlerFunc(handleMemberDelete)))
	mux.Handle("/members/{id}",
		middleware.RequirePage(nav.PageMembers)(http.HandlerFunc(handleMemberUpdate)))

	mux.Handle("/trainers",
		middleware.RequirePage(nav.PageTrainers)(http.HandlerFunc(handleTrainers)))
	mux.Handle("/trainers/new",
		middleware.RequirePage(nav.PageTrainers)(http.HandlerFunc(handleTrainerNew)))
	mux.Handle("/trainers/{id}/edit",
		middleware.RequirePage(nav.PageTrainers)(http.HandlerFunc(handleTrainerEdit)))
	mux.Handle("/trainers/{id}/delete",
		middleware.RequirePage(nav.PageTrainers)(http.HandlerFunc(handleTrainerDelete)))
	mux.Handle("/trainers/{id}",
		middleware.RequirePage(nav.PageTrainers)(http.HandlerFunc(handleTrainerUpdate)))

	mux.Handle("/payment",
		middleware.RequirePage(nav.PagePayment)(http.HandlerFunc(handlePayment)))
	mux.Handle("/equipment",
		middleware.RequirePage(nav.PageEquipment)(http.HandlerFunc(handleEquipment)))
	mux.Handle("/plans",
		middleware.RequirePage(nav.PagePlans)(http.HandlerFunc(handlePlans)))
	mux.Handle("/plans/{id}/pay",
		middleware.RequirePage(nav.PagePlans)(http.HandlerFunc(handlePlanPay)))

	mux.Handle("/admin/perf",
		middleware.RequireRole(session.RoleAdmin)(http.HandlerFunc(handlePerf)))
}

// handleIndex routes the bare domain to the dashboard or the login page.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
