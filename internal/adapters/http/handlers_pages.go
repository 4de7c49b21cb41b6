package web

import (
	"net/http"

	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/application/nav"
	"fitzone/internal/domain/equipment"
	"fitzone/internal/domain/member"
	"fitzone/internal/domain/plan"
)

// handlePayment shows the signed-in member's own payment status and plan.
func handlePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	current, ok := plan.ByID(normalizePlanID(sess.User.Plan))
	data := map[string]any{
		"Title":   nav.TitleFor(nav.PagePayment),
		"Active":  nav.PagePayment,
		"User":    sess.User,
		"Paid":    sess.User.PaymentStatus == member.PaymentPaid,
		"HasPlan": ok,
		"Plan":    current,
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"plan":          sess.User.Plan,
			"paymentStatus": sess.User.PaymentStatus,
		})
		return
	}
	renderTemplate(w, r, "payment.html", data)
}

// handleEquipment renders the static equipment catalogue.
func handleEquipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "equipment.html", map[string]any{
		"Title":  nav.TitleFor(nav.PageEquipment),
		"Active": nav.PageEquipment,
		"Items":  equipment.Items(),
	})
}

// handlePlans renders the membership tiers.
func handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "plans.html", map[string]any{
		"Title":  nav.TitleFor(nav.PagePlans),
		"Active": nav.PagePlans,
		"Plans":  plan.All(),
	})
}

// handlePlanPay renders the UPI QR page for one plan. An unknown plan id goes
// back to the listing rather than a bare 404.
func handlePlanPay(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := plan.ByID(r.PathValue("id"))
	if !ok {
		http.Redirect(w, r, "/plans", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "plan_qr.html", map[string]any{
		"Title":  nav.TitleFor(nav.PagePlans),
		"Active": nav.PagePlans,
		"Plan":   p,
	})
}

// normalizePlanID maps a member record's plan field onto a plan id. The
// backend stores the lowercase id but older records carry the display name.
func normalizePlanID(v string) string {
	switch v {
	case "Basic", "basic":
		return "basic"
	case "Premium", "premium":
		return "premium"
	case "VIP", "vip":
		return "vip"
	}
	return v
}
