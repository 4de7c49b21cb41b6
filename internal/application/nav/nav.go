// Package nav owns the role -> pages mapping. The sidebar is rendered from it
// and the route middleware enforces it, so the two can never drift apart.
package nav

import "fitzone/internal/domain/session"

// Page identifiers
const (
	PageDashboard = "dashboard"
	PageMembers   = "members"
	PageTrainers  = "trainers"
	PagePayment   = "payment"
	PageEquipment = "equipment"
	PagePlans     = "plans"
)

// Page is one sidebar entry.
type Page struct {
	ID    string
	Title string
	Icon  string
	Path  string
}

// pages lists every page in sidebar order. PagesFor filters it per role.
var pages = []Page{
	{ID: PageDashboard, Title: "Dashboard", Icon: "fas fa-chart-bar", Path: "/dashboard"},
	{ID: PageMembers, Title: "Members", Icon: "fas fa-users", Path: "/members"},
	{ID: PageTrainers, Title: "Trainers", Icon: "fas fa-user-tie", Path: "/trainers"},
	{ID: PagePayment, Title: "Payment", Icon: "fas fa-credit-card", Path: "/payment"},
	{ID: PageEquipment, Title: "Equipment", Icon: "fas fa-tools", Path: "/equipment"},
	{ID: PagePlans, Title: "Plans", Icon: "fas fa-tasks", Path: "/plans"},
}

// rolePages is the fixed role -> reachable pages mapping.
var rolePages = map[string][]string{
	session.RoleAdmin:   {PageDashboard, PageMembers, PageTrainers, PageEquipment, PagePlans},
	session.RoleMember:  {PageDashboard, PagePayment, PageEquipment, PagePlans},
	session.RoleTrainer: {PageDashboard, PageEquipment, PagePlans},
}

// PagesFor returns the sidebar pages for a role, in display order.
// An unknown role gets no pages.
func PagesFor(role string) []Page {
	ids, ok := rolePages[role]
	if !ok {
		return nil
	}
	out := make([]Page, 0, len(ids))
	for _, p := range pages {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Allowed reports whether a role may enter the given page.
func Allowed(role, pageID string) bool {
	for _, id := range rolePages[role] {
		if id == pageID {
			return true
		}
	}
	return false
}

// TitleFor returns the nav label for a page, used as the page title.
func TitleFor(pageID string) string {
	for _, p := range pages {
		if p.ID == pageID {
			return p.Title
		}
	}
	return ""
}
