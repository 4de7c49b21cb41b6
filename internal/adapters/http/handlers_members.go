package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"fitzone/internal/adapters/email"
	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/adapters/upstream"
	"fitzone/internal/application/cache"
	"fitzone/internal/application/nav"
	"fitzone/internal/domain/member"
)

// Form parse errors shown inline above the form.
var (
	errAttendanceNotNumber = errors.New("attendance must be a number")
	errExperienceNotNumber = errors.New("experience must be a number")
)

// errorMessage extracts the user-facing message from an upstream failure.
func errorMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "the operation could not be completed"
}

// memberPayloadFromForm builds the upstream payload from the submitted form.
// The password field only exists on the create form; edits never send one.
func memberPayloadFromForm(r *http.Request) (member.Payload, error) {
	attendance := 0
	if v := r.FormValue("Attendance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return member.Payload{}, errAttendanceNotNumber
		}
		attendance = n
	}

	p := member.Payload{
		Name:          r.FormValue("Name"),
		Username:      r.FormValue("Username"),
		Email:         r.FormValue("Email"),
		Phone:         r.FormValue("Phone"),
		Plan:          r.FormValue("Plan"),
		PaymentStatus: r.FormValue("PaymentStatus"),
		Attendance:    attendance,
		Password:      r.FormValue("Password"),
	}
	if trainerID := r.FormValue("AssignedTrainer"); trainerID != "" {
		p.AssignedTrainer = &trainerID
	}
	return p, nil
}

// memberFormData assembles the template data shared by the create and edit
// forms. The trainer select is populated from the cached trainers.
func memberFormData(snap cache.Snapshot, mode string, p member.Payload, id, errMsg string) map[string]any {
	selectedTrainer := ""
	if p.AssignedTrainer != nil {
		selectedTrainer = *p.AssignedTrainer
	}
	return map[string]any{
		"Title":    nav.TitleFor(nav.PageMembers),
		"Active":   nav.PageMembers,
		"Mode":     mode,
		"ID":       id,
		"Form":     p,
		"Trainers":        snap.Trainers,
		"SelectedTrainer": selectedTrainer,
		"Error":           errMsg,
	}
}

// handleMembers handles GET (list) and POST (create) for /members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		// The list always reflects the latest backend state: refresh first,
		// render after. A failed refresh falls back to the stale copy.
		snap := deps.Loader.RefreshAll(r.Context(), sess)
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, snap.Members)
			return
		}
		renderTemplate(w, r, "members.html", map[string]any{
			"Title":   nav.TitleFor(nav.PageMembers),
			"Active":  nav.PageMembers,
			"Members": snap.Members,
			"Error":   r.URL.Query().Get("error"),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		p, err := memberPayloadFromForm(r)
		if err == nil {
			err = p.Validate(true)
		}
		snap := deps.Loader.Snapshot(sess.ID)
		if err != nil {
			renderTemplate(w, r, "member_form.html",
				memberFormData(snap, "create", p, "", err.Error()))
			return
		}

		created, err := deps.Backend.CreateMember(r.Context(), sess.APIToken, p)
		if err != nil {
			// Leave the form open with the values intact for resubmission.
			renderTemplate(w, r, "member_form.html",
				memberFormData(snap, "create", p, "", errorMessage(err)))
			return
		}

		sendWelcomeEmail(r, created)
		deps.Loader.Invalidate(sess.ID)
		slog.Info("member_event", "event", "created", "id", created.ID)
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleMemberNew renders the create form. The password field is present and
// required only here.
func handleMemberNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	snap := deps.Loader.RefreshAll(r.Context(), sess)
	renderTemplate(w, r, "member_form.html",
		memberFormData(snap, "create", member.Payload{}, "", ""))
}

// handleMemberEdit renders the edit form pre-populated from the cached
// record. If the record is gone even after a refresh the form does not open:
// the user is sent back to the list with a notice instead of editing a blank.
func handleMemberEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	snap := deps.Loader.RefreshAll(r.Context(), sess)
	rec, ok := snap.FindMember(id)
	if !ok {
		http.Redirect(w, r, "/members?error="+url.QueryEscape("member no longer exists"), http.StatusSeeOther)
		return
	}

	p := member.Payload{
		Name:          rec.Name,
		Username:      rec.Username,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Plan:          rec.Plan,
		PaymentStatus: rec.PaymentStatus,
		Attendance:    rec.Attendance,
	}
	if rec.AssignedTrainer != nil {
		trainerID := rec.AssignedTrainer.ID
		p.AssignedTrainer = &trainerID
	}
	renderTemplate(w, r, "member_form.html",
		memberFormData(snap, "edit", p, rec.ID, ""))
}

// handleMemberUpdate handles POST /members/{id} (edit submission).
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	p, err := memberPayloadFromForm(r)
	if err == nil {
		err = p.Validate(false)
	}
	// Edit mode never resubmits a credential.
	p.Password = ""
	snap := deps.Loader.Snapshot(sess.ID)
	if err != nil {
		renderTemplate(w, r, "member_form.html",
			memberFormData(snap, "edit", p, id, err.Error()))
		return
	}

	if _, err := deps.Backend.UpdateMember(r.Context(), sess.APIToken, id, p); err != nil {
		renderTemplate(w, r, "member_form.html",
			memberFormData(snap, "edit", p, id, errorMessage(err)))
		return
	}

	deps.Loader.Invalidate(sess.ID)
	slog.Info("member_event", "event", "updated", "id", id)
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberDelete handles GET (confirmation page) and POST (delete) for
// /members/{id}/delete. Nothing is deleted until the confirmation form is
// submitted; backing out of the page changes nothing.
func handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	if r.Method == "GET" {
		snap := deps.Loader.Snapshot(sess.ID)
		rec, ok := snap.FindMember(id)
		if !ok {
			snap = deps.Loader.RefreshAll(r.Context(), sess)
			rec, ok = snap.FindMember(id)
		}
		if !ok {
			http.Redirect(w, r, "/members?error="+url.QueryEscape("member no longer exists"), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "member_delete.html", map[string]any{
			"Title":  nav.TitleFor(nav.PageMembers),
			"Active": nav.PageMembers,
			"Member": rec,
		})
		return
	}

	if r.Method == "POST" {
		if err := deps.Backend.DeleteMember(r.Context(), sess.APIToken, id); err != nil {
			snap := deps.Loader.Snapshot(sess.ID)
			rec, _ := snap.FindMember(id)
			renderTemplate(w, r, "member_delete.html", map[string]any{
				"Title":  nav.TitleFor(nav.PageMembers),
				"Active": nav.PageMembers,
				"Member": rec,
				"Error":  errorMessage(err),
			})
			return
		}
		deps.Loader.Invalidate(sess.ID)
		slog.Info("member_event", "event", "deleted", "id", id)
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// sendWelcomeEmail mails the new member their login username. Best-effort:
// a failed send is logged and the create flow carries on.
func sendWelcomeEmail(r *http.Request, rec member.Record) {
	if emailSender == nil || rec.Email == "" {
		return
	}
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your FitZone membership is ready. Sign in with username <strong>%s</strong> to see your plan and attendance.</p>",
		rec.Name, rec.Username)
	_, err := emailSender.Send(r.Context(), email.SendRequest{
		To:      []string{rec.Email},
		From:    emailFromAddress,
		Subject: "Welcome to FitZone",
		HTML:    html,
		ReplyTo: emailReplyTo,
	})
	if err != nil {
		slog.Warn("welcome_email_failed", "member_id", rec.ID, "error", err)
	}
}
