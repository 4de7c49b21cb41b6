package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"fitzone/internal/adapters/http/middleware"
	"fitzone/internal/application/nav"
	"fitzone/internal/domain/trainer"
)

func trainerPayloadFromForm(r *http.Request) (trainer.Payload, error) {
	experience := 0
	if v := r.FormValue("Experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return trainer.Payload{}, errExperienceNotNumber
		}
		experience = n
	}
	attendance := 0
	if v := r.FormValue("Attendance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return trainer.Payload{}, errAttendanceNotNumber
		}
		attendance = n
	}

	return trainer.Payload{
		Name:           r.FormValue("Name"),
		Username:       r.FormValue("Username"),
		Specialization: r.FormValue("Specialization"),
		Experience:     experience,
		Phone:          r.FormValue("Phone"),
		Attendance:     attendance,
		Password:       r.FormValue("Password"),
	}, nil
}

func trainerFormData(mode string, p trainer.Payload, id, errMsg string) map[string]any {
	return map[string]any{
		"Title":  nav.TitleFor(nav.PageTrainers),
		"Active": nav.PageTrainers,
		"Mode":   mode,
		"ID":     id,
		"Form":   p,
		"Error":  errMsg,
	}
}

// handleTrainers handles GET (list) and POST (create) for /trainers.
func handleTrainers(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		snap := deps.Loader.RefreshAll(r.Context(), sess)
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, snap.Trainers)
			return
		}
		renderTemplate(w, r, "trainers.html", map[string]any{
			"Title":    nav.TitleFor(nav.PageTrainers),
			"Active":   nav.PageTrainers,
			"Trainers": snap.Trainers,
			"Error":    r.URL.Query().Get("error"),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		p, err := trainerPayloadFromForm(r)
		if err == nil {
			err = p.Validate(true)
		}
		if err != nil {
			renderTemplate(w, r, "trainer_form.html",
				trainerFormData("create", p, "", err.Error()))
			return
		}

		created, err := deps.Backend.CreateTrainer(r.Context(), sess.APIToken, p)
		if err != nil {
			renderTemplate(w, r, "trainer_form.html",
				trainerFormData("create", p, "", errorMessage(err)))
			return
		}

		deps.Loader.Invalidate(sess.ID)
		slog.Info("trainer_event", "event", "created", "id", created.ID)
		http.Redirect(w, r, "/trainers", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleTrainerNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "trainer_form.html",
		trainerFormData("create", trainer.Payload{}, "", ""))
}

func handleTrainerEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	snap := deps.Loader.RefreshAll(r.Context(), sess)
	rec, ok := snap.FindTrainer(id)
	if !ok {
		http.Redirect(w, r, "/trainers?error="+url.QueryEscape("trainer no longer exists"), http.StatusSeeOther)
		return
	}

	p := trainer.Payload{
		Name:           rec.Name,
		Username:       rec.Username,
		Specialization: rec.Specialization,
		Experience:     rec.Experience,
		Phone:          rec.Phone,
		Attendance:     rec.Attendance,
	}
	renderTemplate(w, r, "trainer_form.html",
		trainerFormData("edit", p, rec.ID, ""))
}

func handleTrainerUpdate(w http.ResponseWriter, r *http.Request) {
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
	p, err := trainerPayloadFromForm(r)
	if err == nil {
		err = p.Validate(false)
	}
	p.Password = ""
	if err != nil {
		renderTemplate(w, r, "trainer_form.html",
			trainerFormData("edit", p, id, err.Error()))
		return
	}

	if _, err := deps.Backend.UpdateTrainer(r.Context(), sess.APIToken, id, p); err != nil {
		renderTemplate(w, r, "trainer_form.html",
			trainerFormData("edit", p, id, errorMessage(err)))
		return
	}

	deps.Loader.Invalidate(sess.ID)
	slog.Info("trainer_event", "event", "updated", "id", id)
	http.Redirect(w, r, "/trainers", http.StatusSeeOther)
}

func handleTrainerDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")

	if r.Method == "GET" {
		snap := deps.Loader.Snapshot(sess.ID)
		rec, ok := snap.FindTrainer(id)
		if !ok {
			snap = deps.Loader.RefreshAll(r.Context(), sess)
			rec, ok = snap.FindTrainer(id)
		}
		if !ok {
			http.Redirect(w, r, "/trainers?error="+url.QueryEscape("trainer no longer exists"), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "trainer_delete.html", map[string]any{
			"Title":   nav.TitleFor(nav.PageTrainers),
			"Active":  nav.PageTrainers,
			"Trainer": rec,
		})
		return
	}

	if r.Method == "POST" {
		if err := deps.Backend.DeleteTrainer(r.Context(), sess.APIToken, id); err != nil {
			snap := deps.Loader.Snapshot(sess.ID)
			rec, _ := snap.FindTrainer(id)
			renderTemplate(w, r, "trainer_delete.html", map[string]any{
				"Title":   nav.TitleFor(nav.PageTrainers),
				"Active":  nav.PageTrainers,
				"Trainer": rec,
				"Error":   errorMessage(err),
			})
			return
		}
		deps.Loader.Invalidate(sess.ID)
		slog.Info("trainer_event", "event", "deleted", "id", id)
		http.Redirect(w, r, "/trainers", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
