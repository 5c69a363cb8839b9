package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/logging"
	"github.com/JonMunkholm/CRM/internal/web/templates"
)

// StateResponse is the JSON body returned by /api/state and by every
// mutation made by an API client.
type StateResponse struct {
	core.Snapshot
	Load core.LoadState `json:"load"`
}

func (s *Server) state() StateResponse {
	return StateResponse{Snapshot: s.service.Snapshot(), Load: s.service.LoadState()}
}

// respondMutation finishes a successful state change: form posts go back
// to the dashboard, API clients get the new state.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, status int) {
	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, status, s.state())
}

// handleDashboard renders the customers page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	params := templates.DashboardParams{
		Snapshot: snap,
		Load:     s.service.LoadState(),
	}

	switch err := s.service.Ready(); {
	case err == nil:
		params.Table = core.BuildTable(snap)
	case params.Load.Phase == core.LoadFailed:
		msg := core.MapError(err)
		params.LoadError = &msg
	}

	q := r.URL.Query()
	if code := q.Get("error"); code != "" {
		if msg, ok := core.MessageForCode(code); ok {
			params.Alert = &msg
		}
	}
	if n, err := strconv.Atoi(q.Get("imported")); err == nil {
		params.Notice = "Imported " + strconv.Itoa(n) + " customers"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}

// handleHealth reports liveness and the state of the customer fetch.
// A failed fetch is still live; the dashboard shows the error.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"load":    s.service.LoadState(),
		"imports": s.service.ImportStatus(),
	})
}

// handleState returns all three state slices.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}
