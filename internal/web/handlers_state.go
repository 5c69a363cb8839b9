package web

import (
	"net/http"
	"sort"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleSetTab selects a header tab.
func (s *Server) handleSetTab(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	tab, err := stringField(fields, "tab")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.service.SetTab(core.Tab(tab)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleSetFilters writes every submitted key through set-by-key.
// Unrecognized keys are dispatched too and leave the filters unchanged.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	for _, key := range filterOrder(fields) {
		if err := s.service.SetFilter(key, fields[string(key)]); err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
	}
	s.respondMutation(w, r, http.StatusOK)
}

// filterOrder returns the keys of fields as filter keys: activeTab first,
// then the toolbar keys in apply order, then anything else sorted.
func filterOrder(fields map[string]string) []core.FilterKey {
	known := append([]core.FilterKey{core.FilterKeyActiveTab}, core.ToolbarFilterKeys...)

	seen := make(map[string]bool, len(known))
	var keys []core.FilterKey
	for _, k := range known {
		seen[string(k)] = true
		if _, ok := fields[string(k)]; ok {
			keys = append(keys, k)
		}
	}

	var rest []string
	for k := range fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		keys = append(keys, core.FilterKey(k))
	}
	return keys
}

// handleResetFilters restores the initial filters.
func (s *Server) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ResetFilters(); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleToggleColumn flips one column.
func (s *Server) handleToggleColumn(w http.ResponseWriter, r *http.Request) {
	key := core.ColumnKey(chi.URLParam(r, "key"))
	if err := s.service.ToggleColumn(key); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleSetAllColumns shows or hides every column.
func (s *Server) handleSetAllColumns(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	visible, err := boolField(fields, "visible")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.service.SetAllColumns(visible); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleToggleSidebar flips the sidebar.
func (s *Server) handleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ToggleSidebar(); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleSetSidebar sets the collapsed flag.
func (s *Server) handleSetSidebar(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	collapsed, err := boolField(fields, "collapsed")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.service.SetSidebar(collapsed); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}
