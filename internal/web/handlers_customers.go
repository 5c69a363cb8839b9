package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/logging"
	"github.com/JonMunkholm/CRM/internal/source"
	"github.com/go-chi/chi/v5"
)

// importFormMemory is how much of a multipart import is held in memory
// before spilling to a temp file.
const importFormMemory = 1 << 20

// handleCustomersSource serves the seed collection in the ingress format.
func (s *Server) handleCustomersSource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(source.SeedJSON()); err != nil {
		logging.FromContext(r.Context()).Error("write customers", "error", err)
	}
}

// handleCustomersView returns page 1 of the filtered table.
func (s *Server) handleCustomersView(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Table()
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAddCustomer prepends one customer sent as a JSON object.
func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)

	var c core.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if c.ID <= 0 {
		respondError(w, r, errors.New("invalid request: id must be a positive integer"), http.StatusBadRequest)
		return
	}
	if c.Avatar == "" {
		c.Avatar = core.DefaultAvatar
	}

	if err := s.service.AddCustomer(c); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusCreated)
}

// handleUpdateStatus changes one customer's status.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, fmt.Errorf("invalid request: customer id: %w", err), http.StatusBadRequest)
		return
	}

	fields, err := readFields(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	status, err := stringField(fields, "status")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.service.UpdateStatus(id, core.Status(status)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondMutation(w, r, http.StatusOK)
}

// handleExport downloads the filtered customers as customers.csv.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ready(); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", core.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ExportFileName))

	if _, err := s.service.Export(r.Context(), w); err != nil {
		// Headers are already sent; the client sees a truncated file.
		logging.FromContext(r.Context()).Error("export failed", "error", err)
	}
}

// handleImport reads a multipart "file" upload and prepends its rows.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if err := r.ParseMultipartForm(importFormMemory); err != nil {
		// A body over the limit surfaces here as "request body too large".
		err = fmt.Errorf("invalid request: %w", err)
		respondError(w, r, err, statusFor(err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Import(ctx, header.Filename, file)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isFormPost(r) {
		http.Redirect(w, r, "/?"+url.Values{"imported": {strconv.Itoa(result.Imported)}}.Encode(), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleImportStatus returns the import limiter state.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ImportStatus())
}

// handleImportHistory returns recent imports, newest first.
// The optional limit query parameter caps the number of records.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, r, fmt.Errorf("invalid request: limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, s.service.ImportHistory(limit))
}
