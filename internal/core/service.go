package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/JonMunkholm/CRM/internal/logging"
	"github.com/google/uuid"
)

// ErrNotLoaded is returned for reads made before the customers finished loading.
var ErrNotLoaded = errors.New("customers not loaded")

// CustomerSource fetches the initial customer collection.
type CustomerSource interface {
	FetchCustomers(ctx context.Context) ([]Customer, error)
}

// Observer receives service events, typically for metrics.
type Observer interface {
	ActionDispatched(action string)
	CustomersLoaded(count int, err error)
	ImportFinished(rows int, bytes int64, err error)
	ExportFinished(rows int)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) ActionDispatched(string)          {}
func (NopObserver) CustomersLoaded(int, error)       {}
func (NopObserver) ImportFinished(int, int64, error) {}
func (NopObserver) ExportFinished(int)               {}

// LoadPhase is the state of the one-time customer fetch.
type LoadPhase string

const (
	LoadPending LoadPhase = "pending"
	LoadReady   LoadPhase = "ready"
	LoadFailed  LoadPhase = "failed"
)

// LoadState describes the customer fetch.
type LoadState struct {
	Phase    LoadPhase     `json:"phase"`
	Count    int           `json:"count,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// ServiceOptions configures a Service. Zero values use defaults.
type ServiceOptions struct {
	MaxConcurrentImports int
	ImportMaxWait        time.Duration
	HistorySize          int
	IDs                  IDSource
	Observer             Observer
}

// Service provides the dashboard operations on top of the Store.
type Service struct {
	store    *Store
	source   CustomerSource
	limiter  *ImportLimiter
	ids      IDSource
	observer Observer
	history  *ImportHistory

	loadOnce sync.Once
	loadMu   sync.RWMutex
	load     LoadState
	loaded   chan struct{}
}

// NewService creates a Service. The store starts empty; call LoadAsync or
// Load to fetch the customers from source.
func NewService(store *Store, source CustomerSource, opts ServiceOptions) *Service {
	if opts.IDs == nil {
		opts.IDs = NewClockIDSource()
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	s := &Service{
		store:    store,
		source:   source,
		limiter:  NewImportLimiter(opts.MaxConcurrentImports, opts.ImportMaxWait),
		ids:      opts.IDs,
		observer: opts.Observer,
		history:  NewImportHistory(opts.HistorySize),
		load:     LoadState{Phase: LoadPending},
		loaded:   make(chan struct{}),
	}

	store.Subscribe(func(a Action) {
		s.observer.ActionDispatched(a.Name())
	})

	return s
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// LoadAsync starts the customer fetch in the background.
// Only the first call to LoadAsync or Load fetches.
func (s *Service) LoadAsync(ctx context.Context) {
	go func() {
		_ = s.Load(ctx)
	}()
}

// Load fetches the customers once and installs them in the store.
// Later calls wait for the first fetch and return its error.
func (s *Service) Load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		defer close(s.loaded)

		logger := logging.FromContext(ctx)
		start := time.Now()

		items, err := s.source.FetchCustomers(ctx)
		elapsed := time.Since(start)
		s.observer.CustomersLoaded(len(items), err)

		if err != nil {
			logger.Error("customer fetch failed", "error", err, "duration_ms", elapsed.Milliseconds())
			s.setLoad(LoadState{Phase: LoadFailed, Error: err.Error(), Duration: elapsed})
			return
		}

		// Dispatch before publishing the phase so a reader that sees
		// LoadReady always sees the customers too.
		_ = s.store.Dispatch(SetCustomersAction{Items: items})
		s.setLoad(LoadState{Phase: LoadReady, Count: len(items), Duration: elapsed})
		logger.Info("customer fetch completed", "count", len(items), "duration_ms", elapsed.Milliseconds())
	})

	select {
	case <-s.loaded:
	case <-ctx.Done():
		return ctx.Err()
	}

	if st := s.LoadState(); st.Phase == LoadFailed {
		return fmt.Errorf("fetch customers: %s", st.Error)
	}
	return nil
}

func (s *Service) setLoad(st LoadState) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	s.load = st
}

// LoadState returns the state of the customer fetch.
func (s *Service) LoadState() LoadState {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()
	return s.load
}

// Snapshot returns the current state of all three slices.
func (s *Service) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// Ready returns ErrNotLoaded while the fetch is pending and the fetch
// error if it failed.
func (s *Service) Ready() error {
	switch st := s.LoadState(); st.Phase {
	case LoadPending:
		return ErrNotLoaded
	case LoadFailed:
		return fmt.Errorf("fetch customers: %s", st.Error)
	}
	return nil
}

// Table returns page 1 of the filtered customers.
// No rows are produced until the fetch has succeeded.
func (s *Service) Table() (TableView, error) {
	if err := s.Ready(); err != nil {
		return TableView{}, err
	}
	return BuildTable(s.store.Snapshot()), nil
}

// ExportResult describes a completed export.
type ExportResult struct {
	Rows     int  `json:"rows"`
	Fallback bool `json:"fallback"` // True when the filter matched nothing and all rows were exported
}

// Export writes the filtered customers as CSV to w. When the filters match
// nothing, every customer is exported instead.
func (s *Service) Export(ctx context.Context, w io.Writer) (ExportResult, error) {
	if err := s.Ready(); err != nil {
		return ExportResult{}, err
	}

	snap := s.store.Snapshot()
	filtered := snap.Filtered()
	rows := ExportRows(filtered, snap.Customers)

	if err := WriteCSV(w, rows); err != nil {
		return ExportResult{}, fmt.Errorf("write export: %w", err)
	}

	result := ExportResult{Rows: len(rows), Fallback: len(filtered) == 0}
	s.observer.ExportFinished(result.Rows)
	logging.FromContext(ctx).Info("export completed", "rows", result.Rows, "fallback", result.Fallback)
	return result, nil
}

// ImportResult describes a completed import.
type ImportResult struct {
	ImportID string        `json:"import_id"`
	FileName string        `json:"file_name"`
	Imported int           `json:"imported"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// Import parses a CSV file and prepends its rows to the customers.
// Every attempt, including rejected ones, is added to the import history.
//
// An empty file (ErrEmptyImport) leaves the store untouched; the error is
// logged and returned alongside a zero-row result.
func (s *Service) Import(ctx context.Context, fileName string, r io.Reader) (result ImportResult, err error) {
	result = ImportResult{
		ImportID: uuid.New().String(),
		FileName: fileName,
	}
	fields := append([]any{"import_id", result.ImportID, "file", fileName}, requestFields(ctx)...)
	logger := logging.WithFields(ctx, fields...)

	started := time.Now()
	defer func() {
		rec := ImportRecord{
			ImportID:  result.ImportID,
			FileName:  fileName,
			Imported:  result.Imported,
			Bytes:     result.Bytes,
			IPAddress: ClientIPFromContext(ctx),
			UserAgent: UserAgentFromContext(ctx),
			Duration:  result.Duration,
			CreatedAt: started,
		}
		if err != nil {
			rec.Error = err.Error()
			rec.Code = MapError(err).Code
		}
		s.history.Add(rec)
	}()

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("import rejected", "error", err)
		return result, err
	}
	defer s.limiter.Release()

	// The fetch replaces the collection, so rows imported before it
	// completes would be lost.
	if err := s.Ready(); err != nil {
		logger.Warn("import rejected", "error", err)
		return result, err
	}

	start := time.Now()
	rows, n, err := ReadImport(r, s.ids)
	result.Bytes = n
	result.Duration = time.Since(start)
	s.observer.ImportFinished(len(rows), n, err)

	if err != nil {
		logger.Warn("import failed", "error", err, "bytes", n)
		return result, err
	}

	if err := s.store.Dispatch(AddCustomersAction{Items: rows, ImportID: result.ImportID}); err != nil {
		return result, err
	}

	result.Imported = len(rows)
	logger.Info("import completed",
		"rows", result.Imported,
		"bytes", n,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// ImportHistory returns up to limit recent imports, newest first.
func (s *Service) ImportHistory(limit int) []ImportRecord {
	return s.history.Recent(limit)
}

// ImportStatus returns the import limiter state.
func (s *Service) ImportStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until running imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// AddCustomer prepends a single customer. Like Import, it is rejected
// until the fetch has succeeded.
func (s *Service) AddCustomer(c Customer) error {
	if err := s.Ready(); err != nil {
		return err
	}
	return s.store.Dispatch(AddCustomerAction{Customer: c})
}

// UpdateStatus sets the status of the first customer with id. Only the
// four known statuses are accepted; a missing id is not an error.
func (s *Service) UpdateStatus(id int64, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status: %q", status)
	}
	return s.store.Dispatch(UpdateStatusAction{ID: id, Status: status})
}

// SetTab selects a header tab.
func (s *Service) SetTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("invalid tab: %q", tab)
	}
	return s.store.Dispatch(SetTabAction{Tab: tab})
}

// SetFilter writes one filter field.
func (s *Service) SetFilter(key FilterKey, value string) error {
	return s.store.Dispatch(SetFilterAction{Key: key, Value: value})
}

// ApplyFilters writes the toolbar filters present in values, one action per
// key in ToolbarFilterKeys order.
func (s *Service) ApplyFilters(values map[FilterKey]string) error {
	for _, key := range ToolbarFilterKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := s.SetFilter(key, v); err != nil {
			return err
		}
	}
	return nil
}

// ResetFilters restores the initial filters.
func (s *Service) ResetFilters() error {
	return s.store.Dispatch(ResetFiltersAction{})
}

// ToggleColumn flips one column's visibility.
func (s *Service) ToggleColumn(key ColumnKey) error {
	return s.store.Dispatch(ToggleColumnAction{Key: key})
}

// SetAllColumns shows or hides every column.
func (s *Service) SetAllColumns(visible bool) error {
	return s.store.Dispatch(SetAllColumnsAction{Visible: visible})
}

// ToggleSidebar flips the sidebar.
func (s *Service) ToggleSidebar() error {
	return s.store.Dispatch(ToggleSidebarAction{})
}

// SetSidebar sets the sidebar collapsed flag.
func (s *Service) SetSidebar(collapsed bool) error {
	return s.store.Dispatch(SetSidebarAction{Collapsed: collapsed})
}
