package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubSource returns fixed customers, optionally after blocking on release.
type stubSource struct {
	items   []Customer
	err     error
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (s *stubSource) FetchCustomers(ctx context.Context) ([]Customer, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

// recordingObserver counts observer events.
type recordingObserver struct {
	NopObserver
	mu      sync.Mutex
	actions []string
	imports int
	exports int
}

func (o *recordingObserver) ActionDispatched(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.actions = append(o.actions, name)
}

func (o *recordingObserver) ImportFinished(int, int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.imports++
}

func (o *recordingObserver) ExportFinished(int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exports++
}

func newLoadedService(t *testing.T, items []Customer) *Service {
	t.Helper()
	svc := NewService(NewMemoryStore(), &stubSource{items: items}, ServiceOptions{IDs: fixedIDs{base: 900}})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return svc
}

func TestService_LoadPhases(t *testing.T) {
	src := &stubSource{items: customersN(3), release: make(chan struct{})}
	svc := NewService(NewMemoryStore(), src, ServiceOptions{})

	if st := svc.LoadState(); st.Phase != LoadPending {
		t.Fatalf("initial phase = %q, want pending", st.Phase)
	}
	if _, err := svc.Table(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Table() while pending error = %v, want ErrNotLoaded", err)
	}

	svc.LoadAsync(context.Background())
	close(src.release)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if st := svc.LoadState(); st.Phase != LoadReady || st.Count != 3 {
		t.Errorf("state = %+v, want ready with 3", st)
	}
	if src.calls != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls)
	}

	view, err := svc.Table()
	if err != nil || view.Total != 3 {
		t.Errorf("Table() = %d rows, %v", view.Total, err)
	}
}

func TestService_LoadFailure(t *testing.T) {
	svc := NewService(NewMemoryStore(), &stubSource{err: errors.New("unexpected status 503")}, ServiceOptions{})

	err := svc.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fetch customers") {
		t.Fatalf("Load() error = %v", err)
	}
	if st := svc.LoadState(); st.Phase != LoadFailed || st.Error == "" {
		t.Errorf("state = %+v, want failed", st)
	}
	if _, err := svc.Table(); err == nil || MapError(err).Code != "SRC001" {
		t.Errorf("Table() error = %v, want SRC001", err)
	}
}

func TestService_Import(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewService(NewMemoryStore(), &stubSource{items: customersN(2)}, ServiceOptions{
		IDs:      fixedIDs{base: 900},
		Observer: obs,
	})
	_ = svc.Load(context.Background())

	res, err := svc.Import(context.Background(), "new.csv", strings.NewReader("name,status\nZed,Return\nAmy,\n"))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if res.Imported != 2 || res.ImportID == "" || res.FileName != "new.csv" {
		t.Errorf("result = %+v", res)
	}

	items := svc.Snapshot().Customers
	if len(items) != 4 {
		t.Fatalf("customers = %d, want 4", len(items))
	}
	if items[0].Name != "Zed" || items[0].ID != 900 || items[1].Status != StatusNew {
		t.Errorf("imported rows = %+v %+v", items[0], items[1])
	}
	if items[2].ID != 1 {
		t.Errorf("existing rows moved: first is %d", items[2].ID)
	}
	if obs.imports != 1 {
		t.Errorf("observer imports = %d, want 1", obs.imports)
	}
}

func TestService_ImportHeaderOnlyLeavesStore(t *testing.T) {
	svc := newLoadedService(t, customersN(2))
	before := svc.Snapshot().Customers

	res, err := svc.Import(context.Background(), "empty.csv", strings.NewReader("id,name\n"))
	if !errors.Is(err, ErrEmptyImport) {
		t.Fatalf("Import() error = %v, want ErrEmptyImport", err)
	}
	if res.Imported != 0 {
		t.Errorf("Imported = %d, want 0", res.Imported)
	}

	after := svc.Snapshot().Customers
	if len(after) != len(before) {
		t.Errorf("customers = %d, want %d", len(after), len(before))
	}
}

func TestService_ImportBusy(t *testing.T) {
	svc := NewService(NewMemoryStore(), &stubSource{}, ServiceOptions{
		MaxConcurrentImports: 1,
		ImportMaxWait:        20 * time.Millisecond,
	})

	if !svc.limiter.TryAcquire() {
		t.Fatal("TryAcquire failed")
	}
	defer svc.limiter.Release()

	_, err := svc.Import(context.Background(), "a.csv", strings.NewReader("id\n1\n"))
	if !errors.Is(err, ErrTooManyImports) {
		t.Errorf("Import() error = %v, want ErrTooManyImports", err)
	}
	if st := svc.ImportStatus(); st.Active != 1 || st.Available != 0 {
		t.Errorf("status = %+v", st)
	}
}

func TestService_Export(t *testing.T) {
	svc := newLoadedService(t, []Customer{
		{ID: 1, Name: "a", Status: StatusNew},
		{ID: 2, Name: "b", Status: StatusReturn},
	})

	var b strings.Builder
	res, err := svc.Export(context.Background(), &b)
	if err != nil || res.Rows != 2 || res.Fallback {
		t.Fatalf("Export() = %+v, %v", res, err)
	}

	_ = svc.SetTab(TabReturn)
	b.Reset()
	res, _ = svc.Export(context.Background(), &b)
	if res.Rows != 1 || !strings.Contains(b.String(), "\n2,b,") {
		t.Errorf("filtered export = %+v %q", res, b.String())
	}

	// Nothing matches: fall back to every customer.
	_ = svc.SetFilter(FilterKeySearch, "zzz")
	b.Reset()
	res, _ = svc.Export(context.Background(), &b)
	if res.Rows != 2 || !res.Fallback {
		t.Errorf("fallback export = %+v", res)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newLoadedService(t, customersN(2))

	if err := svc.UpdateStatus(2, StatusPurchased); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if got := svc.Snapshot().Customers[1].Status; got != StatusPurchased {
		t.Errorf("status = %q", got)
	}

	if err := svc.UpdateStatus(5, StatusPurchased); err != nil {
		t.Errorf("UpdateStatus(missing) error: %v", err)
	}

	err := svc.UpdateStatus(1, "Lost")
	if err == nil || MapError(err).Code != "REQ003" {
		t.Errorf("UpdateStatus(Lost) error = %v, want REQ003", err)
	}
}

func TestService_FiltersAndPreferences(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewService(NewMemoryStore(), &stubSource{}, ServiceOptions{Observer: obs})

	if err := svc.SetTab("Archived"); err == nil || MapError(err).Code != "REQ004" {
		t.Errorf("SetTab(Archived) error = %v", err)
	}

	err := svc.ApplyFilters(map[FilterKey]string{
		FilterKeyBrand:  "Averiq",
		FilterKeySearch: "acme",
	})
	if err != nil {
		t.Fatalf("ApplyFilters() error: %v", err)
	}
	f := svc.Snapshot().Filters
	if f.Brand != "Averiq" || f.Search != "acme" || f.Category != FilterNone {
		t.Errorf("filters = %+v", f)
	}

	if err := svc.ToggleColumn("age"); MapError(err).Code != "REQ002" {
		t.Errorf("ToggleColumn(age) error = %v", err)
	}
	_ = svc.ToggleColumn(ColumnGender)
	_ = svc.SetAllColumns(true)
	_ = svc.ToggleSidebar()
	_ = svc.SetSidebar(false)
	_ = svc.ResetFilters()

	want := []string{
		"filters/set", "filters/set",
		"ui/toggle_column", "ui/set_all_columns",
		"ui/toggle_sidebar", "ui/set_sidebar",
		"filters/reset",
	}
	if strings.Join(obs.actions, ",") != strings.Join(want, ",") {
		t.Errorf("actions = %v, want %v", obs.actions, want)
	}
}

func TestService_AddCustomer(t *testing.T) {
	svc := newLoadedService(t, customersN(1))
	_ = svc.AddCustomer(Customer{ID: 77, Name: "new"})

	if got := svc.Snapshot().Customers[0]; got.ID != 77 {
		t.Errorf("first customer = %+v", got)
	}
}

func TestService_MutationsWaitForLoad(t *testing.T) {
	svc := NewService(NewMemoryStore(), &stubSource{items: customersN(1)}, ServiceOptions{})

	if _, err := svc.Import(context.Background(), "a.csv", strings.NewReader("id\n1\n")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Import() error = %v, want ErrNotLoaded", err)
	}
	if _, err := svc.Export(context.Background(), io.Discard); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Export() error = %v, want ErrNotLoaded", err)
	}
	if err := svc.AddCustomer(Customer{ID: 5}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("AddCustomer() error = %v, want ErrNotLoaded", err)
	}
	if got := svc.ImportStatus().Active; got != 0 {
		t.Errorf("limiter slot leaked: active = %d", got)
	}

	_ = svc.Load(context.Background())
	if err := svc.Ready(); err != nil {
		t.Errorf("Ready() after load = %v", err)
	}
	if err := svc.AddCustomer(Customer{ID: 5}); err != nil {
		t.Errorf("AddCustomer() after load = %v", err)
	}
}

func TestService_ImportHistory(t *testing.T) {
	svc := NewService(NewMemoryStore(), &stubSource{items: customersN(1)}, ServiceOptions{
		HistorySize: 2,
		IDs:         fixedIDs{base: 900},
	})

	ctx := ContextWithUserAgent(ContextWithClientIP(context.Background(), "10.0.0.7"), "curl/8")

	_, _ = svc.Import(ctx, "early.csv", strings.NewReader("id\n1\n"))
	_ = svc.Load(context.Background())
	_, _ = svc.Import(ctx, "empty.csv", strings.NewReader("id\n"))
	_, _ = svc.Import(ctx, "good.csv", strings.NewReader("name\nZed\nAmy\n"))

	got := svc.ImportHistory(0)
	if len(got) != 2 {
		t.Fatalf("history = %d records, want 2", len(got))
	}

	if got[0].FileName != "good.csv" || got[0].Imported != 2 || got[0].Error != "" {
		t.Errorf("newest = %+v", got[0])
	}
	if got[0].IPAddress != "10.0.0.7" || got[0].UserAgent != "curl/8" {
		t.Errorf("request metadata = %q/%q", got[0].IPAddress, got[0].UserAgent)
	}
	if got[0].Bytes == 0 || got[0].CreatedAt.IsZero() {
		t.Errorf("bytes/createdAt not set: %+v", got[0])
	}
	if got[1].FileName != "empty.csv" || got[1].Code != "FILE005" {
		t.Errorf("failed import = %+v", got[1])
	}

	if latest := svc.ImportHistory(1); len(latest) != 1 || latest[0].FileName != "good.csv" {
		t.Errorf("ImportHistory(1) = %+v", latest)
	}
}
