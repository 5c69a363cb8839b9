package core

// store.go composes the three state slices behind one dispatch point.
//
// Each slice owns its state exclusively and is changed only through the
// pure reducers in customers.go, filters.go and ui.go. The Store serializes
// every Dispatch with a mutex and hands out copies from Snapshot, so readers
// always see the state between two actions, never in the middle of one.

import (
	"log/slog"
	"sync"
)

// CustomerRepository is the customer slice of the store.
type CustomerRepository interface {
	Customers() []Customer
	ReplaceAll(items []Customer)
	Prepend(items ...Customer)
	UpdateStatus(id int64, status Status) bool
}

// FilterAccessor is the filter slice of the store.
type FilterAccessor interface {
	Filters() FilterState
	SetTab(tab Tab)
	SetFilter(key FilterKey, value string) bool
	Reset()
}

// UIPreferencesAccessor is the UI preference slice of the store.
type UIPreferencesAccessor interface {
	Preferences() UIPreferences
	ToggleColumn(key ColumnKey) error
	SetAllColumns(visible bool)
	ToggleSidebar()
	SetSidebar(collapsed bool)
}

// customerSlice implements CustomerRepository.
type customerSlice struct {
	state CustomersState
}

// NewCustomerRepository returns an empty in-memory customer slice.
func NewCustomerRepository() CustomerRepository {
	return &customerSlice{}
}

func (s *customerSlice) Customers() []Customer {
	return append([]Customer(nil), s.state.Items...)
}

func (s *customerSlice) ReplaceAll(items []Customer) {
	s.state = SetCustomers(s.state, items)
}

func (s *customerSlice) Prepend(items ...Customer) {
	s.state = AddCustomers(s.state, items)
}

func (s *customerSlice) UpdateStatus(id int64, status Status) bool {
	var found bool
	s.state, found = UpdateCustomerStatus(s.state, id, status)
	return found
}

// filterSlice implements FilterAccessor.
type filterSlice struct {
	state FilterState
}

// NewFilterAccessor returns a filter slice at its initial values.
func NewFilterAccessor() FilterAccessor {
	return &filterSlice{state: DefaultFilterState()}
}

func (s *filterSlice) Filters() FilterState { return s.state }

func (s *filterSlice) SetTab(tab Tab) { s.state = SetTab(s.state, tab) }

func (s *filterSlice) SetFilter(key FilterKey, value string) bool {
	var ok bool
	s.state, ok = SetFilter(s.state, key, value)
	return ok
}

func (s *filterSlice) Reset() { s.state = ResetFilters() }

// uiSlice implements UIPreferencesAccessor.
type uiSlice struct {
	state UIPreferences
}

// NewUIPreferencesAccessor returns a UI slice with every column visible.
func NewUIPreferencesAccessor() UIPreferencesAccessor {
	return &uiSlice{state: DefaultUIPreferences()}
}

func (s *uiSlice) Preferences() UIPreferences { return s.state.clone() }

func (s *uiSlice) ToggleColumn(key ColumnKey) error {
	if _, ok := ColumnByKey(key); !ok {
		return &ErrUnknownColumn{Key: key}
	}
	s.state = ToggleColumn(s.state, key)
	return nil
}

func (s *uiSlice) SetAllColumns(visible bool) { s.state = SetAllColumns(s.state, visible) }

func (s *uiSlice) ToggleSidebar() { s.state = ToggleSidebar(s.state) }

func (s *uiSlice) SetSidebar(collapsed bool) { s.state = SetSidebar(s.state, collapsed) }

// Snapshot is a consistent copy of all three slices.
type Snapshot struct {
	Customers []Customer    `json:"customers"`
	Filters   FilterState   `json:"filters"`
	UI        UIPreferences `json:"ui"`
}

// Filtered returns the customers included by the snapshot's filters.
func (s Snapshot) Filtered() []Customer {
	return Filter(s.Customers, s.Filters)
}

// Listener is notified after every successful dispatch.
type Listener func(action Action)

// Store is the coordinator for the three state slices.
type Store struct {
	mu        sync.RWMutex
	customers CustomerRepository
	filters   FilterAccessor
	ui        UIPreferencesAccessor
	listeners []Listener
	logger    *slog.Logger
}

// NewStore creates a store from the given slices.
// Nil slices are replaced with the in-memory defaults.
func NewStore(customers CustomerRepository, filters FilterAccessor, ui UIPreferencesAccessor) *Store {
	if customers == nil {
		customers = NewCustomerRepository()
	}
	if filters == nil {
		filters = NewFilterAccessor()
	}
	if ui == nil {
		ui = NewUIPreferencesAccessor()
	}
	return &Store{
		customers: customers,
		filters:   filters,
		ui:        ui,
		logger:    slog.Default(),
	}
}

// NewMemoryStore creates a store with fresh in-memory slices.
func NewMemoryStore() *Store {
	return NewStore(nil, nil, nil)
}

// SetLogger replaces the logger used for action logs.
func (s *Store) SetLogger(l *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// Subscribe registers a listener for dispatched actions.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies one action.
// Listeners run after the state lock is released.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	err := a.apply(s)
	logger := s.logger
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if err != nil {
		logger.Debug("action rejected", "action", a.Name(), "error", err)
		return err
	}

	for _, l := range listeners {
		l(a)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Customers: s.customers.Customers(),
		Filters:   s.filters.Filters(),
		UI:        s.ui.Preferences(),
	}
}

// Customers returns a copy of the customer collection.
func (s *Store) Customers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.Customers()
}

// Filters returns the current filter state.
func (s *Store) Filters() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Filters()
}

// Preferences returns the current UI preferences.
func (s *Store) Preferences() UIPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.Preferences()
}
