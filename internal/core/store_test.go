package core

import (
	"errors"
	"sync"
	"testing"
)

func TestStore_Dispatch(t *testing.T) {
	s := NewMemoryStore()

	var got []string
	s.Subscribe(func(a Action) { got = append(got, a.Name()) })

	actions := []Action{
		SetCustomersAction{Items: []Customer{{ID: 1, Status: StatusNew}}},
		AddCustomersAction{Items: []Customer{{ID: 2, Status: StatusReturn}}, ImportID: "imp"},
		UpdateStatusAction{ID: 1, Status: StatusPurchased},
		SetTabAction{Tab: TabPurchased},
		SetFilterAction{Key: FilterKeySearch, Value: "x"},
		ToggleColumnAction{Key: ColumnEmail},
		ToggleSidebarAction{},
	}
	for _, a := range actions {
		if err := s.Dispatch(a); err != nil {
			t.Fatalf("Dispatch(%s) error: %v", a.Name(), err)
		}
	}

	snap := s.Snapshot()
	if len(snap.Customers) != 2 || snap.Customers[0].ID != 2 {
		t.Errorf("customers = %+v", snap.Customers)
	}
	if snap.Customers[1].Status != StatusPurchased {
		t.Errorf("status = %q, want Purchased", snap.Customers[1].Status)
	}
	if snap.Filters.ActiveTab != TabPurchased || snap.Filters.Search != "x" {
		t.Errorf("filters = %+v", snap.Filters)
	}
	if snap.UI.Columns[ColumnEmail] || !snap.UI.SidebarCollapsed {
		t.Errorf("ui = %+v", snap.UI)
	}
	if len(got) != len(actions) {
		t.Errorf("listener saw %d actions, want %d", len(got), len(actions))
	}
}

func TestStore_UnknownColumnRejected(t *testing.T) {
	s := NewMemoryStore()

	var notified bool
	s.Subscribe(func(Action) { notified = true })

	err := s.Dispatch(ToggleColumnAction{Key: "age"})
	var unknown *ErrUnknownColumn
	if !errors.As(err, &unknown) || unknown.Key != "age" {
		t.Fatalf("Dispatch() error = %v, want ErrUnknownColumn", err)
	}
	if notified {
		t.Error("listener notified for a rejected action")
	}
	if len(s.Preferences().Columns) != len(Columns) {
		t.Error("rejected toggle added a column")
	}
}

func TestStore_NoOpsAreNotErrors(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Dispatch(SetCustomersAction{Items: []Customer{{ID: 1, Status: StatusNew}}})

	if err := s.Dispatch(UpdateStatusAction{ID: 5, Status: StatusPurchased}); err != nil {
		t.Errorf("status update for a missing id: %v", err)
	}
	if err := s.Dispatch(SetFilterAction{Key: "color", Value: "red"}); err != nil {
		t.Errorf("unknown filter key: %v", err)
	}

	snap := s.Snapshot()
	if snap.Customers[0].Status != StatusNew {
		t.Errorf("status = %q, want New", snap.Customers[0].Status)
	}
	if snap.Filters != DefaultFilterState() {
		t.Errorf("filters = %+v", snap.Filters)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Dispatch(SetCustomersAction{Items: []Customer{{ID: 1}}})

	snap := s.Snapshot()
	snap.Customers[0].Name = "mutated"
	snap.UI.Columns[ColumnName] = false

	again := s.Snapshot()
	if again.Customers[0].Name != "" {
		t.Error("snapshot shares customer storage with the store")
	}
	if !again.UI.Columns[ColumnName] {
		t.Error("snapshot shares the column map with the store")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			_ = s.Dispatch(AddCustomerAction{Customer: Customer{ID: id}})
		}(int64(i))
		go func() {
			defer wg.Done()
			_ = s.Snapshot().Filtered()
		}()
	}
	wg.Wait()

	if n := len(s.Customers()); n != 50 {
		t.Errorf("customers = %d, want 50", n)
	}
}

func TestStore_ResetAndSetAll(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Dispatch(SetTabAction{Tab: TabNew})
	_ = s.Dispatch(SetAllColumnsAction{Visible: false})
	_ = s.Dispatch(SetSidebarAction{Collapsed: true})
	_ = s.Dispatch(ResetFiltersAction{})

	if s.Filters() != DefaultFilterState() {
		t.Errorf("filters after reset = %+v", s.Filters())
	}
	prefs := s.Preferences()
	if len(prefs.VisibleColumns()) != 0 || !prefs.SidebarCollapsed {
		t.Errorf("prefs = %+v", prefs)
	}
}
