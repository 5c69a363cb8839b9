package core

// Action is a state change applied through Store.Dispatch.
// The set of actions is closed; each one logs what it did.
type Action interface {
	// Name identifies the action in logs and metrics.
	Name() string
	apply(s *Store) error
}

// SetCustomersAction replaces the customer collection.
type SetCustomersAction struct {
	Items []Customer
}

func (SetCustomersAction) Name() string { return "customers/set" }

func (a SetCustomersAction) apply(s *Store) error {
	s.customers.ReplaceAll(a.Items)
	s.logger.Info("customers loaded", "count", len(a.Items))
	return nil
}

// AddCustomersAction prepends imported customers.
type AddCustomersAction struct {
	Items []Customer
	// ImportID correlates the action with the import that produced it.
	ImportID string
}

func (AddCustomersAction) Name() string { return "customers/add_many" }

func (a AddCustomersAction) apply(s *Store) error {
	s.customers.Prepend(a.Items...)
	s.logger.Info("customers imported", "count", len(a.Items), "import_id", a.ImportID)
	return nil
}

// AddCustomerAction prepends a single customer.
type AddCustomerAction struct {
	Customer Customer
}

func (AddCustomerAction) Name() string { return "customers/add" }

func (a AddCustomerAction) apply(s *Store) error {
	s.customers.Prepend(a.Customer)
	s.logger.Info("customer added", "id", a.Customer.ID, "name", a.Customer.Name)
	return nil
}

// UpdateStatusAction changes the status of the first customer with ID.
// A missing ID is not an error.
type UpdateStatusAction struct {
	ID     int64
	Status Status
}

func (UpdateStatusAction) Name() string { return "customers/update_status" }

func (a UpdateStatusAction) apply(s *Store) error {
	if s.customers.UpdateStatus(a.ID, a.Status) {
		s.logger.Info("status changed", "id", a.ID, "status", a.Status)
	} else {
		s.logger.Debug("status change skipped, customer not found", "id", a.ID)
	}
	return nil
}

// SetTabAction selects a header tab.
type SetTabAction struct {
	Tab Tab
}

func (SetTabAction) Name() string { return "filters/set_tab" }

func (a SetTabAction) apply(s *Store) error {
	s.filters.SetTab(a.Tab)
	s.logger.Info("tab selected", "tab", a.Tab)
	return nil
}

// SetFilterAction writes one filter field.
// An unrecognized key leaves the filters unchanged.
type SetFilterAction struct {
	Key   FilterKey
	Value string
}

func (SetFilterAction) Name() string { return "filters/set" }

func (a SetFilterAction) apply(s *Store) error {
	if !s.filters.SetFilter(a.Key, a.Value) {
		s.logger.Debug("filter key ignored", "key", a.Key, "value", a.Value)
		return nil
	}
	s.logger.Info("filter changed", "key", a.Key, "value", a.Value)
	return nil
}

// ResetFiltersAction restores the initial filters.
type ResetFiltersAction struct{}

func (ResetFiltersAction) Name() string { return "filters/reset" }

func (ResetFiltersAction) apply(s *Store) error {
	s.filters.Reset()
	s.logger.Info("filters reset")
	return nil
}

// ToggleColumnAction flips one column's visibility.
type ToggleColumnAction struct {
	Key ColumnKey
}

func (ToggleColumnAction) Name() string { return "ui/toggle_column" }

func (a ToggleColumnAction) apply(s *Store) error {
	if err := s.ui.ToggleColumn(a.Key); err != nil {
		return err
	}
	s.logger.Info("column toggled", "column", a.Key, "visible", s.ui.Preferences().Columns[a.Key])
	return nil
}

// SetAllColumnsAction shows or hides every column.
type SetAllColumnsAction struct {
	Visible bool
}

func (SetAllColumnsAction) Name() string { return "ui/set_all_columns" }

func (a SetAllColumnsAction) apply(s *Store) error {
	s.ui.SetAllColumns(a.Visible)
	s.logger.Info("columns set all", "visible", a.Visible)
	return nil
}

// ToggleSidebarAction flips the sidebar collapsed flag.
type ToggleSidebarAction struct{}

func (ToggleSidebarAction) Name() string { return "ui/toggle_sidebar" }

func (ToggleSidebarAction) apply(s *Store) error {
	s.ui.ToggleSidebar()
	s.logger.Info("sidebar toggled", "collapsed", s.ui.Preferences().SidebarCollapsed)
	return nil
}

// SetSidebarAction sets the sidebar collapsed flag.
type SetSidebarAction struct {
	Collapsed bool
}

func (SetSidebarAction) Name() string { return "ui/set_sidebar" }

func (a SetSidebarAction) apply(s *Store) error {
	s.ui.SetSidebar(a.Collapsed)
	s.logger.Info("sidebar set", "collapsed", a.Collapsed)
	return nil
}
