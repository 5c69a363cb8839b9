package core

// ToggleColumn flips the visibility of one column.
// The key is not checked against Columns.
func ToggleColumn(s UIPreferences, key ColumnKey) UIPreferences {
	out := s.clone()
	out.Columns[key] = !out.Columns[key]
	return out
}

// SetAllColumns sets the visibility of every column to visible.
func SetAllColumns(s UIPreferences, visible bool) UIPreferences {
	out := s.clone()
	for k := range out.Columns {
		out.Columns[k] = visible
	}
	return out
}

// ToggleSidebar flips the collapsed flag.
func ToggleSidebar(s UIPreferences) UIPreferences {
	out := s.clone()
	out.SidebarCollapsed = !out.SidebarCollapsed
	return out
}

// SetSidebar sets the collapsed flag.
func SetSidebar(s UIPreferences, collapsed bool) UIPreferences {
	out := s.clone()
	out.SidebarCollapsed = collapsed
	return out
}

// VisibleColumns returns the visible columns in display order.
func (s UIPreferences) VisibleColumns() []ColumnDefinition {
	var out []ColumnDefinition
	for _, c := range Columns {
		if s.Columns[c.Key] {
			out = append(out, c)
		}
	}
	return out
}
