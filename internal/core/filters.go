package core

// SetTab selects a header tab.
func SetTab(s FilterState, tab Tab) FilterState {
	s.ActiveTab = tab
	return s
}

// SetFilter writes one field of the filter state. The value is not
// validated. The second return value is false, and the state is returned
// unchanged, when key does not name a field.
func SetFilter(s FilterState, key FilterKey, value string) (FilterState, bool) {
	switch key {
	case FilterKeyActiveTab:
		s.ActiveTab = Tab(value)
	case FilterKeyCategory:
		s.Category = value
	case FilterKeySubcategory:
		s.Subcategory = value
	case FilterKeyBrand:
		s.Brand = value
	case FilterKeyProduct:
		s.Product = value
	case FilterKeySearchType:
		s.SearchType = value
	case FilterKeySearch:
		s.Search = value
	default:
		return s, false
	}
	return s, true
}

// ResetFilters restores every filter to its initial value.
func ResetFilters() FilterState {
	return DefaultFilterState()
}

// Value returns the current value of the field named by key.
func (s FilterState) Value(key FilterKey) (string, bool) {
	switch key {
	case FilterKeyActiveTab:
		return string(s.ActiveTab), true
	case FilterKeyCategory:
		return s.Category, true
	case FilterKeySubcategory:
		return s.Subcategory, true
	case FilterKeyBrand:
		return s.Brand, true
	case FilterKeyProduct:
		return s.Product, true
	case FilterKeySearchType:
		return s.SearchType, true
	case FilterKeySearch:
		return s.Search, true
	}
	return "", false
}

// Filter dropdown options shown in the toolbar. Values match the data set.
var (
	CategoryOptions    = []string{FilterNone, "Category 1", "Category 2"}
	SubcategoryOptions = []string{FilterNone, "Sub 1", "Sub 2"}
	BrandOptions       = []string{FilterNone, "Averiq", "Lumetra", "Ventrova", "Nexora"}
	ProductOptions     = []string{FilterNone, "Product1", "Product2", "Product3"}
	SearchTypeOptions  = []string{FilterNone, "Name", "Email", "Phone", "Customer Name"}
)
