package core

import "testing"

func sampleCustomer() Customer {
	return Customer{
		ID:           1,
		Name:         "Acme Corp",
		CustomerName: "J. Lee",
		Phone:        "555-0100",
		Email:        "a@b.com",
		Gender:       GenderMale,
		Brand:        "Averiq",
		Product:      "Product1",
		Tier:         TierGold,
		Status:       StatusNew,
		Category:     "Category 1",
		Subcategory:  "Sub 1",
		Avatar:       DefaultAvatar,
	}
}

func TestIncluded_DefaultFiltersIncludeEverything(t *testing.T) {
	customers := []Customer{
		sampleCustomer(),
		{ID: 2, Status: "Archived", Tier: "Platinum"},
		{},
	}
	f := DefaultFilterState()

	for _, c := range customers {
		if !Included(c, f) {
			t.Errorf("Included(%+v, defaults) = false, want true", c)
		}
	}

	// Zero-value filters behave like the defaults.
	for _, c := range customers {
		if !Included(c, FilterState{}) {
			t.Errorf("Included(%+v, zero) = false, want true", c)
		}
	}
}

func TestIncluded_Dropdowns(t *testing.T) {
	c := sampleCustomer()

	tests := []struct {
		name string
		key  FilterKey
		val  string
		want bool
	}{
		{"category match", FilterKeyCategory, "Category 1", true},
		{"category mismatch", FilterKeyCategory, "Category 2", false},
		{"subcategory mismatch", FilterKeySubcategory, "Sub 2", false},
		{"brand match", FilterKeyBrand, "Averiq", true},
		{"brand mismatch", FilterKeyBrand, "Nexora", false},
		{"brand is case sensitive", FilterKeyBrand, "averiq", false},
		{"product mismatch", FilterKeyProduct, "Product3", false},
		{"none disables filter", FilterKeyProduct, FilterNone, true},
		{"empty disables filter", FilterKeyCategory, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := SetFilter(DefaultFilterState(), tt.key, tt.val)
			if !ok {
				t.Fatalf("SetFilter(%q) rejected", tt.key)
			}
			if got := Included(c, f); got != tt.want {
				t.Errorf("Included() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncluded_DropdownMismatchWinsOverMatches(t *testing.T) {
	c := sampleCustomer()
	f := FilterState{
		ActiveTab:   TabNew,
		Category:    "Category 1",
		Subcategory: "Sub 1",
		Brand:       "Lumetra", // the only disagreeing field
		Product:     "Product1",
		Search:      "acme",
	}

	if Included(c, f) {
		t.Error("Included() = true with a disagreeing brand filter")
	}
}

func TestIncluded_Tab(t *testing.T) {
	c := sampleCustomer()

	tests := []struct {
		tab  Tab
		want bool
	}{
		{TabAll, true},
		{"", true},
		{TabNew, true},
		{TabPurchased, false},
		{TabInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			f := SetTab(DefaultFilterState(), tt.tab)
			if got := Included(c, f); got != tt.want {
				t.Errorf("Included(tab=%q) = %v, want %v", tt.tab, got, tt.want)
			}
		})
	}
}

func TestIncluded_Search(t *testing.T) {
	c := sampleCustomer()

	tests := []struct {
		search string
		want   bool
	}{
		{"acme", true},
		{"ACME", true},
		{"  acme  ", true},
		{"lee", true},
		{"a@b.com", true},
		{"0100", true},
		{"corp j.", true}, // spans name and customerName
		{"zzz", false},
		{"averiq", false}, // brand is not searched
		{"", true},
		{"   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			f := DefaultFilterState()
			f.Search = tt.search
			if got := Included(c, f); got != tt.want {
				t.Errorf("Included(search=%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestIncluded_SearchTypeIgnored(t *testing.T) {
	c := sampleCustomer()

	for _, st := range SearchTypeOptions {
		f := DefaultFilterState()
		f.SearchType = st
		f.Search = "555-0100"

		// Phone matches even when the search type names another field.
		if !Included(c, f) {
			t.Errorf("Included(searchType=%q) = false, want true", st)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	items := []Customer{
		{ID: 3, Status: StatusNew},
		{ID: 1, Status: StatusReturn},
		{ID: 2, Status: StatusNew},
	}
	f := SetTab(DefaultFilterState(), TabNew)

	got := Filter(items, f)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Errorf("Filter() = %+v, want ids [3 2]", got)
	}
}
