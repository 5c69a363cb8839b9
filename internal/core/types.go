package core

// Gender is the customer's recorded gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Tier is the customer loyalty tier.
// Values outside the known set can enter the store through CSV import.
type Tier string

const (
	TierPremium Tier = "Premium"
	TierGold    Tier = "Gold"
	TierSilver  Tier = "Silver"
	TierBrowns  Tier = "Browns"
)

// Tiers lists the known tiers in display order.
var Tiers = []Tier{TierPremium, TierGold, TierSilver, TierBrowns}

// Status is the request status of a customer.
// Values outside the known set can enter the store through CSV import.
type Status string

const (
	StatusNew        Status = "New"
	StatusReturn     Status = "Return"
	StatusInProgress Status = "In-progress"
	StatusPurchased  Status = "Purchased"
)

// Statuses lists the selectable statuses in display order.
var Statuses = []Status{StatusNew, StatusReturn, StatusInProgress, StatusPurchased}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Tab is the header tab that narrows the table by status.
type Tab string

const (
	TabAll        Tab = "All"
	TabNew        Tab = "New"
	TabReturn     Tab = "Return"
	TabInProgress Tab = "In-progress"
	TabPurchased  Tab = "Purchased"
)

// Tabs lists the header tabs in display order.
var Tabs = []Tab{TabAll, TabNew, TabReturn, TabInProgress, TabPurchased}

// Valid reports whether t is one of the header tabs.
func (t Tab) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// FilterNone is the sentinel value meaning "no filter" for dropdown filters.
const FilterNone = "None"

// DefaultAvatar is the image reference given to customers without one.
const DefaultAvatar = "/avatar.png"

// Customer is a single CRM customer record.
// JSON names match the ingress wire format.
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Gender       Gender `json:"gender"`
	Brand        string `json:"brand"`
	Product      string `json:"product"`
	Tier         Tier   `json:"tier"`
	Status       Status `json:"status"`
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Avatar       string `json:"avatar"`
}

// FilterKey names a field of FilterState that can be set individually.
type FilterKey string

const (
	FilterKeyActiveTab   FilterKey = "activeTab"
	FilterKeyCategory    FilterKey = "category"
	FilterKeySubcategory FilterKey = "subcategory"
	FilterKeyBrand       FilterKey = "brand"
	FilterKeyProduct     FilterKey = "product"
	FilterKeySearchType  FilterKey = "searchType"
	FilterKeySearch      FilterKey = "search"
)

// ToolbarFilterKeys are the keys written by the toolbar's "Apply filter"
// action, in the order they are applied.
var ToolbarFilterKeys = []FilterKey{
	FilterKeyCategory,
	FilterKeySubcategory,
	FilterKeyBrand,
	FilterKeyProduct,
	FilterKeySearchType,
	FilterKeySearch,
}

// FilterState holds the active tab and the toolbar filters.
type FilterState struct {
	ActiveTab   Tab    `json:"activeTab"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Brand       string `json:"brand"`
	Product     string `json:"product"`
	// SearchType is recorded but does not scope the search.
	SearchType string `json:"searchType"`
	Search     string `json:"search"`
}

// DefaultFilterState returns the initial filter state.
func DefaultFilterState() FilterState {
	return FilterState{
		ActiveTab:   TabAll,
		Category:    FilterNone,
		Subcategory: FilterNone,
		Brand:       FilterNone,
		Product:     FilterNone,
		SearchType:  FilterNone,
		Search:      "",
	}
}

// ColumnKey identifies a toggleable table column.
type ColumnKey string

const (
	ColumnName         ColumnKey = "name"
	ColumnCustomerName ColumnKey = "customerName"
	ColumnPhone        ColumnKey = "phone"
	ColumnEmail        ColumnKey = "email"
	ColumnGender       ColumnKey = "gender"
	ColumnBrand        ColumnKey = "brand"
	ColumnProduct      ColumnKey = "product"
	ColumnTier         ColumnKey = "tier"
	ColumnStatus       ColumnKey = "status"
)

// UIPreferences holds column visibility and the sidebar flag.
type UIPreferences struct {
	Columns          map[ColumnKey]bool `json:"columns"`
	SidebarCollapsed bool               `json:"sidebarCollapsed"`
}

// DefaultUIPreferences returns all columns visible and the sidebar expanded.
func DefaultUIPreferences() UIPreferences {
	cols := make(map[ColumnKey]bool, len(Columns))
	for _, c := range Columns {
		cols[c.Key] = true
	}
	return UIPreferences{Columns: cols}
}

// clone returns a deep copy so reducers never share the column map.
func (p UIPreferences) clone() UIPreferences {
	cols := make(map[ColumnKey]bool, len(p.Columns))
	for k, v := range p.Columns {
		cols[k] = v
	}
	return UIPreferences{Columns: cols, SidebarCollapsed: p.SidebarCollapsed}
}
