package core

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 10

// PagerPlaceholders are the page buttons shown under the table.
// Only page 1 is ever displayed; the other buttons do nothing.
var PagerPlaceholders = []string{"1", "2", "3", "....", "10"}

// StatusChipClass maps a status to its chip styling. Unknown statuses
// (possible after import) get NeutralChipClass.
var StatusChipClass = map[Status]string{
	StatusNew:        "bg-pink-100 text-pink-700",
	StatusReturn:     "bg-red-100 text-red-700",
	StatusInProgress: "bg-yellow-100 text-yellow-800",
	StatusPurchased:  "bg-green-100 text-green-700",
}

// NeutralChipClass styles statuses outside the known set.
const NeutralChipClass = "bg-gray-100 text-gray-700"

// ChipClass returns the chip styling for status.
func ChipClass(status Status) string {
	if c, ok := StatusChipClass[status]; ok {
		return c
	}
	return NeutralChipClass
}

// TierIcon returns the icon name for tier. Anything that is not Premium,
// Gold or Silver gets the badge icon.
func TierIcon(tier Tier) string {
	switch tier {
	case TierPremium:
		return "crown"
	case TierGold:
		return "medal"
	case TierSilver:
		return "award"
	default:
		return "badge-check"
	}
}

// TableRow is one rendered row.
type TableRow struct {
	Customer Customer `json:"customer"`
	Cells    []string `json:"cells"` // Visible column values in Columns order
}

// TableColumn is one visible column header.
type TableColumn struct {
	Key   ColumnKey `json:"key"`
	Label string    `json:"label"`
}

// TableView is the table as presented: one page of the filtered set.
type TableView struct {
	Columns  []TableColumn `json:"columns"`
	Rows     []TableRow    `json:"rows"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Total    int           `json:"total"`
	ColSpan  int           `json:"colSpan"`
}

// BuildTable builds page 1 of the filtered customers in snap.
func BuildTable(snap Snapshot) TableView {
	filtered := snap.Filtered()
	visible := snap.UI.VisibleColumns()

	view := TableView{
		Page:     1,
		PageSize: DefaultPageSize,
		Total:    len(filtered),
		ColSpan:  FixedColumnCount + len(visible),
		Columns:  make([]TableColumn, len(visible)),
	}
	for i, c := range visible {
		view.Columns[i] = TableColumn{Key: c.Key, Label: c.Label}
	}

	from := (view.Page - 1) * view.PageSize
	to := min(view.Page*view.PageSize, view.Total)
	if view.Total > 0 {
		view.Start = from + 1
	}
	view.End = to

	view.Rows = make([]TableRow, 0, max(to-from, 0))
	for _, c := range filtered[min(from, to):to] {
		cells := make([]string, len(visible))
		for i, col := range visible {
			cells[i] = col.Value(c)
		}
		view.Rows = append(view.Rows, TableRow{Customer: c, Cells: cells})
	}

	return view
}
