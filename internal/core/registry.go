package core

import "fmt"

// ColumnDefinition describes one toggleable table column.
type ColumnDefinition struct {
	Key   ColumnKey
	Label string                  // Header label shown in the table
	Value func(c Customer) string // Cell text
}

// Columns is the fixed set of toggleable columns in display order.
// The serial number and avatar columns are always shown and are not listed.
var Columns = []ColumnDefinition{
	{Key: ColumnName, Label: "Name", Value: func(c Customer) string { return c.Name }},
	{Key: ColumnCustomerName, Label: "Customer Name", Value: func(c Customer) string { return c.CustomerName }},
	{Key: ColumnPhone, Label: "Contact No.", Value: func(c Customer) string { return c.Phone }},
	{Key: ColumnEmail, Label: "Email", Value: func(c Customer) string { return c.Email }},
	{Key: ColumnGender, Label: "Gender", Value: func(c Customer) string { return string(c.Gender) }},
	{Key: ColumnBrand, Label: "Brand", Value: func(c Customer) string { return c.Brand }},
	{Key: ColumnProduct, Label: "Product Name", Value: func(c Customer) string { return c.Product }},
	{Key: ColumnTier, Label: "Tiers", Value: func(c Customer) string { return string(c.Tier) }},
	{Key: ColumnStatus, Label: "Status", Value: func(c Customer) string { return string(c.Status) }},
}

// FixedColumnCount is the number of always-visible columns (Sr.no and avatar).
const FixedColumnCount = 2

// ErrUnknownColumn is returned when a column key is not in Columns.
type ErrUnknownColumn struct {
	Key ColumnKey
}

func (e *ErrUnknownColumn) Error() string {
	return fmt.Sprintf("unknown column: %s", e.Key)
}

// ColumnByKey returns the definition for key.
// Returns false if the key is not a toggleable column.
func ColumnByKey(key ColumnKey) (ColumnDefinition, bool) {
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// ColumnKeys returns the toggleable column keys in display order.
func ColumnKeys() []ColumnKey {
	keys := make([]ColumnKey, len(Columns))
	for i, c := range Columns {
		keys[i] = c.Key
	}
	return keys
}
