package core

import "strings"

// Included reports whether c passes every active filter in f.
//
// The checks run in a fixed order and stop at the first failure: tab,
// category, subcategory, brand, product, then free-text search. Empty
// dropdown values are treated as FilterNone and an empty tab as TabAll.
// SearchType is not consulted; search always scans name, customer name,
// email and phone.
func Included(c Customer, f FilterState) bool {
	if tab := f.ActiveTab; tab != "" && tab != TabAll {
		if string(c.Status) != string(tab) {
			return false
		}
	}

	if !matchesDropdown(f.Category, c.Category) {
		return false
	}
	if !matchesDropdown(f.Subcategory, c.Subcategory) {
		return false
	}
	if !matchesDropdown(f.Brand, c.Brand) {
		return false
	}
	if !matchesDropdown(f.Product, c.Product) {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q != "" {
		if !strings.Contains(searchHaystack(c), q) {
			return false
		}
	}

	return true
}

// Filter returns the customers included by f, preserving order.
func Filter(items []Customer, f FilterState) []Customer {
	out := make([]Customer, 0, len(items))
	for _, c := range items {
		if Included(c, f) {
			out = append(out, c)
		}
	}
	return out
}

// matchesDropdown applies one exact-match dropdown filter.
func matchesDropdown(want, got string) bool {
	if want == "" || want == FilterNone {
		return true
	}
	return got == want
}

// searchHaystack is the lower-cased text the free-text search scans.
func searchHaystack(c Customer) string {
	return strings.ToLower(c.Name + " " + c.CustomerName + " " + c.Email + " " + c.Phone)
}
