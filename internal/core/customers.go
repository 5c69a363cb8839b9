package core

// CustomersState is the customer slice of the store.
type CustomersState struct {
	Items []Customer `json:"items"`
}

// SetCustomers replaces the whole collection.
func SetCustomers(_ CustomersState, items []Customer) CustomersState {
	return CustomersState{Items: append([]Customer(nil), items...)}
}

// AddCustomers prepends items to the collection, keeping the existing records.
func AddCustomers(s CustomersState, items []Customer) CustomersState {
	out := make([]Customer, 0, len(items)+len(s.Items))
	out = append(out, items...)
	out = append(out, s.Items...)
	return CustomersState{Items: out}
}

// AddCustomer prepends a single record.
func AddCustomer(s CustomersState, c Customer) CustomersState {
	return AddCustomers(s, []Customer{c})
}

// UpdateCustomerStatus sets the status of the first record with the given id.
// The second return value is false, and the state is returned unchanged,
// when no record has that id.
func UpdateCustomerStatus(s CustomersState, id int64, status Status) (CustomersState, bool) {
	for i, c := range s.Items {
		if c.ID != id {
			continue
		}
		out := append([]Customer(nil), s.Items...)
		out[i].Status = status
		return CustomersState{Items: out}, true
	}
	return s, false
}
