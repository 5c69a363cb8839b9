// Package core provides the business logic of the customers dashboard.
//
// The package holds all domain logic independent of any UI or transport
// layer. It is used by the web handlers, the crmctl CLI and tests without
// modification.
//
// # Architecture
//
//   - Filter: [Included] and [Filter] decide which customers the table shows.
//   - CSV codec: [ToCSV] and [WriteCSV] export, [FromCSV] and [ReadImport] import.
//   - Reducers: pure functions over [CustomersState], [FilterState] and
//     [UIPreferences] that return new values and never mutate their input.
//   - Store: [Store] owns the three slices and applies [Action] values one
//     at a time through [Store.Dispatch].
//   - Service: [Service] loads the customers once, runs imports under the
//     [ImportLimiter] and exposes every dashboard operation.
//   - Table: [BuildTable] turns a [Snapshot] into page 1 of the table.
//
// # Filtering
//
// A customer is included when it passes the tab, the four dropdown filters
// and the free-text search, in that order:
//
//	visible := core.Filter(snapshot.Customers, snapshot.Filters)
//
// The sentinel [FilterNone] and the empty string disable a dropdown filter.
// The searchType field is stored and rendered but never consulted.
//
// # CSV
//
// Export quotes a field only when it contains a comma, a double quote or a
// newline. Import splits every line on commas without honoring quotes, so a
// quoted field that contains a comma does not survive a round trip.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC002: Customer source errors
//   - FILE001-FILE005: File errors (size, encoding, empty)
//   - IMP001: Import concurrency
//   - REQ001-REQ006: Request errors (unknown column, invalid status or tab)
package core
