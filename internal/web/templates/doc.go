// Package templates renders the dashboard HTML. Components live in the
// .templ files; run `templ generate` from the module root to refresh the
// *_templ.go files after editing them.
package templates
