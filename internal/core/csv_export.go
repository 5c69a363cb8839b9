package core

// csv_export.go serializes customers to CSV for the "Export data" download.
//
// The quoting rule is narrower than encoding/csv: a field is quoted only
// when it contains a comma, a double quote or a newline. encoding/csv also
// quotes carriage returns and leading spaces, which would change the bytes
// users get compared to what the dashboard has always produced.

import (
	"io"
	"strconv"
	"strings"
)

// ExportFileName is the download name of the export.
const ExportFileName = "customers.csv"

// ExportContentType is the MIME type of the export.
const ExportContentType = "text/csv;charset=utf-8;"

// ExportHeaders is the fixed column order of the export. Avatar is excluded.
var ExportHeaders = []string{
	"id",
	"name",
	"customerName",
	"phone",
	"email",
	"gender",
	"brand",
	"product",
	"tier",
	"status",
	"category",
	"subcategory",
}

// EscapeCSVField quotes s if it contains a comma, double quote or newline,
// doubling any embedded quotes. Other values are returned verbatim.
func EscapeCSVField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// ExportRecord returns the export fields of c in ExportHeaders order.
func ExportRecord(c Customer) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.CustomerName,
		c.Phone,
		c.Email,
		string(c.Gender),
		c.Brand,
		c.Product,
		string(c.Tier),
		string(c.Status),
		c.Category,
		c.Subcategory,
	}
}

// ExportRows applies the export fallback policy: the filtered set when it
// has rows, otherwise the whole collection.
func ExportRows(filtered, all []Customer) []Customer {
	if len(filtered) > 0 {
		return filtered
	}
	return all
}

// ToCSV renders rows as CSV text: a header line followed by one line per
// row, joined by "\n" with no trailing newline.
func ToCSV(rows []Customer) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteCSV(&b, rows)
	return b.String()
}

// WriteCSV streams the same bytes as ToCSV to w.
func WriteCSV(w io.Writer, rows []Customer) error {
	if _, err := io.WriteString(w, joinEscaped(ExportHeaders)); err != nil {
		return err
	}
	for _, c := range rows {
		if _, err := io.WriteString(w, "\n"+joinEscaped(ExportRecord(c))); err != nil {
			return err
		}
	}
	return nil
}

func joinEscaped(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeCSVField(f)
	}
	return strings.Join(escaped, ",")
}
