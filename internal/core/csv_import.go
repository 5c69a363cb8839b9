package core

// csv_import.go turns an uploaded CSV file into customer records.
//
// The splitter is deliberately simple: lines are split on commas and each
// field loses one leading and one trailing double quote. Quoted fields that
// contain commas are therefore split apart. Every row is accepted; missing or
// malformed values fall back to the defaults below.

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrEmptyImport is returned when the file has no header or no data rows.
var ErrEmptyImport = errors.New("import failed: empty file")

// Import defaults for missing values.
const (
	DefaultImportName        = "Unknown"
	DefaultImportBrand       = "Averiq"
	DefaultImportProduct     = "Product1"
	DefaultImportTier        = TierPremium
	DefaultImportStatus      = StatusNew
	DefaultImportCategory    = "Category 1"
	DefaultImportSubcategory = "Sub 1"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// IDSource synthesizes ids for imported rows without a usable id.
type IDSource interface {
	// Next returns an id for the data row at index row (0-based).
	Next(row int) int64
}

// ClockIDSource derives ids from the wall clock in milliseconds plus the
// row index. Ids it hands out are strictly increasing, so rows from two
// imports in the same millisecond do not collide.
type ClockIDSource struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

// NewClockIDSource returns an IDSource backed by time.Now.
func NewClockIDSource() *ClockIDSource {
	return &ClockIDSource{Now: time.Now}
}

// Next implements IDSource.
func (s *ClockIDSource) Next(row int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	id := now().UnixMilli() + int64(row)
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// FromCSV parses text into customers.
// Returns ErrEmptyImport if there are fewer than two non-empty lines.
func FromCSV(text string, ids IDSource) ([]Customer, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ErrEmptyImport
	}

	header := strings.Split(lines[0], ",")
	index := make(map[string]int, len(header))
	for i, h := range header {
		// A repeated header name maps to its last position.
		index[strings.TrimSpace(h)] = i
	}

	out := make([]Customer, 0, len(lines)-1)
	for row, line := range lines[1:] {
		cols := splitImportLine(line)
		get := func(key string) string {
			i, ok := index[key]
			if !ok || i >= len(cols) {
				return ""
			}
			return strings.TrimSpace(cols[i])
		}
		out = append(out, customerFromImport(get, row, ids))
	}

	return out, nil
}

// ReadImport reads an uploaded file and parses it with FromCSV.
// The reader is wrapped to drop a UTF-8 BOM and replace invalid UTF-8.
// It also returns the number of bytes read from r.
func ReadImport(r io.Reader, ids IDSource) ([]Customer, int64, error) {
	src, counter := WrapForImport(r)

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, counter.BytesRead, fmt.Errorf("read import: %w", err)
	}

	rows, err := FromCSV(string(data), ids)
	return rows, counter.BytesRead, err
}

// splitLines splits on line breaks and drops empty lines.
func splitLines(text string) []string {
	parts := lineBreak.Split(text, -1)
	lines := parts[:0]
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// splitImportLine splits a data line on commas. Each field loses one
// leading and one trailing double quote and is then trimmed.
func splitImportLine(line string) []string {
	cols := strings.Split(line, ",")
	for i, c := range cols {
		c = strings.TrimPrefix(c, `"`)
		c = strings.TrimSuffix(c, `"`)
		cols[i] = strings.TrimSpace(c)
	}
	return cols
}

func customerFromImport(get func(string) string, row int, ids IDSource) Customer {
	// Only positive base-10 integers are kept; "1.0" or "1e2" get a new id.
	id, err := strconv.ParseInt(get("id"), 10, 64)
	if err != nil || id <= 0 {
		id = ids.Next(row)
	}

	gender := GenderMale
	if get("gender") == string(GenderFemale) {
		gender = GenderFemale
	}

	return Customer{
		ID:           id,
		Name:         orDefault(get("name"), DefaultImportName),
		CustomerName: get("customerName"),
		Phone:        get("phone"),
		Email:        get("email"),
		Gender:       gender,
		Brand:        orDefault(get("brand"), DefaultImportBrand),
		Product:      orDefault(get("product"), DefaultImportProduct),
		Tier:         Tier(orDefault(get("tier"), string(DefaultImportTier))),
		Status:       Status(orDefault(get("status"), string(DefaultImportStatus))),
		Category:     orDefault(get("category"), DefaultImportCategory),
		Subcategory:  orDefault(get("subcategory"), DefaultImportSubcategory),
		Avatar:       DefaultAvatar,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
