package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/CRM/internal/core"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

const customersJSON = `[
 {"id":1,"name":"Ann","email":"ann@x.io","brand":"Averiq","status":"New","category":"Category 1"},
 {"id":2,"name":"Bob","email":"bob@x.io","brand":"Lumetra","status":"Return","category":"Category 2"},
 {"id":3,"name":"Cid","email":"cid@x.io","brand":"Lumetra","status":"New","category":"Category 1"}
]`

// =============================================================================
// export
// =============================================================================

func TestExport(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantIDs  []string
		fallback bool
	}{
		{"no filters", nil, []string{"1", "2", "3"}, false},
		{"tab", []string{"--tab", "New"}, []string{"1", "3"}, false},
		{"brand and tab", []string{"--tab", "New", "--brand", "Lumetra"}, []string{"3"}, false},
		{"search", []string{"--search", "BOB@"}, []string{"2"}, false},
		{"no match falls back", []string{"--brand", "Nexora"}, []string{"1", "2", "3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"export", "--in", "-"}, tt.args...)
			out, stderr, err := run(t, customersJSON, args...)
			if err != nil {
				t.Fatalf("export error: %v", err)
			}

			lines := strings.Split(out, "\n")
			if lines[0] != strings.Join(core.ExportHeaders, ",") {
				t.Errorf("header = %q", lines[0])
			}
			var ids []string
			for _, l := range lines[1:] {
				ids = append(ids, strings.SplitN(l, ",", 2)[0])
			}
			if strings.Join(ids, " ") != strings.Join(tt.wantIDs, " ") {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if got := strings.Contains(stderr, "no match"); got != tt.fallback {
				t.Errorf("fallback note = %v, want %v (%q)", got, tt.fallback, stderr)
			}
		})
	}
}

func TestExport_InvalidTab(t *testing.T) {
	_, _, err := run(t, customersJSON, "export", "--in", "-", "--tab", "Archived")
	if err == nil || !strings.Contains(err.Error(), "invalid tab") {
		t.Errorf("err = %v, want invalid tab", err)
	}
}

func TestExport_SeedToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	if _, _, err := run(t, "", "export", "--out", path); err != nil {
		t.Fatalf("export error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines == 0 {
		t.Error("seed export wrote no rows")
	}
}

// =============================================================================
// import
// =============================================================================

func TestImport(t *testing.T) {
	out, stderr, err := run(t, "id,name,gender\n7,Ann,Female\n,Bob,\n", "import", "--in", "-")
	if err != nil {
		t.Fatalf("import error: %v", err)
	}

	var rows []core.Customer
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID != 7 || rows[0].Gender != core.GenderFemale {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].ID <= 0 || rows[1].Gender != core.GenderMale || rows[1].Avatar != core.DefaultAvatar {
		t.Errorf("row 1 defaults = %+v", rows[1])
	}
	if !strings.Contains(stderr, "imported 2 rows") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestImport_Empty(t *testing.T) {
	_, _, err := run(t, "id,name\n", "import", "--in", "-")
	if !errors.Is(err, core.ErrEmptyImport) {
		t.Errorf("err = %v, want ErrEmptyImport", err)
	}
}

func TestImport_RequiresIn(t *testing.T) {
	if _, _, err := run(t, "", "import"); err == nil {
		t.Error("import without --in should fail")
	}
}

func TestImport_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	jsonPath := filepath.Join(dir, "out.json")
	if err := os.WriteFile(csvPath, []byte("id,name,brand\n11,Eve,Nexora\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "", "import", "--in", csvPath, "--out", jsonPath); err != nil {
		t.Fatalf("import error: %v", err)
	}
	out, _, err := run(t, "", "export", "--in", jsonPath, "--brand", "Nexora")
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(out, "\n11,Eve,") {
		t.Errorf("export = %q", out)
	}
}
