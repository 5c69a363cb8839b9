package core

import (
	"strconv"
	"sync"
	"testing"
)

func TestImportHistory_Recent(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		adds  int
		take  int
		want  []string
	}{
		{"empty", 3, 0, 0, []string{}},
		{"partial", 3, 2, 0, []string{"f1", "f0"}},
		{"exactly full", 3, 3, 0, []string{"f2", "f1", "f0"}},
		{"wraps and evicts oldest", 3, 5, 0, []string{"f4", "f3", "f2"}},
		{"take fewer", 3, 5, 2, []string{"f4", "f3"}},
		{"take more than stored", 3, 2, 10, []string{"f1", "f0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImportHistory(tt.limit)
			for i := 0; i < tt.adds; i++ {
				h.Add(ImportRecord{FileName: "f" + strconv.Itoa(i)})
			}

			got := h.Recent(tt.take)
			if len(got) != len(tt.want) {
				t.Fatalf("Recent(%d) = %d records, want %d", tt.take, len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.FileName != tt.want[i] {
					t.Errorf("Recent()[%d] = %q, want %q", i, rec.FileName, tt.want[i])
				}
			}
			if n := len(h.Recent(0)); n != min(tt.adds, tt.limit) {
				t.Errorf("stored = %d, want %d", n, min(tt.adds, tt.limit))
			}
		})
	}
}

func TestImportHistory_DefaultLimit(t *testing.T) {
	h := NewImportHistory(0)
	for i := 0; i < DefaultImportHistorySize+5; i++ {
		h.Add(ImportRecord{Imported: i})
	}

	if n := len(h.Recent(0)); n != DefaultImportHistorySize {
		t.Errorf("stored = %d, want %d", n, DefaultImportHistorySize)
	}
	if got := h.Recent(1)[0].Imported; got != DefaultImportHistorySize+4 {
		t.Errorf("newest Imported = %d", got)
	}
}

func TestImportHistory_Concurrent(t *testing.T) {
	h := NewImportHistory(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Add(ImportRecord{})
			h.Recent(5)
		}()
	}
	wg.Wait()

	if n := len(h.Recent(0)); n != 10 {
		t.Errorf("stored = %d, want 10", n)
	}
}
