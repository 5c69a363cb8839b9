package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/CRM/internal/config"
	"github.com/JonMunkholm/CRM/internal/core"
)

func TestSeed_FetchCustomers(t *testing.T) {
	items, err := Seed{}.FetchCustomers(context.Background())
	if err != nil {
		t.Fatalf("FetchCustomers() error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("seed data set is empty")
	}

	seen := make(map[int64]bool)
	for _, c := range items {
		if seen[c.ID] {
			t.Errorf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true

		if !c.Status.Valid() {
			t.Errorf("customer %d has status %q", c.ID, c.Status)
		}
		if c.Avatar == "" {
			t.Errorf("customer %d has no avatar", c.ID)
		}
	}
}

func TestSeed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (Seed{}).FetchCustomers(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchCustomers() error = %v, want context.Canceled", err)
	}
}

func TestSeedJSON_IsACopy(t *testing.T) {
	b := SeedJSON()
	b[0] = 'x'
	if SeedJSON()[0] != '[' {
		t.Error("SeedJSON shares the embedded bytes")
	}
}

func TestHTTP_FetchCustomers(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr string
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `[{"id":1,"name":"Acme Corp","status":"New"},{"id":2,"name":"Globex"}]`,
			want:   2,
		},
		{
			name:   "empty array",
			status: http.StatusOK,
			body:   `[]`,
			want:   0,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "not an array",
			status:  http.StatusOK,
			body:    `{"items":[]}`,
			wantErr: "decode customers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Accept") != "application/json" {
					t.Errorf("Accept = %q", r.Header.Get("Accept"))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			items, err := NewHTTP(srv.URL, srv.Client()).FetchCustomers(context.Background())
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("FetchCustomers() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchCustomers() error: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d customers, want %d", len(items), tt.want)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	src := WithTimeout(NewHTTP(srv.URL, srv.Client()), 50*time.Millisecond)

	start := time.Now()
	_, err := src.FetchCustomers(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("FetchCustomers() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout was not applied")
	}
}

func TestOpen(t *testing.T) {
	t.Run("seed", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{Kind: config.SourceSeed, Timeout: time.Second}}
		src, closeFn, err := Open(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer closeFn()

		if _, err := src.FetchCustomers(context.Background()); err != nil {
			t.Errorf("FetchCustomers() error: %v", err)
		}
	})

	t.Run("http", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{Kind: config.SourceHTTP, URL: "http://127.0.0.1:1/customers"}}
		src, closeFn, err := Open(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer closeFn()

		if _, ok := src.(*HTTP); !ok {
			t.Errorf("Open() = %T, want *HTTP without a timeout", src)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Source: config.SourceConfig{Kind: "ftp"}}
		_, closeFn, err := Open(context.Background(), cfg)
		if err == nil {
			t.Fatal("Open() expected error for unknown kind")
		}
		closeFn()
	})
}

func TestPostgres_FetchCustomers(t *testing.T) {
	dsn := os.Getenv("CRM_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CRM_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pg, err := NewPostgres(ctx, config.DatabaseConfig{URL: dsn, MaxConns: 2}, `SELECT 7::bigint, 'Acme', 'J. Lee', '555', 'a@b.com',
		'Female', 'Averiq', 'Product1', 'Gold', 'New', 'Category 1', 'Sub 1', ''`)
	if err != nil {
		t.Fatalf("NewPostgres() error: %v", err)
	}
	defer pg.Close()

	items, err := pg.FetchCustomers(ctx)
	if err != nil {
		t.Fatalf("FetchCustomers() error: %v", err)
	}
	want := core.Customer{
		ID: 7, Name: "Acme", CustomerName: "J. Lee", Phone: "555", Email: "a@b.com",
		Gender: core.GenderFemale, Brand: "Averiq", Product: "Product1", Tier: core.TierGold,
		Status: core.StatusNew, Category: "Category 1", Subcategory: "Sub 1",
	}
	if len(items) != 1 || items[0] != want {
		t.Errorf("FetchCustomers() = %+v, want [%+v]", items, want)
	}
}
