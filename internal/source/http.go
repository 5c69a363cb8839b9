package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/logging"
)

// HTTP fetches customers from an endpoint returning a JSON array.
// There is no retry; a non-2xx response is an error.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns an HTTP source for url. A nil client uses
// http.DefaultClient.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{URL: url, Client: client}
}

// FetchCustomers implements core.CustomerSource.
func (h *HTTP) FetchCustomers(ctx context.Context) ([]core.Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, h.URL)
	}

	items, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("customers fetched", "url", h.URL, "count", len(items))
	return items, nil
}
