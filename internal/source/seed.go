package source

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/JonMunkholm/CRM/internal/core"
)

//go:embed customers.json
var seedJSON []byte

// SeedJSON returns the embedded customer data set in its wire format.
func SeedJSON() []byte {
	return bytes.Clone(seedJSON)
}

// Seed serves the embedded data set.
type Seed struct{}

// FetchCustomers implements core.CustomerSource.
func (Seed) FetchCustomers(ctx context.Context) ([]core.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(seedJSON))
}
