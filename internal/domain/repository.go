package domain

import (
	"context"
)

// RentalSource defines where the daily rental dataset is loaded from.
// The domain owns the interface; repositories implement it.
type RentalSource interface {
	// Load reads the full record set
	Load(ctx context.Context) (*Dataset, error)

	// Describe names the source for logs and health output
	Describe() string

	// Health checks that the source is reachable
	Health(ctx context.Context) error
}
