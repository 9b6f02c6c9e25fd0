package service

import (
	"github.com/bikeshare/dashboard/internal/domain"
)

// RentalSource is re-exported from domain for convenience
type RentalSource = domain.RentalSource
