// Package catalog provides popularity statistics lookups for a
// (country, program) pair.
package catalog

import (
	"context"

	"dayzero/internal/recommend/models"
)

// Store looks up aggregate popularity records. An empty result is not an
// error; it means no data exists for the country/program pair.
type Store interface {
	LookupPopularity(ctx context.Context, countryCode string, programTypeID int) ([]models.PopularityRecord, error)
}
