package out

import (
	"context"

	"stringlog/internal/modules/stats/domain"
)

// EntrySource reads a consistent snapshot of the session collection.
type EntrySource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}
