package ports

import (
	"context"

	"github.com/bft-labs/dreamteam/internal/domain"
)

// RosterLoader fetches the player roster.
// Errors wrap domain.ErrLoadFailed. Implementations do not retry.
type RosterLoader interface {
	Load(ctx context.Context) (domain.Roster, error)
}
