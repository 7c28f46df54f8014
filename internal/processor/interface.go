package processor

import (
	"context"

	"github.com/mauv0809/swiss-tournament/internal/notifier"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

// Store defines the tournament reads required by the processor.
type Store interface {
	PlayerStandings(ctx context.Context) ([]tournament.Standing, error)
	SwissPairings(ctx context.Context) ([]tournament.Pairing, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
