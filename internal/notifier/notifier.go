package notifier

import "github.com/mauv0809/swiss-tournament/internal/tournament"

// Notifier defines a high-level interface for announcing tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendPairings(pairings []tournament.Pairing, dryRun bool) error
	SendStandings(standings []tournament.Standing, dryRun bool) error
}
