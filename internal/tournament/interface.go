package tournament

import "context"

// TournamentStore defines the operations on a Swiss tournament's roster and results.
// Every mutating operation refreshes the aggregate views before it returns.
type TournamentStore interface {
	CountPlayers(ctx context.Context) (int, error)
	RegisterPlayer(ctx context.Context, name string) (int64, error)
	DeletePlayers(ctx context.Context) error
	ReportMatch(ctx context.Context, winner, loser int64) error
	ReportBye(ctx context.Context, playerID int64) error
	DeleteMatches(ctx context.Context) error
	RefreshViews(ctx context.Context) error
	PlayerStandings(ctx context.Context) ([]Standing, error)
	SwissPairings(ctx context.Context) ([]Pairing, error)
}
