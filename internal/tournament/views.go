package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tournament/internal/database"
)

type viewRefresh struct {
	name    string
	rebuild string
}

// Views are rebuilt in this order; standings reads wins and matches.
var viewRefreshes = []viewRefresh{
	{
		name: "view_wins",
		rebuild: `
			INSERT INTO view_wins (player_id, wins)
			SELECT p.player_id,
				(SELECT COUNT(*) FROM matches m WHERE m.winner = p.player_id) +
				(SELECT COUNT(*) FROM byes b WHERE b.player_id = p.player_id)
			FROM players p`,
	},
	{
		name: "view_losses",
		rebuild: `
			INSERT INTO view_losses (player_id, losses)
			SELECT p.player_id,
				(SELECT COUNT(*) FROM matches m WHERE m.loser = p.player_id)
			FROM players p`,
	},
	{
		name: "view_matches",
		rebuild: `
			INSERT INTO view_matches (player_id, matches)
			SELECT p.player_id,
				(SELECT COUNT(*) FROM matches m WHERE m.winner = p.player_id OR m.loser = p.player_id) +
				(SELECT COUNT(*) FROM byes b WHERE b.player_id = p.player_id)
			FROM players p`,
	},
	{
		name: "view_standings",
		rebuild: `
			INSERT INTO view_standings (player_id, name, wins, matches)
			SELECT p.player_id, p.name, w.wins, vm.matches
			FROM players p
			JOIN view_wins w ON w.player_id = p.player_id
			JOIN view_matches vm ON vm.player_id = p.player_id`,
	},
}

// RefreshViews recomputes every aggregate view in its own session.
func (s *store) RefreshViews(ctx context.Context) error {
	return s.conn.WithSession(ctx, func(sess database.Session) error {
		return s.refreshViews(ctx, sess)
	})
}

// refreshViews rebuilds the aggregate views inside sess. Mutations call it
// before their session commits.
func (s *store) refreshViews(ctx context.Context, sess database.Session) error {
	start := time.Now()
	for _, v := range viewRefreshes {
		if _, err := sess.ExecContext(ctx, "DELETE FROM "+v.name); err != nil {
			return fmt.Errorf("failed to clear %s: %w", v.name, err)
		}
		if _, err := sess.ExecContext(ctx, v.rebuild); err != nil {
			return fmt.Errorf("failed to refresh %s: %w", v.name, err)
		}
	}
	duration := time.Since(start)
	s.metrics.ObserveRefreshDuration(duration.Seconds())
	log.Debug("Refreshed aggregate views", "duration", duration)
	return nil
}
