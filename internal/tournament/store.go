package tournament

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tournament/internal/database"
	"github.com/mauv0809/swiss-tournament/internal/metrics"
)

// New creates a new TournamentStore.
func New(conn database.Connector, metrics metrics.Metrics) TournamentStore {
	return &store{
		conn:    conn,
		metrics: metrics,
	}
}

// CountPlayers returns the number of players currently registered.
func (s *store) CountPlayers(ctx context.Context) (int, error) {
	var count int
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		return sess.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// RegisterPlayer adds a player and returns the id the database assigned.
func (s *store) RegisterPlayer(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		res, err := sess.ExecContext(ctx, "INSERT INTO players (name) VALUES (?)", name)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return s.refreshViews(ctx, sess)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to register player: %w", err)
	}

	s.metrics.IncPlayersRegistered()
	log.Info("Registered player", "id", id, "name", name)
	return id, nil
}

// DeletePlayers removes every player. Byes go with them; matches that still
// reference a player make the delete fail on the foreign key.
func (s *store) DeletePlayers(ctx context.Context) error {
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		if _, err := sess.ExecContext(ctx, "DELETE FROM players"); err != nil {
			return err
		}
		return s.refreshViews(ctx, sess)
	})
	if err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	log.Info("Deleted all players")
	return nil
}

// ReportMatch records the outcome of a single match. Repeat calls record
// repeat matches.
func (s *store) ReportMatch(ctx context.Context, winner, loser int64) error {
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		if _, err := sess.ExecContext(ctx, "INSERT INTO matches (winner, loser) VALUES (?, ?)", winner, loser); err != nil {
			return err
		}
		return s.refreshViews(ctx, sess)
	})
	if err != nil {
		return fmt.Errorf("failed to report match: %w", err)
	}

	s.metrics.IncMatchesReported()
	log.Info("Reported match", "winner", winner, "loser", loser)
	return nil
}

// ReportBye records a round in which the player had no opponent. It counts as
// a won match in the standings.
func (s *store) ReportBye(ctx context.Context, playerID int64) error {
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		if _, err := sess.ExecContext(ctx, "INSERT INTO byes (player_id) VALUES (?)", playerID); err != nil {
			return err
		}
		return s.refreshViews(ctx, sess)
	})
	if err != nil {
		return fmt.Errorf("failed to report bye: %w", err)
	}

	s.metrics.IncByesReported()
	log.Info("Reported bye", "player", playerID)
	return nil
}

// DeleteMatches removes all match and bye records.
func (s *store) DeleteMatches(ctx context.Context) error {
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		if _, err := sess.ExecContext(ctx, "DELETE FROM matches"); err != nil {
			return err
		}
		if _, err := sess.ExecContext(ctx, "DELETE FROM byes"); err != nil {
			return err
		}
		return s.refreshViews(ctx, sess)
	})
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	log.Info("Deleted all matches")
	return nil
}

// PlayerStandings returns every player ordered by wins, highest first. Ties
// keep registration order.
func (s *store) PlayerStandings(ctx context.Context) ([]Standing, error) {
	var standings []Standing
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		var err error
		standings, err = s.standings(ctx, sess)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	return standings, nil
}

// SwissPairings returns the pairings for the next round. See Pair for the
// bye policy. The bye is not recorded here; report it with ReportBye once the
// round is played.
func (s *store) SwissPairings(ctx context.Context) ([]Pairing, error) {
	var (
		standings []Standing
		hadBye    map[int64]bool
	)
	err := s.conn.WithSession(ctx, func(sess database.Session) error {
		var err error
		if standings, err = s.standings(ctx, sess); err != nil {
			return err
		}
		hadBye, err = s.byePlayers(ctx, sess)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get swiss pairings: %w", err)
	}

	pairings := Pair(standings, hadBye)
	s.metrics.IncPairingsGenerated()
	log.Info("Generated swiss pairings", "players", len(standings), "pairings", len(pairings))
	return pairings, nil
}

func (s *store) standings(ctx context.Context, sess database.Session) ([]Standing, error) {
	rows, err := sess.QueryContext(ctx, `
		SELECT player_id, name, wins, matches
		FROM view_standings
		ORDER BY wins DESC, player_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]Standing, 0)
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.ID, &st.Name, &st.Wins, &st.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan standings row: %w", err)
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

func (s *store) byePlayers(ctx context.Context, sess database.Session) (map[int64]bool, error) {
	rows, err := sess.QueryContext(ctx, "SELECT DISTINCT player_id FROM byes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hadBye := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bye row: %w", err)
		}
		hadBye[id] = true
	}
	return hadBye, rows.Err()
}
