package tournament

import (
	"github.com/mauv0809/swiss-tournament/internal/database"
	"github.com/mauv0809/swiss-tournament/internal/metrics"
)

// store handles all database operations for the tournament.
type store struct {
	conn    database.Connector
	metrics metrics.Metrics
}

// Player is a registered tournament entrant. Names need not be unique.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Match records the outcome of a single game.
type Match struct {
	Winner int64 `json:"winner"`
	Loser  int64 `json:"loser"`
}

// Standing is a player's row in the standings. Byes count as a won match.
type Standing struct {
	ID      int64  `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	Wins    int    `json:"wins" msgpack:"wins"`
	Matches int    `json:"matches" msgpack:"matches"`
}

// Pairing assigns two players to play each other in the next round.
// When Bye is set the player in slot 1 sits the round out, and ID2/Name2 are empty.
type Pairing struct {
	ID1   int64  `json:"id1" msgpack:"id1"`
	Name1 string `json:"name1" msgpack:"name1"`
	ID2   int64  `json:"id2" msgpack:"id2"`
	Name2 string `json:"name2" msgpack:"name2"`
	Bye   bool   `json:"bye,omitempty" msgpack:"bye"`
}
