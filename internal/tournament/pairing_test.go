package tournament_test

import (
	"testing"

	"github.com/mauv0809/swiss-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
)

func standingsOf(ids ...int64) []tournament.Standing {
	out := make([]tournament.Standing, 0, len(ids))
	for _, id := range ids {
		out = append(out, tournament.Standing{ID: id, Name: string(rune('A' + id - 1))})
	}
	return out
}

func TestPair(t *testing.T) {
	tests := []struct {
		name      string
		standings []tournament.Standing
		hadBye    map[int64]bool
		expected  []tournament.Pairing
	}{
		{
			name:      "no players",
			standings: nil,
			expected:  []tournament.Pairing{},
		},
		{
			name:      "single player gets a bye",
			standings: standingsOf(1),
			expected: []tournament.Pairing{
				{ID1: 1, Name1: "A", Bye: true},
			},
		},
		{
			name:      "even count pairs adjacent rows",
			standings: standingsOf(1, 3, 2, 4),
			expected: []tournament.Pairing{
				{ID1: 1, Name1: "A", ID2: 3, Name2: "C"},
				{ID1: 2, Name1: "B", ID2: 4, Name2: "D"},
			},
		},
		{
			name:      "odd count gives the last player the bye",
			standings: standingsOf(5, 1, 2, 3, 4),
			expected: []tournament.Pairing{
				{ID1: 5, Name1: "E", ID2: 1, Name2: "A"},
				{ID1: 2, Name1: "B", ID2: 3, Name2: "C"},
				{ID1: 4, Name1: "D", Bye: true},
			},
		},
		{
			name:      "odd count skips players who already had a bye",
			standings: standingsOf(1, 2, 3, 4, 5),
			hadBye:    map[int64]bool{5: true, 4: true},
			expected: []tournament.Pairing{
				{ID1: 1, Name1: "A", ID2: 2, Name2: "B"},
				{ID1: 4, Name1: "D", ID2: 5, Name2: "E"},
				{ID1: 3, Name1: "C", Bye: true},
			},
		},
		{
			name:      "everyone had a bye falls back to the last player",
			standings: standingsOf(1, 2, 3),
			hadBye:    map[int64]bool{1: true, 2: true, 3: true},
			expected: []tournament.Pairing{
				{ID1: 1, Name1: "A", ID2: 2, Name2: "B"},
				{ID1: 3, Name1: "C", Bye: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tournament.Pair(tt.standings, tt.hadBye))
		})
	}
}

func TestPair_CoversEveryPlayerOnce(t *testing.T) {
	for n := 0; n <= 12; n++ {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		pairings := tournament.Pair(standingsOf(ids...), nil)

		seen := make(map[int64]int)
		byes := 0
		for _, p := range pairings {
			seen[p.ID1]++
			if p.Bye {
				byes++
				assert.Zero(t, p.ID2)
				continue
			}
			seen[p.ID2]++
		}

		assert.Len(t, seen, n, "n=%d", n)
		for id, count := range seen {
			assert.Equal(t, 1, count, "player %d appears %d times (n=%d)", id, count, n)
		}
		assert.Equal(t, n%2, byes, "n=%d", n)
		assert.Len(t, pairings, (n+1)/2, "n=%d", n)
	}
}

func TestPair_DoesNotModifyInput(t *testing.T) {
	standings := standingsOf(1, 2, 3)
	tournament.Pair(standings, nil)
	assert.Equal(t, standingsOf(1, 2, 3), standings)
}
