package notifier

import (
	"sync"

	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendPairingsFunc  func(pairings []tournament.Pairing, dryRun bool) error
	SendStandingsFunc func(standings []tournament.Standing, dryRun bool) error

	// Call records
	SendPairingsCalls  [][]tournament.Pairing
	SendStandingsCalls [][]tournament.Standing
	DryRuns            []bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingsCalls = nil
	m.SendStandingsCalls = nil
	m.DryRuns = nil
}

func (m *Mock) SendPairings(pairings []tournament.Pairing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingsCalls = append(m.SendPairingsCalls, pairings)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendPairingsFunc != nil {
		return m.SendPairingsFunc(pairings, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(standings []tournament.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(standings, dryRun)
	}
	return nil
}
