package tournament

import (
	"context"
	"sync"
)

var _ TournamentStore = (*MockStore)(nil)

// MockStore is a mock implementation of the TournamentStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CountPlayersFunc    func(ctx context.Context) (int, error)
	RegisterPlayerFunc  func(ctx context.Context, name string) (int64, error)
	DeletePlayersFunc   func(ctx context.Context) error
	ReportMatchFunc     func(ctx context.Context, winner, loser int64) error
	ReportByeFunc       func(ctx context.Context, playerID int64) error
	DeleteMatchesFunc   func(ctx context.Context) error
	RefreshViewsFunc    func(ctx context.Context) error
	PlayerStandingsFunc func(ctx context.Context) ([]Standing, error)
	SwissPairingsFunc   func(ctx context.Context) ([]Pairing, error)

	// Call records
	RegisterPlayerCalls []string
	ReportMatchCalls    []Match
	ReportByeCalls      []int64
	DeletePlayersCalls  int
	DeleteMatchesCalls  int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = nil
	m.ReportMatchCalls = nil
	m.ReportByeCalls = nil
	m.DeletePlayersCalls = 0
	m.DeleteMatchesCalls = 0
}

func (m *MockStore) CountPlayers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc(ctx)
	}
	return 0, nil
}

func (m *MockStore) RegisterPlayer(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, name)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(ctx, name)
	}
	return int64(len(m.RegisterPlayerCalls)), nil
}

func (m *MockStore) DeletePlayers(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayersCalls++
	if m.DeletePlayersFunc != nil {
		return m.DeletePlayersFunc(ctx)
	}
	return nil
}

func (m *MockStore) ReportMatch(ctx context.Context, winner, loser int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportMatchCalls = append(m.ReportMatchCalls, Match{Winner: winner, Loser: loser})
	if m.ReportMatchFunc != nil {
		return m.ReportMatchFunc(ctx, winner, loser)
	}
	return nil
}

func (m *MockStore) ReportBye(ctx context.Context, playerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportByeCalls = append(m.ReportByeCalls, playerID)
	if m.ReportByeFunc != nil {
		return m.ReportByeFunc(ctx, playerID)
	}
	return nil
}

func (m *MockStore) DeleteMatches(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchesCalls++
	if m.DeleteMatchesFunc != nil {
		return m.DeleteMatchesFunc(ctx)
	}
	return nil
}

func (m *MockStore) RefreshViews(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RefreshViewsFunc != nil {
		return m.RefreshViewsFunc(ctx)
	}
	return nil
}

func (m *MockStore) PlayerStandings(ctx context.Context) ([]Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayerStandingsFunc != nil {
		return m.PlayerStandingsFunc(ctx)
	}
	return []Standing{}, nil
}

func (m *MockStore) SwissPairings(ctx context.Context) ([]Pairing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SwissPairingsFunc != nil {
		return m.SwissPairingsFunc(ctx)
	}
	return []Pairing{}, nil
}
