package league

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetOrCreateTierLedgerFunc func(userID string) (*TierLedger, error)
	EnsureMembershipFunc      func(userID string, now time.Time) (*JoinResult, error)
	AddWeeklyScoreFunc        func(userID string, amount int64, now time.Time) error
	GetLeagueFunc             func(leagueID string) (*League, error)
	GetStandingsFunc          func(leagueID string) (*Standings, error)
	GetUserStatusFunc         func(userID string, now time.Time) (*Status, error)
	GetLeaguesDueForCloseFunc func(now time.Time) ([]*League, error)
	FinalizeLeagueFunc        func(leagueID string, now time.Time) (*CloseResult, error)
	ClearFunc                 func()

	// Call records
	EnsureMembershipCalls []string
	AddWeeklyScoreCalls   []struct {
		UserID string
		Amount int64
	}
	FinalizeLeagueCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsureMembershipCalls = nil
	m.AddWeeklyScoreCalls = nil
	m.FinalizeLeagueCalls = nil
}

func (m *MockStore) GetOrCreateTierLedger(userID string) (*TierLedger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrCreateTierLedgerFunc != nil {
		return m.GetOrCreateTierLedgerFunc(userID)
	}
	return &TierLedger{UserID: userID, CurrentTier: TierBronze}, nil
}

func (m *MockStore) EnsureMembership(userID string, now time.Time) (*JoinResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsureMembershipCalls = append(m.EnsureMembershipCalls, userID)
	if m.EnsureMembershipFunc != nil {
		return m.EnsureMembershipFunc(userID, now)
	}
	return &JoinResult{}, nil
}

func (m *MockStore) AddWeeklyScore(userID string, amount int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddWeeklyScoreCalls = append(m.AddWeeklyScoreCalls, struct {
		UserID string
		Amount int64
	}{userID, amount})
	if m.AddWeeklyScoreFunc != nil {
		return m.AddWeeklyScoreFunc(userID, amount, now)
	}
	return nil
}

func (m *MockStore) GetLeague(leagueID string) (*League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLeagueFunc != nil {
		return m.GetLeagueFunc(leagueID)
	}
	return nil, ErrLeagueNotFound
}

func (m *MockStore) GetStandings(leagueID string) (*Standings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetStandingsFunc != nil {
		return m.GetStandingsFunc(leagueID)
	}
	return nil, ErrLeagueNotFound
}

func (m *MockStore) GetUserStatus(userID string, now time.Time) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserStatusFunc != nil {
		return m.GetUserStatusFunc(userID, now)
	}
	return nil, ErrNoMembership
}

func (m *MockStore) GetLeaguesDueForClose(now time.Time) ([]*League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLeaguesDueForCloseFunc != nil {
		return m.GetLeaguesDueForCloseFunc(now)
	}
	return nil, nil
}

func (m *MockStore) FinalizeLeague(leagueID string, now time.Time) (*CloseResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeLeagueCalls = append(m.FinalizeLeagueCalls, leagueID)
	if m.FinalizeLeagueFunc != nil {
		return m.FinalizeLeagueFunc(leagueID, now)
	}
	return &CloseResult{LeagueID: leagueID}, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
