package season

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the SeasonStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateSeasonFunc        func(s *Season) error
	GetActiveSeasonFunc     func(now time.Time) (*Season, error)
	GetOrCreateProgressFunc func(seasonID, userID string) (*Progress, error)
	AddXPFunc               func(seasonID, userID string, amount int64) (*Progress, error)
	SetPremiumFunc          func(seasonID, userID string) error
	GetClaimsFunc           func(seasonID, userID string) (map[int]bool, map[int]bool, error)
	RecordClaimFunc         func(seasonID, userID string, tierNumber int, track Track, now time.Time) (bool, error)
	ClearFunc               func()

	// Call records
	AddXPCalls []struct {
		UserID string
		Amount int64
	}
	RecordClaimCalls []struct {
		UserID     string
		TierNumber int
		Track      Track
	}
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddXPCalls = nil
	m.RecordClaimCalls = nil
}

func (m *MockStore) CreateSeason(s *Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateSeasonFunc != nil {
		return m.CreateSeasonFunc(s)
	}
	return nil
}

func (m *MockStore) GetActiveSeason(now time.Time) (*Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveSeasonFunc != nil {
		return m.GetActiveSeasonFunc(now)
	}
	return nil, ErrNoActiveSeason
}

func (m *MockStore) GetOrCreateProgress(seasonID, userID string) (*Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetOrCreateProgressFunc != nil {
		return m.GetOrCreateProgressFunc(seasonID, userID)
	}
	return &Progress{SeasonID: seasonID, UserID: userID}, nil
}

func (m *MockStore) AddXP(seasonID, userID string, amount int64) (*Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddXPCalls = append(m.AddXPCalls, struct {
		UserID string
		Amount int64
	}{UserID: userID, Amount: amount})
	if m.AddXPFunc != nil {
		return m.AddXPFunc(seasonID, userID, amount)
	}
	return &Progress{SeasonID: seasonID, UserID: userID, SeasonXP: amount}, nil
}

func (m *MockStore) SetPremium(seasonID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetPremiumFunc != nil {
		return m.SetPremiumFunc(seasonID, userID)
	}
	return nil
}

func (m *MockStore) GetClaims(seasonID, userID string) (map[int]bool, map[int]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetClaimsFunc != nil {
		return m.GetClaimsFunc(seasonID, userID)
	}
	return map[int]bool{}, map[int]bool{}, nil
}

func (m *MockStore) RecordClaim(seasonID, userID string, tierNumber int, track Track, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordClaimCalls = append(m.RecordClaimCalls, struct {
		UserID     string
		TierNumber int
		Track      Track
	}{UserID: userID, TierNumber: tierNumber, Track: track})
	if m.RecordClaimFunc != nil {
		return m.RecordClaimFunc(seasonID, userID, tierNumber, track, now)
	}
	return true, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
