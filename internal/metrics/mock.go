package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	leagueJoins          int
	leaguesCreated       int
	scoreEvents          int
	rolloverRuns         int
	leaguesClosed        int
	promotions           int
	demotions            int
	seasonClaims         int
	claimRejections      int
	rewardDispatchFailed int
	rolloverDurations    []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rolloverDurations: make([]float64, 0),
	}
}

func (m *Mock) IncLeagueJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leagueJoins++
}

func (m *Mock) IncLeaguesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaguesCreated++
}

func (m *Mock) IncScoreEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreEvents++
}

func (m *Mock) IncRolloverRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolloverRuns++
}

func (m *Mock) IncLeaguesClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaguesClosed++
}

func (m *Mock) AddPromotions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promotions += n
}

func (m *Mock) AddDemotions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.demotions += n
}

func (m *Mock) IncSeasonClaims() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seasonClaims++
}

func (m *Mock) IncClaimRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimRejections++
}

func (m *Mock) IncRewardDispatchFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rewardDispatchFailed++
}

func (m *Mock) ObserveRolloverDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolloverDurations = append(m.rolloverDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// LeagueJoins returns the number of times IncLeagueJoins was called.
func (m *Mock) LeagueJoins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leagueJoins
}

// RolloverRuns returns the number of times IncRolloverRuns was called.
func (m *Mock) RolloverRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rolloverRuns
}

// LeaguesClosed returns the number of times IncLeaguesClosed was called.
func (m *Mock) LeaguesClosed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaguesClosed
}

// Promotions returns the total promotions recorded.
func (m *Mock) Promotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.promotions
}

// Demotions returns the total demotions recorded.
func (m *Mock) Demotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.demotions
}

// SeasonClaims returns the number of times IncSeasonClaims was called.
func (m *Mock) SeasonClaims() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seasonClaims
}

// ClaimRejections returns the number of times IncClaimRejections was called.
func (m *Mock) ClaimRejections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claimRejections
}

// RewardDispatchFailed returns the number of failed dispatches recorded.
func (m *Mock) RewardDispatchFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rewardDispatchFailed
}
