package rewards

import "sync"

// MockDispatcher is a mock implementation of the Dispatcher interface for
// testing. It is safe for concurrent use.
type MockDispatcher struct {
	mu sync.Mutex

	DispatchFunc func(userID, source string, reward Descriptor) error

	// Call records
	DispatchCalls []DispatchCall
}

// DispatchCall holds the arguments for a call to Dispatch.
type DispatchCall struct {
	UserID string
	Source string
	Reward Descriptor
}

// NewMock creates a new mock instance.
func NewMock() *MockDispatcher {
	return &MockDispatcher{}
}

// Reset clears all call records.
func (m *MockDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DispatchCalls = nil
}

func (m *MockDispatcher) Dispatch(userID, source string, reward Descriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DispatchCalls = append(m.DispatchCalls, DispatchCall{UserID: userID, Source: source, Reward: reward})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(userID, source, reward)
	}
	return nil
}

// Calls returns a copy of the recorded dispatches.
func (m *MockDispatcher) Calls() []DispatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DispatchCall, len(m.DispatchCalls))
	copy(out, m.DispatchCalls)
	return out
}
