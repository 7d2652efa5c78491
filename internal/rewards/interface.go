package rewards

// Dispatcher applies a reward to a user's inventory or balances. The
// consumer side is external to this engine; implementations only have to
// guarantee the dispatch is durably handed off.
type Dispatcher interface {
	Dispatch(userID, source string, reward Descriptor) error
}
