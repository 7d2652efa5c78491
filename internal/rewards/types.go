package rewards

// Type classifies what a reward grants.
type Type string

const (
	TypeXP       Type = "xp"
	TypeItem     Type = "item"
	TypeCosmetic Type = "cosmetic"
	TypeTitle    Type = "title"
)

// Descriptor describes a single reward to apply to a user's balance or
// inventory. XP rewards carry an Amount; item/cosmetic/title rewards carry a
// Code.
type Descriptor struct {
	Type   Type   `json:"type" msgpack:"type"`
	Code   string `json:"code,omitempty" msgpack:"code"`
	Amount int64  `json:"amount,omitempty" msgpack:"amount"`
}

// Dispatch is the message handed to the downstream inventory/balance
// consumer. Delivery is at-least-once; DedupeKey makes item grants safe to
// replay.
type Dispatch struct {
	UserID    string     `msgpack:"user_id"`
	Source    string     `msgpack:"source"`
	Reward    Descriptor `msgpack:"reward"`
	DedupeKey string     `msgpack:"dedupe_key"`
}
