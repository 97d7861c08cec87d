package sse

import "github.com/google/uuid"

// Event is one message on the stream. BattleID is empty for events not
// tied to a battle.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	BattleID  string      `json:"battle_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Filter narrows what a client receives. Zero values match everything.
type Filter struct {
	Types    map[string]bool
	BattleID uuid.UUID
}

func (f Filter) matches(e Event) bool {
	if f.Types != nil && !f.Types[e.Type] {
		return false
	}
	if f.BattleID != uuid.Nil && e.BattleID != f.BattleID.String() {
		return false
	}
	return true
}
