package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often idle streams get a keepalive ping
const KeepaliveInterval = 30 * time.Second

// Event types for SSE
const (
	EventTypeBattleCreated  = "battle.created"
	EventTypeBattleJoined   = "battle.joined"
	EventTypeBattleFinished = "battle.finished"
	EventTypeConnected      = "connected"
	EventTypeKeepalive      = "keepalive"
)

// Query parameters
const (
	QueryTypes    = "types"
	QueryBattleID = "battle_id"
)

// Log messages
const (
	LogMsgClientConnected     = "SSE client connected"
	LogMsgClientDisconnected  = "SSE client disconnected"
	LogMsgEventBroadcast      = "Broadcasting SSE event"
	LogMsgEventDropped        = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError          = "Failed to write SSE event"
	LogMsgInvalidPayload      = "Invalid battle event payload"
	LogMsgSubscriberReady     = "SSE subscriber registered for event types"
	ErrMsgStreamingNotSupport = "streaming not supported"
	ErrMsgInvalidBattleID     = "invalid battle_id"
)
