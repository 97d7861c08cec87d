package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// Handler streams hub events as text/event-stream.
//
// Query parameters:
//   - types: comma separated event types to receive
//   - battle_id: only events of this battle
func Handler(hub *Hub) http.HandlerFunc {
	return handler(hub, KeepaliveInterval)
}

func handler(hub *Hub, keepalive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseFilter(r)
		if !ok {
			http.Error(w, ErrMsgInvalidBattleID, http.StatusBadRequest)
			return
		}

		rc := http.NewResponseController(w)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		log := logger.FromContext(r.Context())
		client := hub.Register(filter)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"battle_id", filter.BattleID,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		send := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			if err := rc.Flush(); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return true
		}

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID},
		}
		if filter.BattleID != uuid.Nil {
			connected.BattleID = filter.BattleID.String()
		}
		if !send(connected) {
			return
		}

		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if !send(event) {
					return
				}

			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func parseFilter(r *http.Request) (Filter, bool) {
	var f Filter
	q := r.URL.Query()

	if raw := q.Get(QueryTypes); raw != "" {
		f.Types = make(map[string]bool)
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Types[t] = true
			}
		}
	}

	if raw := q.Get(QueryBattleID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, false
		}
		f.BattleID = id
	}
	return f, true
}
