package sse

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// stream writes framed events to one response
type stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	log     *slog.Logger
}

// send reports false once the client is gone
func (s stream) send(evt Event) bool {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		s.log.Error(LogMsgWriteError, "event_type", evt.Type, "error", err)
		return true
	}
	if _, err := s.w.Write(msg); err != nil {
		s.log.Debug(LogMsgWriteError, "error", err)
		return false
	}
	s.flusher.Flush()
	return true
}

func parseTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Handler serves /events. ?types=a,b limits the stream to those event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")

		types := parseTypes(r.URL.Query().Get("types"))
		client := hub.Register(types)
		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "filters", types, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "total_clients", hub.ClientCount())
		}()

		out := stream{w: w, flusher: flusher, log: log}
		hello := Event{
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Filters: types},
		}
		if out.send(hello) {
			pump(r.Context(), client, out)
		}
	}
}

// pump relays hub events and keepalives until the request ends or the hub stops
func pump(ctx context.Context, client *Client, out stream) {
	keepalive := time.NewTicker(KeepaliveInterval)
	defer keepalive.Stop()

	for {
		var evt Event
		select {
		case <-ctx.Done():
			return
		case e, open := <-client.Events:
			if !open {
				return
			}
			evt = e
		case <-keepalive.C:
			evt = Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}
		}
		if !out.send(evt) {
			return
		}
	}
}
