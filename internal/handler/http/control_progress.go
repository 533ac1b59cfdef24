package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

const progressWriteTimeout = 5 * time.Second

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the control API listens on a local address only
	CheckOrigin: func(*http.Request) bool { return true },
}

// streamProgress upgrades to a WebSocket and pushes every progress report
// of the layer as a JSON text message. The stream ends when the client
// goes away.
func (c *ControlHandler) streamProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	layerID := chi.URLParam(r, "layerID")

	updates, unsubscribe, err := c.client.Orchestrator.SubscribeProgress(layerID)
	if err != nil {
		writeError(w, r, "*ControlHandler.streamProgress", err)
		return
	}
	defer unsubscribe()

	conn, err := progressUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*ControlHandler.streamProgress").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// reader: detects the client closing the socket
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-updates:
			if !ok {
				// the layer was detached
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "layer detached")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(progressWriteTimeout))
				return
			}
			data, err := json.Marshal(p)
			if err != nil {
				log.Err(err).Str("func", "*ControlHandler.streamProgress").Msg("failed to encode progress")
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(progressWriteTimeout))
			if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("func", "*ControlHandler.streamProgress").Msg("progress stream closed")
				return
			}
		}
	}
}
