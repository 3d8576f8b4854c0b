package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/services"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

// WSHandler is the live transport for the demo UI: the client streams
// transcript texts and gets one result frame back per entry.
type WSHandler struct {
	entries  services.EntryService
	upgrader websocket.Upgrader
}

func NewWSHandler(entries services.EntryService) *WSHandler {
	return &WSHandler{
		entries: entries,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // transcript|ping
	Text string `json:"text"`
}

type wsResultMsg struct {
	Type string `json:"type"`
	*services.ProcessResult
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) EntriesWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
			continue
		}

		switch msg.Type {
		case "transcript":
			res, perr := h.entries.Process(ctx, userID, msg.Text)
			if perr != nil {
				code := utils.CodeInternal
				var ae *utils.AppError
				if errors.As(perr, &ae) {
					code = ae.Code
				}
				b, _ := json.Marshal(gin.H{"type": "error", "code": code, "message": "failed to process entry"})
				_ = wc.writeText(b)
				continue
			}
			_ = wc.writeJSON(wsResultMsg{Type: "result", ProcessResult: res})

		case "ping":
			_ = wc.writeText([]byte(`{"type":"pong"}`))

		default:
			_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
		}
	}
}
