package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	deckgen "github.com/alnah/go-deckgen"
)

// WebSocket timing.
const (
	requestWait = 30 * time.Second
	writeWait   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Event types sent over /ws/generate.
const (
	EventSlide = "slide"
	EventDone  = "done"
	EventError = "error"
)

// Event is one message sent to a WebSocket client.
type Event struct {
	Type   string                `json:"type"`
	Slide  *deckgen.SlideOutcome `json:"slide,omitempty"`
	Result *GenerateResponse     `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// generateWS reads one GenerateRequest, streams a slide event per composed
// slide, then a done or error event, and closes.
func (s *Server) generateWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := func(ev Event) {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
		}
	}

	conn.SetReadDeadline(time.Now().Add(requestWait))
	var req GenerateRequest
	if err := conn.ReadJSON(&req); err != nil {
		send(Event{Type: EventError, Error: fmt.Sprintf("%v: %v", ErrInvalidRequest, err)})
		closeNormal(conn)
		return
	}

	resp, err := s.render(c.Request.Context(), req, func(o deckgen.SlideOutcome) {
		send(Event{Type: EventSlide, Slide: &o})
	})
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			s.logger.Error("websocket render failed", "error", err)
		}
		send(Event{Type: EventError, Error: err.Error()})
		closeNormal(conn)
		return
	}
	send(Event{Type: EventDone, Result: resp})
	closeNormal(conn)
}

func closeNormal(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
