package realtime

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ID accepts a user id sent either as a JSON string or a number
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// inbound is a frame received from a client
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Conn is one WebSocket client. send, closed and rooms are guarded by the
// hub's lock.
type Conn struct {
	id        string
	hub       *Hub
	ws        *websocket.Conn
	send      chan []byte
	principal *models.Principal
	closed    bool
	rooms     map[string]struct{}
}

// enqueue must be called with the hub lock held
func (c *Conn) enqueue(msg []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		utils.LogDebug("Send buffer full on connection %s, event dropped", c.id)
		return false
	}
}

func (c *Conn) reply(event string, payload interface{}) {
	msg, err := encode(event, payload)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	c.enqueue(msg)
	c.hub.mu.RUnlock()
}

func (c *Conn) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.LogDebug("Connection %s read error: %v", c.id, err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply("error", H{"message": "Malformed message"})
			continue
		}

		switch msg.Event {
		case "join", "joinRoom":
			var req JoinRequest
			if len(msg.Data) > 0 {
				if err := json.Unmarshal(msg.Data, &req); err != nil {
					c.reply("error", H{"message": "Malformed join request"})
					continue
				}
			}
			room, err := c.hub.Join(c, req)
			if err != nil {
				c.reply("error", H{"message": errorMessage(err)})
				continue
			}
			c.reply("joined", H{"room": room})
		case "ping":
			c.reply("pong", nil)
		default:
			utils.LogDebug("Connection %s sent unknown event %q", c.id, msg.Event)
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// H is a small reply payload
type H map[string]interface{}

func errorMessage(err error) string {
	if appErr := utils.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
