// Package realtime pushes order, delivery and payment events to connected
// WebSocket clients grouped in rooms.
package realtime

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Options configures a Hub
type Options struct {
	// TrustClientJoin lets an unauthenticated connection join any room by
	// naming a user id and role.
	TrustClientJoin bool
	SendBuffer      int
	AllowedOrigins  []string
}

// Envelope is the frame sent to clients
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub owns every live connection, the rooms they joined and the presence
// registry.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]*Conn
	rooms    map[string]map[string]*Conn
	presence *Presence

	trustClientJoin bool
	sendBuffer      int
	upgrader        websocket.Upgrader
}

func NewHub(presence *Presence, opts Options) *Hub {
	if presence == nil {
		presence = NewPresence()
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 16
	}
	h := &Hub{
		conns:           make(map[string]*Conn),
		rooms:           make(map[string]map[string]*Conn),
		presence:        presence,
		trustClientJoin: opts.TrustClientJoin,
		sendBuffer:      opts.SendBuffer,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Presence exposes the registry, mainly for tests and health reporting
func (h *Hub) Presence() *Presence {
	return h.presence
}

func encode(event string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Event: event, Data: payload})
}

// Publish sends event to every connection in room. It never blocks: a
// connection whose buffer is full misses the event.
func (h *Hub) Publish(room, event string, payload interface{}) {
	msg, err := encode(event, payload)
	if err != nil {
		utils.LogError("Failed to encode %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, c := range h.rooms[room] {
		if c.enqueue(msg) {
			delivered++
		}
	}
	utils.LogDebug("Event %s to room %s reached %d connections", event, room, delivered)
}

// SendToUser sends event to the user's current connection, if any
func (h *Hub) SendToUser(userID, event string, payload interface{}) bool {
	connID, ok := h.presence.Lookup(userID)
	if !ok {
		return false
	}
	msg, err := encode(event, payload)
	if err != nil {
		utils.LogError("Failed to encode %s event: %v", event, err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[connID]
	if !ok {
		return false
	}
	return c.enqueue(msg)
}

// JoinRequest is the body of a client's join message
type JoinRequest struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

// Join subscribes c to the room of the identity it presents. An
// authenticated connection always joins as its token's principal.
func (h *Hub) Join(c *Conn, req JoinRequest) (string, error) {
	userID, role := string(req.UserID), req.Role

	if c.principal != nil {
		ownID := strconv.FormatUint(uint64(c.principal.ID), 10)
		if (userID != "" && userID != ownID) || (role != "" && role != c.principal.Role) {
			return "", utils.ForbiddenError("Join does not match the authenticated user")
		}
		userID, role = ownID, c.principal.Role
	} else {
		if !h.trustClientJoin {
			return "", utils.UnauthorizedError("Authorization token required", nil)
		}
		if userID == "" || !models.ValidRole(role) {
			return "", utils.InvalidInputError("userId and a valid role are required")
		}
	}

	room := models.RoomFor(role, userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return "", utils.UnavailableError("Connection closed")
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Conn)
		h.rooms[room] = members
	}
	members[c.id] = c
	c.rooms[room] = struct{}{}
	h.presence.Set(userID, c.id)

	utils.LogInfo("Connection %s joined room %s", c.id, room)
	return room, nil
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

// unregister removes c from every room and the presence registry and closes
// its send queue. It is safe to call more than once.
func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)

	delete(h.conns, c.id)
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c.id)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	users := h.presence.RemoveConn(c.id)
	utils.LogInfo("Connection %s closed, %d presence mappings removed", c.id, len(users))
}

// ConnCount returns the number of open connections
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// RoomSize returns the number of connections in room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ServeWS upgrades the request and runs the connection until it closes.
// principal is nil for a connection that presented no token.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, principal *models.Principal) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Conn{
		id:        uuid.New().String(),
		hub:       h,
		ws:        ws,
		send:      make(chan []byte, h.sendBuffer),
		principal: principal,
		rooms:     make(map[string]struct{}),
	}
	h.register(c)
	utils.LogInfo("Connection %s opened from %s", c.id, r.RemoteAddr)

	go c.writePump()
	go c.readPump()
	return nil
}
