package realtime

import "sync"

// Presence maps a user to the connection that last joined for them
type Presence struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewPresence() *Presence {
	return &Presence{byUser: make(map[string]string)}
}

// Set records connID as the user's current connection
func (p *Presence) Set(userID, connID string) {
	p.mu.Lock()
	p.byUser[userID] = connID
	p.mu.Unlock()
}

// Lookup returns the user's current connection
func (p *Presence) Lookup(userID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	connID, ok := p.byUser[userID]
	return connID, ok
}

// RemoveConn drops every mapping that still points at connID and returns
// the users it belonged to. A user who reconnected keeps the newer mapping.
func (p *Presence) RemoveConn(connID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var removed []string
	for userID, id := range p.byUser {
		if id == connID {
			delete(p.byUser, userID)
			removed = append(removed, userID)
		}
	}
	return removed
}

// Len returns the number of users online
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byUser)
}
