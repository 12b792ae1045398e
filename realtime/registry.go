package realtime

import (
	"sync"

	"github.com/RaminJll/ChatApp/contract"
)

// SessionRegistry tracks which connections belong to which identity. One
// identity may hold several connections at once (multiple tabs or devices).
type SessionRegistry struct {
	mu         sync.RWMutex
	byIdentity map[string]map[string]contract.Subscriber // identity -> conn id -> conn
	identities map[string]string                         // conn id -> identity
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byIdentity: make(map[string]map[string]contract.Subscriber),
		identities: make(map[string]string),
	}
}

// Register associates the connection with its identity. Registering the
// same connection twice leaves state unchanged.
func (r *SessionRegistry) Register(s contract.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byIdentity[s.Identity()]; !ok {
		r.byIdentity[s.Identity()] = make(map[string]contract.Subscriber)
	}
	r.byIdentity[s.Identity()][s.ID()] = s
	r.identities[s.ID()] = s.Identity()
}

// Remove detaches the connection from whatever identity it belonged to.
// No-op for unknown connections. Empty identity entries are removed so the
// registry does not grow with churn.
func (r *SessionRegistry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.identities[connID]
	if !ok {
		return
	}
	delete(r.identities, connID)

	if conns, ok := r.byIdentity[identity]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(r.byIdentity, identity)
		}
	}
}

// ConnectionsFor returns a snapshot of the identity's live connections,
// possibly empty.
func (r *SessionRegistry) ConnectionsFor(identity string) []contract.Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns, ok := r.byIdentity[identity]
	if !ok {
		return nil
	}
	snapshot := make([]contract.Subscriber, 0, len(conns))
	for _, c := range conns {
		snapshot = append(snapshot, c)
	}
	return snapshot
}
