package realtime

import "sync"

// PresenceRegistry maps user identities to their live delivery channel. It is
// process-lifetime state: nothing here survives a restart, clients re-register
// on reconnect. One active channel per user, last registration wins.
type PresenceRegistry struct {
	mu        sync.Mutex
	byUser    map[string]string
	byChannel map[string]string
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		byUser:    make(map[string]string),
		byChannel: make(map[string]string),
	}
}

// Register binds userID to channelID, superseding any prior channel for the
// same user without requiring an explicit deregistration first.
func (p *PresenceRegistry) Register(userID, channelID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.byUser[userID]; ok {
		delete(p.byChannel, old)
	}
	if oldUser, ok := p.byChannel[channelID]; ok && oldUser != userID {
		delete(p.byUser, oldUser)
	}
	p.byUser[userID] = channelID
	p.byChannel[channelID] = userID
}

// Deregister removes the entry bound to channelID, if any. Lookup is by
// channel because the disconnect event only carries the channel identity.
func (p *PresenceRegistry) Deregister(channelID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	userID, ok := p.byChannel[channelID]
	if !ok {
		return
	}
	delete(p.byChannel, channelID)
	if p.byUser[userID] == channelID {
		delete(p.byUser, userID)
	}
}

// Resolve returns the channel currently bound to userID.
func (p *PresenceRegistry) Resolve(userID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	channelID, ok := p.byUser[userID]
	return channelID, ok
}
