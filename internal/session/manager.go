package session

import "sync"

// Manager indexes live sessions: panels by session ID (component custom IDs
// carry it) and races by the message they were asked on.
type Manager struct {
	mu        sync.Mutex
	panels    map[string]*Panel
	panelMsgs map[string]boundMessage
	races     map[string]*Race
}

type boundMessage struct {
	channelID string
	messageID string
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		panels:    make(map[string]*Panel),
		panelMsgs: make(map[string]boundMessage),
		races:     make(map[string]*Race),
	}
}

// TrackPanel registers a live panel.
func (m *Manager) TrackPanel(p *Panel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panels[p.ID] = p
}

// Panel looks up a panel by session ID.
func (m *Manager) Panel(id string) (*Panel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.panels[id]
	return p, ok
}

// SetPanelMessage binds a panel to the message rendering it, once the
// message exists.
func (m *Manager) SetPanelMessage(id, channelID, messageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panelMsgs[id] = boundMessage{channelID: channelID, messageID: messageID}
}

// PanelMessage returns the message a panel is bound to.
func (m *Manager) PanelMessage(id string) (channelID, messageID string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bm, ok := m.panelMsgs[id]
	return bm.channelID, bm.messageID, ok
}

// DropPanel forgets a panel. Late interaction lookups then miss, which the
// caller treats the same as an ended session.
func (m *Manager) DropPanel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.panels, id)
	delete(m.panelMsgs, id)
}

// TrackRace registers a live race under its message ID.
func (m *Manager) TrackRace(r *Race) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.races[r.MessageID] = r
}

// RaceFor looks up the race riding on messageID.
func (m *Manager) RaceFor(messageID string) (*Race, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.races[messageID]
	return r, ok
}

// DropRace forgets a settled race.
func (m *Manager) DropRace(messageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.races, messageID)
}

// OfferAll routes a reaction token to the race on messageID, if any.
func (m *Manager) OfferAll(messageID, userID, token string) {
	if r, ok := m.RaceFor(messageID); ok {
		r.Offer(userID, token)
	}
}

// Shutdown stops every live panel and clears the indexes.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.panels {
		p.Stop()
		delete(m.panels, id)
	}
	for id := range m.races {
		delete(m.races, id)
	}
}
