package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PanelLifetime is how long a help panel accepts clicks. Use does not
// extend it: the clock runs from creation.
const PanelLifetime = 180 * time.Second

// Panel is a paged, owner-bound component session. Clicks flip pages but
// never resolve it; only the timer ends it, by expiring.
type Panel struct {
	ID      string
	OwnerID string

	mu    sync.Mutex
	state State
	page  int
	pages int
	timer *time.Timer

	onExpire func(*Panel)
}

// NewPanel starts a panel session for ownerID with pages pages. onExpire
// runs once from the timer goroutine when the lifetime lapses; it is where
// the caller disables the rendered controls and drops the session.
func NewPanel(ownerID string, pages int, onExpire func(*Panel)) *Panel {
	p := &Panel{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		pages:    pages,
		onExpire: onExpire,
	}
	p.timer = time.AfterFunc(PanelLifetime, p.expire)
	return p
}

// Click moves the panel to page for userID and returns the page to render.
// Non-owners get ErrNotOwner, ended panels ErrSessionEnded; neither flips
// the page. A click does not reset the lifetime.
func (p *Panel) Click(userID string, page int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Active {
		return 0, ErrSessionEnded
	}
	if userID != p.OwnerID {
		return 0, ErrNotOwner
	}
	if page < 0 {
		page = 0
	}
	if page >= p.pages {
		page = p.pages - 1
	}
	p.page = page
	return p.page, nil
}

// Page returns the current page index.
func (p *Panel) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Pages returns the page count.
func (p *Panel) Pages() int { return p.pages }

// State returns the current lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stop expires the panel early without running onExpire. Used on shutdown.
func (p *Panel) Stop() {
	p.mu.Lock()
	if p.state == Active {
		p.state = Expired
		p.timer.Stop()
	}
	p.mu.Unlock()
}

func (p *Panel) expire() {
	p.mu.Lock()
	if p.state != Active {
		p.mu.Unlock()
		return
	}
	p.state = Expired
	p.mu.Unlock()
	if p.onExpire != nil {
		p.onExpire(p)
	}
}
