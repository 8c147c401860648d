package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelClickFlipsPagesForOwner(t *testing.T) {
	p := NewPanel("owner", 4, nil)
	defer p.Stop()

	assert.Equal(t, 0, p.Page())

	page, err := p.Click("owner", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 2, p.Page())
}

func TestPanelClampsPageRange(t *testing.T) {
	p := NewPanel("owner", 3, nil)
	defer p.Stop()

	page, err := p.Click("owner", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, page)

	page, err = p.Click("owner", 99)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
}

func TestPanelRejectsNonOwner(t *testing.T) {
	p := NewPanel("owner", 3, nil)
	defer p.Stop()

	p.Click("owner", 1)
	_, err := p.Click("intruder", 2)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, 1, p.Page(), "a rejected click must not flip the page")
}

func TestPanelEndedRejectsAllClicks(t *testing.T) {
	p := NewPanel("owner", 3, nil)
	p.Stop()

	assert.Equal(t, Expired, p.State())
	_, err := p.Click("owner", 1)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestPanelStopSkipsOnExpire(t *testing.T) {
	expired := make(chan struct{}, 1)
	p := NewPanel("owner", 3, func(*Panel) { expired <- struct{}{} })

	p.Stop()
	select {
	case <-expired:
		t.Fatal("Stop must not run onExpire")
	default:
	}

	// Stopping twice is harmless.
	p.Stop()
	assert.Equal(t, Expired, p.State())
}

func TestPanelIDsAreUnique(t *testing.T) {
	a := NewPanel("owner", 2, nil)
	b := NewPanel("owner", 2, nil)
	defer a.Stop()
	defer b.Stop()
	assert.NotEqual(t, a.ID, b.ID)
}
