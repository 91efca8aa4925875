// Package identity issues the durable anonymous token that ties tributes
// to the device that submitted them. There are no accounts; the token is
// the whole identity.
package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmuchiri/tributewall/internal/client/repositories/slots"
	"github.com/dmuchiri/tributewall/internal/logging"
)

// SlotKey is the durable slot holding the device identity token.
const SlotKey = "user_uuid"

// Provider hands out the device identity token, creating and persisting
// it on first use. Token never fails: when the slot store is unusable the
// provider silently degrades to a token that lives for the process only.
type Provider struct {
	slots  slots.Repository
	logger logging.Logger

	mu    sync.Mutex
	token string
}

func NewProvider(repo slots.Repository, logger logging.Logger) *Provider {
	return &Provider{slots: repo, logger: logger}
}

// Token returns the device identity token. The first call either reads the
// persisted value or generates and stores a fresh one; later calls return
// the same token unchanged.
func (p *Provider) Token(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" {
		return p.token
	}

	stored, err := p.slots.Get(ctx, SlotKey)
	if err != nil {
		p.logger.Warn(ctx, "identity slot unreadable, using session token", "error", err)
	}
	if len(stored) > 0 {
		p.token = string(stored)
		return p.token
	}

	p.token = uuid.NewString()

	if err := p.slots.Set(ctx, SlotKey, []byte(p.token)); err != nil {
		// degraded but functional: the token survives this session only
		p.logger.Warn(ctx, "identity slot unwritable, token is session-scoped", "error", err)
	}

	return p.token
}
