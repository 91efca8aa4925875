// Package cache keeps the last known full tribute set on the device. It is
// the fallback source of truth when the remote store is unreachable and
// the immediate view after any local mutation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmuchiri/tributewall/internal/client/repositories/slots"
	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/models"
)

// SlotKey is the durable slot holding the cached tribute set.
const SlotKey = "tributes_v1"

type Cache struct {
	slots  slots.Repository
	logger logging.Logger
}

func New(repo slots.Repository, logger logging.Logger) *Cache {
	return &Cache{slots: repo, logger: logger}
}

// Load returns the cached tribute set. It fails soft: a missing or
// malformed slot yields an empty set, never an error.
func (c *Cache) Load(ctx context.Context) []models.Tribute {
	raw, err := c.slots.Get(ctx, SlotKey)
	if err != nil {
		c.logger.Warn(ctx, "tribute cache unreadable", "error", err)
		return []models.Tribute{}
	}
	if len(raw) == 0 {
		return []models.Tribute{}
	}

	var tributes []models.Tribute
	if err := json.Unmarshal(raw, &tributes); err != nil {
		c.logger.Warn(ctx, "tribute cache malformed, discarding", "error", err)
		return []models.Tribute{}
	}
	if tributes == nil {
		return []models.Tribute{}
	}
	return tributes
}

// Save replaces the cached set wholesale. Last writer wins; there is no merge.
func (c *Cache) Save(ctx context.Context, tributes []models.Tribute) error {
	raw, err := json.Marshal(tributes)
	if err != nil {
		return fmt.Errorf("failed to encode tributes: %w", err)
	}
	if err := c.slots.Set(ctx, SlotKey, raw); err != nil {
		return fmt.Errorf("failed to save tributes: %w", err)
	}
	return nil
}

// Clear erases the cached set.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.slots.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("failed to clear tribute cache: %w", err)
	}
	return nil
}
