package service

import (
	"sync"
	"time"

	"github.com/nexjob/nexjob-api/internal/models"
)

// SettingsCache is the process-wide settings snapshot. The snapshot is
// replaced wholesale under the lock, never mutated in place, so readers
// always see a complete record. Constructed explicitly so tests can run
// independent instances.
type SettingsCache struct {
	mu    sync.RWMutex
	entry *settingsCacheEntry
	ttl   time.Duration
	now   func() time.Time
}

type settingsCacheEntry struct {
	data      *models.SiteSettings
	fetchedAt time.Time
}

// NewSettingsCache builds a cache with the given time-to-live.
func NewSettingsCache(ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &SettingsCache{ttl: ttl, now: time.Now}
}

// Get returns the snapshot when it is younger than the TTL.
func (c *SettingsCache) Get() (*models.SiteSettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().Sub(c.entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.entry.data, true
}

// GetStale returns the snapshot regardless of age. Used as a last resort
// before falling back to hardcoded defaults.
func (c *SettingsCache) GetStale() (*models.SiteSettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false
	}
	return c.entry.data, true
}

// Set replaces the snapshot.
func (c *SettingsCache) Set(settings *models.SiteSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &settingsCacheEntry{data: settings, fetchedAt: c.now()}
}

// Clear drops the snapshot, forcing the next read to fetch fresh data.
func (c *SettingsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
