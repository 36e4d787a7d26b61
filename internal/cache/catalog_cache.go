// Package cache holds the provider team catalog shared by all requests.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/models"
)

const (
	snapshotKey = "catalog:snapshot"
	freshKey    = "catalog:fresh"
	refreshKey  = "catalog:refresh"
)

// CatalogSource fetches the full team catalog from the provider
type CatalogSource interface {
	ListTierOneTeams(ctx context.Context) ([]models.CatalogTeam, error)
}

// SnapshotStore is an optional second tier shared between processes.
// Load returns nil, nil when nothing is stored.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.CatalogSnapshot, error)
	Save(ctx context.Context, snapshot models.CatalogSnapshot, ttl time.Duration) error
}

// CatalogCacheConfig configures a CatalogCache
type CatalogCacheConfig struct {
	Provider       string
	TTL            time.Duration
	RefreshTimeout time.Duration
}

// CatalogCache serves the provider catalog with stale-while-revalidate
// semantics. At most one refresh runs at a time.
type CatalogCache struct {
	source         CatalogSource
	store          SnapshotStore
	provider       string
	ttl            time.Duration
	refreshTimeout time.Duration
	items          *gocache.Cache
	group          singleflight.Group
	logger         *logger.ProviderLogger
	now            func() time.Time
}

// NewCatalogCache creates a catalog cache. store may be nil.
func NewCatalogCache(source CatalogSource, store SnapshotStore, cfg CatalogCacheConfig, log *logrus.Logger) *CatalogCache {
	if cfg.TTL <= 0 {
		cfg.TTL = 6 * time.Hour
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 2 * time.Minute
	}
	if cfg.Provider == "" {
		cfg.Provider = string(models.ProviderFootballData)
	}
	if log == nil {
		log = logrus.New()
	}

	return &CatalogCache{
		source:         source,
		store:          store,
		provider:       cfg.Provider,
		ttl:            cfg.TTL,
		refreshTimeout: cfg.RefreshTimeout,
		// entries carry their own expiry; no janitor needed
		items:  gocache.New(gocache.NoExpiration, 0),
		logger: logger.NewProviderLogger(log),
		now:    time.Now,
	}
}

// Teams returns the catalog. A fresh snapshot is returned as is; a stale one
// is returned immediately while a background refresh runs. Without any
// snapshot the caller waits for the in-flight refresh. The error is non-nil
// only when there is no snapshot and the refresh failed or ctx ended.
func (c *CatalogCache) Teams(ctx context.Context) ([]models.CatalogTeam, error) {
	if snap, ok := c.Snapshot(); ok {
		if !c.IsFresh() {
			c.refreshAsync()
		}
		return snap.Teams, nil
	}
	return c.refreshAndWait(ctx)
}

// Warm refreshes the catalog now, whatever its freshness, and waits for it
func (c *CatalogCache) Warm(ctx context.Context) error {
	_, err := c.refreshAndWait(ctx)
	return err
}

// Snapshot returns the current snapshot, fresh or stale
func (c *CatalogCache) Snapshot() (models.CatalogSnapshot, bool) {
	v, ok := c.items.Get(snapshotKey)
	if !ok {
		return models.CatalogSnapshot{}, false
	}
	return v.(models.CatalogSnapshot), true
}

// IsFresh reports whether the snapshot is younger than the TTL
func (c *CatalogCache) IsFresh() bool {
	_, ok := c.items.Get(freshKey)
	return ok
}

// Invalidate marks the snapshot stale without dropping it
func (c *CatalogCache) Invalidate() {
	c.items.Delete(freshKey)
}

func (c *CatalogCache) refreshAsync() {
	// the result channel is buffered, so dropping it does not leak the goroutine
	_ = c.group.DoChan(refreshKey, c.doRefresh)
}

func (c *CatalogCache) refreshAndWait(ctx context.Context) ([]models.CatalogTeam, error) {
	ch := c.group.DoChan(refreshKey, c.doRefresh)
	select {
	case <-ctx.Done():
		return []models.CatalogTeam{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return []models.CatalogTeam{}, res.Err
		}
		return res.Val.([]models.CatalogTeam), nil
	}
}

// doRefresh runs detached from any caller so that one caller's cancellation
// does not abort a refresh other callers are waiting on.
func (c *CatalogCache) doRefresh() (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()
	start := time.Now()

	if c.store != nil {
		snap, err := c.store.Load(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("Shared catalog store unavailable")
		} else if snap != nil && len(snap.Teams) > 0 && snap.Age(c.now()) < c.ttl {
			c.install(*snap)
			metrics.RecordCatalogRefresh("shared", len(snap.Teams))
			c.logger.LogCatalogRefresh(c.provider, len(snap.Teams), msSince(start), "shared", nil)
			return snap.Teams, nil
		}
	}

	teams, err := c.source.ListTierOneTeams(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh("error", 0)
		c.logger.LogCatalogRefresh(c.provider, 0, msSince(start), "provider", err)
		return nil, fmt.Errorf("catalog refresh: %w", err)
	}
	if len(teams) == 0 {
		metrics.RecordCatalogRefresh("empty", 0)
		c.logger.LogCatalogRefresh(c.provider, 0, msSince(start), "provider", nil)
		return []models.CatalogTeam{}, nil
	}

	snap := models.CatalogSnapshot{Teams: teams, FetchedAt: c.now()}
	c.install(snap)
	if c.store != nil {
		if err := c.store.Save(ctx, snap, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Failed to share catalog snapshot")
		}
	}

	metrics.RecordCatalogRefresh("success", len(teams))
	c.logger.LogCatalogRefresh(c.provider, len(teams), msSince(start), "provider", nil)
	return teams, nil
}

func (c *CatalogCache) install(snap models.CatalogSnapshot) {
	c.items.Set(snapshotKey, snap, gocache.NoExpiration)
	if remaining := c.ttl - snap.Age(c.now()); remaining > 0 {
		c.items.Set(freshKey, true, remaining)
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
