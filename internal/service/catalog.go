package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"smoothies/internal/model"
)

type CatalogLoader interface {
	Load(ctx context.Context) (*model.Catalog, error)
}

type CatalogService struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCatalogService(db *sql.DB, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, logger: logger}
}

// Load reads the whole reference table. Failures are reported as
// ErrDataSourceUnavailable and are not retried.
func (s *CatalogService) Load(ctx context.Context) (*model.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fruit_name, search_on
		FROM fruit_options
		ORDER BY fruit_name
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query fruit options: %v", ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	var options []model.FruitOption
	for rows.Next() {
		var name, searchOn sql.NullString
		if err := rows.Scan(&name, &searchOn); err != nil {
			return nil, fmt.Errorf("%w: scan fruit option: %v", ErrDataSourceUnavailable, err)
		}
		options = append(options, model.FruitOption{Name: name.String, SearchKey: searchOn.String})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration failed: %v", ErrDataSourceUnavailable, err)
	}

	catalog, skipped := model.NewCatalog(options)
	for _, opt := range skipped {
		s.logger.Warn("skipping fruit option", zap.String("name", opt.Name), zap.String("search_on", opt.SearchKey))
	}
	s.logger.Debug("fruit options loaded", zap.Int("count", catalog.Len()))

	return catalog, nil
}

const catalogLoadTimeout = 30 * time.Second

// CatalogCache keeps one loaded catalog for ttl. The reference table is never
// written by this service, so entries only go stale by age.
type CatalogCache struct {
	loader CatalogLoader
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	catalog  *model.Catalog
	loadedAt time.Time
}

// NewCatalogCache wraps loader. A ttl of zero disables caching and every
// call goes to the loader.
func NewCatalogCache(loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{loader: loader, ttl: ttl, now: time.Now}
}

func (c *CatalogCache) Load(ctx context.Context) (*model.Catalog, error) {
	if c.ttl <= 0 {
		return c.loader.Load(ctx)
	}

	if catalog, ok := c.fresh(); ok {
		return catalog, nil
	}

	// The shared load outlives the caller that started it; each caller
	// stops waiting when its own ctx is done.
	ch := c.group.DoChan("catalog", func() (interface{}, error) {
		if catalog, ok := c.fresh(); ok {
			return catalog, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		catalog, err := c.loader.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.catalog = catalog
		c.loadedAt = c.now()
		c.mu.Unlock()
		return catalog, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Catalog), nil
	}
}

func (c *CatalogCache) fresh() (*model.Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.catalog == nil || c.now().Sub(c.loadedAt) >= c.ttl {
		return nil, false
	}
	return c.catalog, true
}
