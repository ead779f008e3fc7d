package service

import (
	"context"

	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/port/database"
)

// Health is the health-check report returned by GET /health.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthService reports service health. The database probe is cached for a
// short window so health checks cannot stampede the pool.
type HealthService struct {
	store  database.Store
	loader *cache.Loader
}

// NewHealthService creates a new HealthService.
func NewHealthService(store database.Store, loader *cache.Loader) *HealthService {
	return &HealthService{store: store, loader: loader}
}

// Check probes the database and reports overall status. A failed probe
// degrades the report rather than erroring, so load balancers always get a
// well-formed body.
func (s *HealthService) Check(ctx context.Context) Health {
	dbStatus, err := cache.Lookup(ctx, s.loader, cache.HealthDB, func(ctx context.Context) (string, error) {
		if err := s.store.Ping(ctx); err != nil {
			return "", err
		}
		return "up", nil
	})
	if err != nil || dbStatus != "up" {
		return Health{Status: "degraded", Database: "down"}
	}
	return Health{Status: "ok", Database: "up"}
}
