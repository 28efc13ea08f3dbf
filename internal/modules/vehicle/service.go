// README: Catalog service; listing goes through a short-lived redis cache.
package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Service struct {
	repo     Repository
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewService(repo Repository, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// List returns the catalog entries matching the filter. Results are cached
// per filter for a short TTL; cache failures fall through to the repository.
func (s *Service) List(ctx context.Context, f Filter) ([]Vehicle, error) {
	key := listCacheKey(f)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached []Vehicle
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	vehicles, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(vehicles); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.cacheTTL).Err()
		}
	}
	return vehicles, nil
}

func (s *Service) Get(ctx context.Context, kind Kind, id int64) (Vehicle, error) {
	return s.repo.Get(ctx, kind, id)
}

func listCacheKey(f Filter) string {
	return fmt.Sprintf("catalog:%s:%s:%s",
		f.Kind, strings.ToLower(f.Location), strings.ToLower(f.Search))
}
