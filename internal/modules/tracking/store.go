// README: Tracking store: Redis GEO live set plus Postgres snapshot trail.
package tracking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"carzz/internal/types"
)

const liveGeoKey = "tracking:live"

// Store writes live positions to redis and an audit trail to postgres.
// Either backend may be nil; the corresponding write is skipped.
type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func (s *Store) SetLive(ctx context.Context, id types.ID, p types.Point) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.GeoAdd(ctx, liveGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *Store) RemoveLive(ctx context.Context, id types.ID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.ZRem(ctx, liveGeoKey, string(id)).Err()
}

func (s *Store) AppendSnapshot(ctx context.Context, snap Snapshot) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO location_snapshots (booking_id, lat, lng, recorded_at)
		VALUES ($1, $2, $3, $4)`,
		string(snap.BookingID), snap.Position.Lat, snap.Position.Lng, snap.RecordedAt,
	)
	return err
}
