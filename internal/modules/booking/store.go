// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carzz/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, vehicle_id, vehicle_kind, user_id, start_time, end_time,
			total_cost, rate_tier, km_allowance, status,
			is_unlocked, tracking_enabled, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13
		)`,
		string(b.ID), b.VehicleID, string(b.VehicleKind), string(b.UserID),
		b.StartTime, b.EndTime,
		b.TotalCost.Amount, string(b.RateTier), b.KmAllowance, string(b.Status),
		b.IsUnlocked, b.TrackingEnabled, b.CreatedAt,
	)
	return err
}

const bookingColumns = `
	id, vehicle_id, vehicle_kind, user_id, start_time, end_time,
	total_cost, rate_tier, km_allowance, status,
	is_unlocked, unlock_time, tracking_enabled, last_lat, last_lng, created_at`

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1`, string(id),
	)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) List(ctx context.Context) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) SetLock(ctx context.Context, id types.ID, unlocked bool, unlockTime *time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings SET is_unlocked = $1, unlock_time = $2 WHERE id = $3`,
		unlocked, unlockTime, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetTracking(ctx context.Context, id types.ID, enabled bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings SET tracking_enabled = $1 WHERE id = $2`,
		enabled, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetLocation(ctx context.Context, id types.ID, p types.Point) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings SET last_lat = $1, last_lng = $2 WHERE id = $3`,
		p.Lat, p.Lng, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO booking_events (booking_id, from_status, to_status, actor, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(e.BookingID), string(e.FromStatus), string(e.ToStatus), e.Actor, e.CreatedAt,
	)
	return err
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var unlockTime sql.NullTime
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&b.ID, &b.VehicleID, &b.VehicleKind, &b.UserID, &b.StartTime, &b.EndTime,
		&b.TotalCost.Amount, &b.RateTier, &b.KmAllowance, &b.Status,
		&b.IsUnlocked, &unlockTime, &b.TrackingEnabled, &lat, &lng, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.TotalCost.Currency = "INR"
	if unlockTime.Valid {
		t := unlockTime.Time
		b.UnlockTime = &t
	}
	if lat.Valid && lng.Valid {
		b.LastKnown = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &b, nil
}
