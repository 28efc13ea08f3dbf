// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const vehicleColumns = `
	id, kind, make, model, year, category, price_per_hour,
	image_url, location, is_available, fuel_type,
	COALESCE(transmission, ''), COALESCE(seats, 0), COALESCE(engine_capacity, '')`

func (s *Store) List(ctx context.Context, f Filter) ([]Vehicle, error) {
	location := strings.ToLower(f.Location)
	if location == "all" {
		location = ""
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE kind = $1
		  AND ($2 = '' OR LOWER(location) = $2)
		  AND ($3 = '' OR make ILIKE '%' || $3 || '%'
		               OR model ILIKE '%' || $3 || '%'
		               OR category ILIKE '%' || $3 || '%')
		ORDER BY id`,
		string(f.Kind), location, f.Search,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, kind Kind, id int64) (Vehicle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE kind = $1 AND id = $2`,
		string(kind), id,
	)
	v, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrNotFound
	}
	return v, err
}

func (s *Store) SetAvailability(ctx context.Context, kind Kind, id int64, available bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE vehicles SET is_available = $1 WHERE kind = $2 AND id = $3`,
		available, string(kind), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID, &v.Kind, &v.Make, &v.Model, &v.Year, &v.Category, &v.PricePerHour.Amount,
		&v.ImageURL, &v.Location, &v.IsAvailable, &v.FuelType,
		&v.Transmission, &v.Seats, &v.EngineCapacity,
	)
	if err != nil {
		return Vehicle{}, err
	}
	v.PricePerHour.Currency = "INR"
	return v, nil
}
