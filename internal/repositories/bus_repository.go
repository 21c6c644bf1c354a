package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type Bus struct {
	ID       int64
	Name     string
	Capacity int
}

type BusRepository struct {
	DB intdb.DBTX
}

func (r BusRepository) Insert(ctx context.Context, name string, capacity int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO buses (name, capacity) VALUES (?, ?)`, name, capacity)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) GetByID(ctx context.Context, id int64) (Bus, error) {
	var b Bus
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, capacity FROM buses WHERE id=?`, id).
		Scan(&b.ID, &b.Name, &b.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "bus", Err: err}
	}
	return b, err
}

type SeatRepository struct {
	DB intdb.DBTX
}

// InsertSeats creates the given seat labels for a bus.
func (r SeatRepository) InsertSeats(ctx context.Context, busID int64, numbers []string) error {
	if len(numbers) == 0 {
		return nil
	}
	values := make([]string, 0, len(numbers))
	args := make([]any, 0, len(numbers)*2)
	for _, n := range numbers {
		values = append(values, "(?, ?, TRUE)")
		args = append(args, busID, n)
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO seats (bus_id, seat_number, is_available) VALUES `+strings.Join(values, ","), args...)
	return err
}

// ListForRoute returns every seat of the route's bus with availability
// computed from the bookings made on that route.
func (r SeatRepository) ListForRoute(ctx context.Context, routeID, busID int64) ([]models.Seat, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.id, s.seat_number, b.id IS NULL
		FROM seats s
		LEFT JOIN bookings b ON b.seat_id = s.id AND b.route_id = ?
		WHERE s.bus_id = ?
		ORDER BY s.id ASC`, routeID, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		var number string
		if err := rows.Scan(&s.ID, &number, &s.IsAvailable); err != nil {
			return out, err
		}
		s.SeatNumber = models.SeatNumber(number)
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindByNumber returns the seat id of a label on a bus.
func (r SeatRepository) FindByNumber(ctx context.Context, busID int64, number string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM seats WHERE bus_id=? AND seat_number=? LIMIT 1`, busID, strings.TrimSpace(number)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFoundError{Resource: "Seat " + number, Err: err}
	}
	return id, err
}
