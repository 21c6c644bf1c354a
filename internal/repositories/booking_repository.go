package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/utils"
)

type BookingRepository struct {
	DB intdb.DBTX
}

// Insert stores one seat booking in Pending state.
func (r BookingRepository) Insert(ctx context.Context, passengerID, routeID, seatID int64, price float64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (booking_date, total_price, payment_status, passenger_id, route_id, seat_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now(), price, models.PaymentPending, passengerID, routeID, seatID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IsSeatBooked reports whether a seat already has a booking on a route.
func (r BookingRepository) IsSeatBooked(ctx context.Context, routeID, seatID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(1) FROM bookings WHERE route_id=? AND seat_id=?`, routeID, seatID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const bookingSelect = `
	SELECT bk.id, bk.booking_date, bk.total_price, bk.payment_status, bk.passenger_id, bk.route_id, bk.seat_id, s.seat_number
	FROM bookings bk
	JOIN seats s ON s.id = bk.seat_id`

func scanBooking(s interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var at time.Time
	err := s.Scan(&b.ID, &at, &b.TotalPrice, &b.PaymentStatus, &b.PassengerID, &b.RouteID, &b.SeatID, &b.SeatNumber)
	if err == nil {
		b.BookingDate = utils.FormatDateTime(at)
	}
	return b, err
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, bookingSelect+` WHERE bk.id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: fmt.Sprintf("booking %d", id), Err: err}
	}
	return b, err
}

// ListByIDs returns the bookings in the order of ids. A missing id is a
// NotFoundError.
func (r BookingRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Booking, error) {
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, bookingSelect+` WHERE bk.id IN (`+intdb.Placeholders(len(ids))+`)`, intdb.Int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]models.Booking, len(ids))
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		byID[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return nil, domain.NotFoundError{Resource: fmt.Sprintf("booking %d", id)}
		}
		out = append(out, b)
	}
	return out, nil
}

// MarkPaid sets payment_status=Paid and records the method.
func (r BookingRepository) MarkPaid(ctx context.Context, ids []int64, method string) error {
	if len(ids) == 0 {
		return nil
	}
	args := append([]any{models.PaymentPaid, method}, intdb.Int64Args(ids)...)
	_, err := r.DB.ExecContext(ctx, `UPDATE bookings SET payment_status=?, payment_method=? WHERE id IN (`+intdb.Placeholders(len(ids))+`)`, args...)
	return err
}
