package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

const mysqlDuplicateEntry = 1062

type BookingService struct {
	DB        *sql.DB
	RequestID string
}

// Create books every requested seat on a route for one passenger, in one
// transaction. Seats already booked on the route yield a ConflictError whose
// Details carry "unavailable_seats".
func (s BookingService) Create(ctx context.Context, req models.BookingRequest) (models.BookingRecord, error) {
	var rec models.BookingRecord
	seatNumbers := cleanSeatNumbers(req.SeatNumbers)
	if req.RouteID <= 0 || len(seatNumbers) == 0 {
		return rec, domain.ValidationError{Msg: "Missing required data"}
	}
	p := req.Passenger
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Name == "" || p.Age <= 0 || p.Email == "" || p.Phone == "" {
		return rec, domain.ValidationError{Msg: "Incomplete passenger details"}
	}

	db := dbOr(s.DB)
	if db == nil {
		return rec, domain.InternalError{Msg: "database not connected"}
	}

	err := intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		rt, err := repositories.RouteRepository{DB: tx}.GetByID(ctx, req.RouteID)
		if err != nil {
			return err
		}

		seatRepo := repositories.SeatRepository{DB: tx}
		bookingRepo := repositories.BookingRepository{DB: tx}
		seatIDs := make([]int64, 0, len(seatNumbers))
		unavailable := []string{}
		for _, n := range seatNumbers {
			id, err := seatRepo.FindByNumber(ctx, rt.BusID, n)
			if err != nil {
				return err
			}
			booked, err := bookingRepo.IsSeatBooked(ctx, rt.ID, id)
			if err != nil {
				return err
			}
			if booked {
				unavailable = append(unavailable, n)
				continue
			}
			seatIDs = append(seatIDs, id)
		}
		if len(unavailable) > 0 {
			return seatsTaken(unavailable, nil)
		}

		passengerID, err := repositories.PassengerRepository{DB: tx}.Insert(ctx, p)
		if err != nil {
			return fmt.Errorf("insert passenger: %w", err)
		}

		ids := make([]int64, 0, len(seatIDs))
		for i, seatID := range seatIDs {
			id, err := bookingRepo.Insert(ctx, passengerID, rt.ID, seatID, rt.Price)
			if err != nil {
				var me *mysql.MySQLError
				if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
					return seatsTaken([]string{seatNumbers[i]}, err)
				}
				return fmt.Errorf("insert booking: %w", err)
			}
			ids = append(ids, id)
		}

		rec = models.BookingRecord{
			BookingIDs:  ids,
			PassengerID: passengerID,
			TotalPrice:  rt.Price * float64(len(ids)),
		}
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsConflict(err) {
			utils.LogEvent(s.RequestID, "booking", "create", err.Error())
			return models.BookingRecord{}, err
		}
		utils.LogError(s.RequestID, "booking", "create", err)
		return models.BookingRecord{}, domain.InternalError{Msg: "Failed to create booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("route_id=%d booking_ids=%v", req.RouteID, rec.BookingIDs))
	return rec, nil
}

// GetBooking returns one seat booking.
func (s BookingService) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	b, err := repositories.BookingRepository{DB: dbOr(s.DB)}.GetByID(ctx, id)
	if err != nil && !domain.IsNotFound(err) {
		return b, domain.InternalError{Msg: "Failed to get booking", Err: err}
	}
	return b, err
}

func seatsTaken(seats []string, cause error) error {
	return domain.ConflictError{
		Resource: "seats",
		Msg:      "Some seats are not available",
		Details:  map[string]any{"unavailable_seats": seats},
		Err:      cause,
	}
}

// cleanSeatNumbers trims labels and drops blanks and repeats, keeping order.
func cleanSeatNumbers(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, n := range in {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
