package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

// PaymentService settles bookings and issues the confirmation receipt.
type PaymentService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s PaymentService) Process(ctx context.Context, req models.PaymentRequest) (models.ConfirmationRecord, error) {
	var conf models.ConfirmationRecord
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if len(req.BookingIDs) == 0 || method == "" {
		return conf, domain.ValidationError{Msg: "Missing booking IDs or payment method"}
	}
	if !models.ValidPaymentMethod(method) {
		return conf, domain.ValidationError{Field: "payment_method", Msg: "unsupported payment method"}
	}

	db := dbOr(s.DB)
	if db == nil {
		return conf, domain.InternalError{Msg: "database not connected"}
	}

	err := intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		bookingRepo := repositories.BookingRepository{DB: tx}
		bookings, err := bookingRepo.ListByIDs(ctx, req.BookingIDs)
		if err != nil {
			return err
		}
		if err := bookingRepo.MarkPaid(ctx, req.BookingIDs, method); err != nil {
			return fmt.Errorf("mark paid: %w", err)
		}

		first := bookings[0]
		passenger, err := repositories.PassengerRepository{DB: tx}.GetByID(ctx, first.PassengerID)
		if err != nil {
			return err
		}
		rt, err := repositories.RouteRepository{DB: tx}.GetByID(ctx, first.RouteID)
		if err != nil {
			return err
		}

		var total float64
		seats := make([]string, 0, len(bookings))
		for _, b := range bookings {
			seats = append(seats, b.SeatNumber)
			total += b.TotalPrice
		}

		conf = models.ConfirmationRecord{
			BookingIDs: req.BookingIDs,
			Passenger:  passenger,
			Route: models.RouteSummary{
				ID:            rt.ID,
				FromLocation:  rt.FromLocation,
				ToLocation:    rt.ToLocation,
				Date:          utils.FormatDate(rt.Date),
				DepartureTime: rt.DepartureTime,
				Price:         rt.Price,
				BusName:       rt.BusName,
			},
			SeatNumbers:   seats,
			TotalPrice:    total,
			PaymentMethod: method,
			PaymentStatus: models.PaymentPaid,
			BookingDate:   utils.FormatDateTime(s.now()),
		}
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return models.ConfirmationRecord{}, err
		}
		utils.LogError(s.RequestID, "payment", "process", err)
		return models.ConfirmationRecord{}, domain.InternalError{Msg: "Failed to process payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "process", fmt.Sprintf("booking_ids=%v method=%s", conf.BookingIDs, method))
	return conf, nil
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
