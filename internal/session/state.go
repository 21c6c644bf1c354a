package session

import (
	"context"
	"strings"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

// Keys of the booking flow.
const (
	KeyFrom             = "from"
	KeyTo               = "to"
	KeyDate             = "date"
	KeySelectedBus      = "selectedBus"
	KeySeatPrice        = "seatPrice"
	KeySeatCatalog      = "seatCatalog"
	KeySelectedSeats    = "selectedSeats"
	KeyTotalPrice       = "totalPrice"
	KeyBookingIDs       = "bookingIds"
	KeyPassengerID      = "passengerId"
	KeyPassengerDetails = "passengerDetails"
	KeyConfirmation     = "confirmation"
)

// Routes that produce each key. A missing key sends the user back there.
const (
	RouteHome         = "/"
	RouteResults      = "/search"
	RouteSeats        = "/seats"
	RouteBooking      = "/booking"
	RoutePayment      = "/payment"
	RouteConfirmation = "/confirmation"
)

func missing(key, route string) error {
	return domain.PreconditionError{Key: key, Route: route}
}

func (s *Session) SaveSearchQuery(ctx context.Context, q models.SearchQuery) error {
	if err := s.SetString(ctx, KeyFrom, q.Origin); err != nil {
		return err
	}
	if err := s.SetString(ctx, KeyTo, q.Destination); err != nil {
		return err
	}
	return s.SetString(ctx, KeyDate, q.Date)
}

func (s *Session) SearchQuery(ctx context.Context) (models.SearchQuery, error) {
	var q models.SearchQuery
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyFrom, &q.Origin},
		{KeyTo, &q.Destination},
		{KeyDate, &q.Date},
	} {
		v, ok, err := s.GetString(ctx, f.key)
		if err != nil {
			return q, err
		}
		if !ok || strings.TrimSpace(v) == "" {
			return q, missing(f.key, RouteHome)
		}
		*f.dst = v
	}
	return q, nil
}

func (s *Session) SaveSelectedBus(ctx context.Context, bus models.SelectedBus) error {
	return s.SetJSON(ctx, KeySelectedBus, bus)
}

func (s *Session) SelectedBus(ctx context.Context) (models.SelectedBus, error) {
	var bus models.SelectedBus
	ok, err := s.GetJSON(ctx, KeySelectedBus, &bus)
	if err != nil {
		return bus, err
	}
	if !ok {
		return bus, missing(KeySelectedBus, RouteResults)
	}
	return bus, nil
}

func (s *Session) SaveSeatPrice(ctx context.Context, price float64) error {
	return s.SetJSON(ctx, KeySeatPrice, price)
}

// SeatPrice returns the unit seat price and whether it was stored.
func (s *Session) SeatPrice(ctx context.Context) (float64, bool, error) {
	var price float64
	ok, err := s.GetJSON(ctx, KeySeatPrice, &price)
	return price, ok, err
}

func (s *Session) SaveSeatCatalog(ctx context.Context, seats []models.Seat) error {
	return s.SetJSON(ctx, KeySeatCatalog, seats)
}

// SeatCatalog returns the seats last fetched for the selected bus, or nil.
func (s *Session) SeatCatalog(ctx context.Context) ([]models.Seat, error) {
	var seats []models.Seat
	if _, err := s.GetJSON(ctx, KeySeatCatalog, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// SaveSelection writes the seat selection and its total together.
func (s *Session) SaveSelection(ctx context.Context, seats []models.SelectedSeat, total float64) error {
	if seats == nil {
		seats = []models.SelectedSeat{}
	}
	if err := s.SetJSON(ctx, KeySelectedSeats, seats); err != nil {
		return err
	}
	return s.SetJSON(ctx, KeyTotalPrice, total)
}

// Selection returns the stored selection; an absent key is an empty selection.
func (s *Session) Selection(ctx context.Context) ([]models.SelectedSeat, float64, error) {
	seats := []models.SelectedSeat{}
	if _, err := s.GetJSON(ctx, KeySelectedSeats, &seats); err != nil {
		return nil, 0, err
	}
	var total float64
	if _, err := s.GetJSON(ctx, KeyTotalPrice, &total); err != nil {
		return nil, 0, err
	}
	return seats, total, nil
}

// SaveBooking stores the backend's booking ids with the passenger who made them.
func (s *Session) SaveBooking(ctx context.Context, rec models.BookingRecord, p models.PassengerDetails) error {
	ids := rec.BookingIDs
	if ids == nil {
		ids = []int64{}
	}
	if err := s.SetJSON(ctx, KeyBookingIDs, ids); err != nil {
		return err
	}
	if err := s.SetJSON(ctx, KeyPassengerID, rec.PassengerID); err != nil {
		return err
	}
	return s.SetJSON(ctx, KeyPassengerDetails, p)
}

func (s *Session) SaveConfirmation(ctx context.Context, c models.ConfirmationRecord) error {
	return s.SetJSON(ctx, KeyConfirmation, c)
}

// ResultsState is what the results page needs.
type ResultsState struct {
	Query models.SearchQuery
}

// SeatsState is what the seat selection page needs.
type SeatsState struct {
	Bus models.SelectedBus
}

// BookingState is what the passenger booking page needs.
type BookingState struct {
	Bus   models.SelectedBus
	Seats []models.SelectedSeat
	Total float64
}

// PaymentState is what the payment page needs.
type PaymentState struct {
	Total       float64
	BookingIDs  []int64
	PassengerID int64
	Passenger   models.PassengerDetails
}

// ConfirmationState is what the confirmation page needs.
type ConfirmationState struct {
	Confirmation models.ConfirmationRecord
}

func (s *Session) Results(ctx context.Context) (ResultsState, error) {
	q, err := s.SearchQuery(ctx)
	return ResultsState{Query: q}, err
}

func (s *Session) Seats(ctx context.Context) (SeatsState, error) {
	bus, err := s.SelectedBus(ctx)
	return SeatsState{Bus: bus}, err
}

func (s *Session) Booking(ctx context.Context) (BookingState, error) {
	var st BookingState
	var err error
	if st.Bus, err = s.SelectedBus(ctx); err != nil {
		return st, err
	}
	var seats []models.SelectedSeat
	ok, err := s.GetJSON(ctx, KeySelectedSeats, &seats)
	if err != nil {
		return st, err
	}
	if !ok || len(seats) == 0 {
		return st, missing(KeySelectedSeats, RouteSeats)
	}
	st.Seats = seats
	ok, err = s.GetJSON(ctx, KeyTotalPrice, &st.Total)
	if err != nil {
		return st, err
	}
	if !ok {
		return st, missing(KeyTotalPrice, RouteSeats)
	}
	return st, nil
}

func (s *Session) Payment(ctx context.Context) (PaymentState, error) {
	var st PaymentState
	ok, err := s.GetJSON(ctx, KeyTotalPrice, &st.Total)
	if err != nil {
		return st, err
	}
	if !ok {
		return st, missing(KeyTotalPrice, RouteSeats)
	}
	ok, err = s.GetJSON(ctx, KeyBookingIDs, &st.BookingIDs)
	if err != nil {
		return st, err
	}
	if !ok || len(st.BookingIDs) == 0 {
		return st, missing(KeyBookingIDs, RouteBooking)
	}
	if _, err := s.GetJSON(ctx, KeyPassengerID, &st.PassengerID); err != nil {
		return st, err
	}
	ok, err = s.GetJSON(ctx, KeyPassengerDetails, &st.Passenger)
	if err != nil {
		return st, err
	}
	if !ok {
		return st, missing(KeyPassengerDetails, RouteBooking)
	}
	return st, nil
}

func (s *Session) Confirmation(ctx context.Context) (ConfirmationState, error) {
	var st ConfirmationState
	ok, err := s.GetJSON(ctx, KeyConfirmation, &st.Confirmation)
	if err != nil {
		return st, err
	}
	if !ok {
		return st, missing(KeyConfirmation, RoutePayment)
	}
	return st, nil
}
