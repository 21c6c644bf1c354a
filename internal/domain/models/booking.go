package models

// PassengerDetails is collected on the booking form.
type PassengerDetails struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingRequest is the body of POST /api/bookings.
type BookingRequest struct {
	RouteID     int64            `json:"route_id"`
	SeatNumbers []string         `json:"seat_numbers"`
	Passenger   PassengerDetails `json:"passenger"`
}

// BookingRecord identifies the bookings created for one passenger.
type BookingRecord struct {
	BookingIDs  []int64 `json:"booking_ids"`
	PassengerID int64   `json:"passenger_id"`
	TotalPrice  float64 `json:"total_price,omitempty"`
}

// Booking is a single seat booking as stored by the backend.
type Booking struct {
	ID            int64   `json:"id"`
	BookingDate   string  `json:"booking_date"`
	TotalPrice    float64 `json:"total_price"`
	PaymentStatus string  `json:"payment_status"`
	PassengerID   int64   `json:"passenger_id"`
	RouteID       int64   `json:"route_id"`
	SeatID        int64   `json:"seat_id"`
	SeatNumber    string  `json:"seat_number,omitempty"`
}

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)
