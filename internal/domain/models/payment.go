package models

// PaymentRequest is the body of POST /api/payment.
type PaymentRequest struct {
	BookingIDs    []int64 `json:"booking_ids"`
	PaymentMethod string  `json:"payment_method"`
}

// RouteSummary is the trip part of a confirmation.
type RouteSummary struct {
	ID            int64   `json:"id,omitempty"`
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	Date          string  `json:"date"`
	DepartureTime string  `json:"departure_time"`
	Price         float64 `json:"price,omitempty"`
	BusName       string  `json:"bus_name"`
}

// ConfirmationRecord is the receipt shown after payment.
type ConfirmationRecord struct {
	BookingIDs    []int64          `json:"booking_ids"`
	Passenger     PassengerDetails `json:"passenger"`
	Route         RouteSummary     `json:"route"`
	SeatNumbers   []string         `json:"seat_numbers"`
	TotalPrice    float64          `json:"total_price"`
	PaymentMethod string           `json:"payment_method"`
	PaymentStatus string           `json:"payment_status"`
	BookingDate   string           `json:"booking_date"`
}

var PaymentMethods = []string{"card", "upi", "netbanking", "cash"}

// ValidPaymentMethod reports whether m is one of PaymentMethods.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}
