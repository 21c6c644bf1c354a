package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

var (
	routeCols   = []string{"id", "from_location", "to_location", "departure_time", "price", "date", "bus_id", "name"}
	bookingCols = []string{"id", "booking_date", "total_price", "payment_status", "passenger_id", "route_id", "seat_id", "seat_number"}
	tripDay     = time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expressRoute() *sqlmock.Rows {
	return sqlmock.NewRows(routeCols).AddRow(int64(7), "Pune", "Mumbai", "09:00", 500.0, tripDay, int64(3), "Express")
}

func passenger() models.PassengerDetails {
	return models.PassengerDetails{Name: "Asha", Age: 30, Email: "asha@example.com", Phone: "9999999999"}
}

func TestSeatLabels(t *testing.T) {
	labels := SeatLabels(40)
	require.Len(t, labels, 40)
	assert.Equal(t, "A1", labels[0])
	assert.Equal(t, "A4", labels[3])
	assert.Equal(t, "B1", labels[4])
	assert.Equal(t, "J4", labels[39])
}

func TestSeedLoadsSevenDaysOfRoutes(t *testing.T) {
	db, mock := newMock(t)
	for i := 0; i < 5; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectBegin()
	for i := 0; i < 5; i++ {
		mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i := 1; i <= 3; i++ {
		mock.ExpectExec("INSERT INTO buses").WithArgs(seedBuses[i-1], 40).WillReturnResult(sqlmock.NewResult(int64(i), 1))
	}
	for i := 0; i < 77; i++ {
		mock.ExpectExec("INSERT INTO routes").WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO seats").WillReturnResult(sqlmock.NewResult(1, 40))
	}
	mock.ExpectCommit()

	svc := SeedService{DB: db, Now: func() time.Time { return time.Date(2026, 12, 30, 10, 0, 0, 0, time.Local) }}
	res, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Buses: 3, Routes: 77, Seats: 120}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchValidation(t *testing.T) {
	svc := SearchService{}
	_, err := svc.Search(context.Background(), models.SearchQuery{Origin: "Pune", Destination: "Mumbai"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Missing required parameters", err.Error())

	_, err = svc.Search(context.Background(), models.SearchQuery{Origin: "Pune", Destination: "Mumbai", Date: "01/06/2024"})
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", err.Error())
}

func TestSearchDedupesBusAndTime(t *testing.T) {
	db, mock := newMock(t)
	rows := sqlmock.NewRows(routeCols).
		AddRow(int64(7), "Pune", "Mumbai", "09:00", 500.0, tripDay, int64(3), "Express").
		AddRow(int64(8), "Pune", "Mumbai", "09:00", 500.0, tripDay.AddDate(0, 0, 1), int64(3), "Express").
		AddRow(int64(9), "Pune", "Mumbai", "13:00", 650.0, tripDay, int64(3), "Express")
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs("Pune", "Mumbai").WillReturnRows(rows)

	out, err := SearchService{DB: db}.Search(context.Background(), models.SearchQuery{Origin: "Pune", Destination: "Mumbai", Date: "2024-06-03"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, models.BusOption{ID: 7, Name: "Express", Time: "09:00", Price: 500, From: "Pune", To: "Mumbai", Date: "2024-06-03"}, out[0])
	assert.Equal(t, int64(9), out[1].ID)
}

func TestSearchEmptyIsNotAnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM routes r JOIN buses b").WillReturnRows(sqlmock.NewRows(routeCols))

	out, err := SearchService{DB: db}.Search(context.Background(), models.SearchQuery{Origin: "A", Destination: "B", Date: "2024-06-01"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListSeats(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	mock.ExpectQuery("FROM seats s").WithArgs(int64(7), int64(3)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "seat_number", "available"}).AddRow(int64(1), "A1", true).AddRow(int64(2), "A2", true))

	list, err := SeatService{DB: db}.ListSeats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 500.0, list.Price)
	assert.Equal(t, "Express", list.BusName)
	assert.Len(t, list.Seats, 2)
}

func TestListSeatsUnknownRoute(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	_, err := SeatService{DB: db}.ListSeats(context.Background(), 404)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateBookingValidation(t *testing.T) {
	svc := BookingService{}
	_, err := svc.Create(context.Background(), models.BookingRequest{RouteID: 7, Passenger: passenger()})
	assert.Equal(t, "Missing required data", err.Error())

	p := passenger()
	p.Email = " "
	_, err = svc.Create(context.Background(), models.BookingRequest{RouteID: 7, SeatNumbers: []string{"A1"}, Passenger: p})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Incomplete passenger details", err.Error())
}

func expectSeat(mock sqlmock.Sqlmock, number string, id int64, booked int) {
	mock.ExpectQuery("SELECT id FROM seats").WithArgs(int64(3), number).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectQuery("SELECT COUNT\\(1\\) FROM bookings").WithArgs(int64(7), id).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(booked))
}

func TestCreateBookingInsertsOneRowPerSeat(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	expectSeat(mock, "A1", 1, 0)
	expectSeat(mock, "A2", 2, 0)
	mock.ExpectExec("INSERT INTO passengers").WithArgs("Asha", 30, "asha@example.com", "9999999999").WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(sqlmock.AnyArg(), 500.0, "Pending", int64(55), int64(7), int64(1)).WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(sqlmock.AnyArg(), 500.0, "Pending", int64(55), int64(7), int64(2)).WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectCommit()

	rec, err := BookingService{DB: db}.Create(context.Background(), models.BookingRequest{
		RouteID:     7,
		SeatNumbers: []string{"A1", " A2", "A1"},
		Passenger:   passenger(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingRecord{BookingIDs: []int64{101, 102}, PassengerID: 55, TotalPrice: 1000}, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingReportsTakenSeats(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	expectSeat(mock, "A1", 1, 1)
	expectSeat(mock, "A2", 2, 0)
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.BookingRequest{RouteID: 7, SeatNumbers: []string{"A1", "A2"}, Passenger: passenger()})
	require.Error(t, err)
	var ce domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"A1"}, ce.Details["unavailable_seats"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	mock.ExpectQuery("SELECT id FROM seats").WithArgs(int64(3), "Z9").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.BookingRequest{RouteID: 7, SeatNumbers: []string{"Z9"}, Passenger: passenger()})
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Seat Z9 not found", err.Error())
}

func TestCreateBookingDuplicateKeyIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	expectSeat(mock, "A1", 1, 0)
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.BookingRequest{RouteID: 7, SeatNumbers: []string{"A1"}, Passenger: passenger()})
	assert.True(t, domain.IsConflict(err))
}

func TestProcessPaymentBuildsConfirmation(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2024, 5, 30, 12, 0, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectQuery("WHERE bk.id IN").WithArgs(int64(101), int64(102)).WillReturnRows(sqlmock.NewRows(bookingCols).
		AddRow(int64(101), at, 500.0, "Pending", int64(55), int64(7), int64(1), "A1").
		AddRow(int64(102), at, 500.0, "Pending", int64(55), int64(7), int64(2), "A2"))
	mock.ExpectExec("UPDATE bookings SET payment_status").WithArgs("Paid", "upi", int64(101), int64(102)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("FROM passengers").WithArgs(int64(55)).WillReturnRows(
		sqlmock.NewRows([]string{"name", "age", "email", "phone"}).AddRow("Asha", 30, "asha@example.com", "9999999999"))
	mock.ExpectQuery("FROM routes r JOIN buses b").WithArgs(int64(7)).WillReturnRows(expressRoute())
	mock.ExpectCommit()

	svc := PaymentService{DB: db, Now: func() time.Time { return time.Date(2024, 5, 31, 8, 15, 0, 0, time.Local) }}
	conf, err := svc.Process(context.Background(), models.PaymentRequest{BookingIDs: []int64{101, 102}, PaymentMethod: "UPI"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, conf.SeatNumbers)
	assert.Equal(t, 1000.0, conf.TotalPrice)
	assert.Equal(t, "Paid", conf.PaymentStatus)
	assert.Equal(t, "upi", conf.PaymentMethod)
	assert.Equal(t, "2024-06-01", conf.Route.Date)
	assert.Equal(t, "Express", conf.Route.BusName)
	assert.Equal(t, "2024-05-31 08:15:00", conf.BookingDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentValidation(t *testing.T) {
	_, err := PaymentService{}.Process(context.Background(), models.PaymentRequest{PaymentMethod: "card"})
	assert.Equal(t, "Missing booking IDs or payment method", err.Error())

	_, err = PaymentService{}.Process(context.Background(), models.PaymentRequest{BookingIDs: []int64{1}, PaymentMethod: "barter"})
	assert.True(t, domain.IsValidation(err))
}

func TestProcessPaymentUnknownBooking(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("WHERE bk.id IN").WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectRollback()

	_, err := PaymentService{DB: db}.Process(context.Background(), models.PaymentRequest{BookingIDs: []int64{9}, PaymentMethod: "cash"})
	assert.True(t, domain.IsNotFound(err))
}

func confirmation() models.ConfirmationRecord {
	return models.ConfirmationRecord{
		BookingIDs:    []int64{101, 102},
		Passenger:     passenger(),
		Route:         models.RouteSummary{FromLocation: "Pune", ToLocation: "Mumbai", Date: "2024-06-01", DepartureTime: "09:00", BusName: "Express"},
		SeatNumbers:   []string{"A1", "A2"},
		TotalPrice:    1000,
		PaymentMethod: "card",
		PaymentStatus: "Paid",
		BookingDate:   "2024-05-31 08:15:00",
	}
}

func TestBuildTicketText(t *testing.T) {
	text := BuildTicketText(confirmation())
	assert.Contains(t, text, "Seats: A1, A2\n")
	assert.Contains(t, text, "Total Amount Paid: ₹1000\n")
	assert.Contains(t, text, "Route: Pune to Mumbai\n")
	assert.Contains(t, text, "Payment Status: Paid\n")
}

func TestBuildETicketPDF(t *testing.T) {
	pdf, name, err := BuildETicketPDF(confirmation())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "ETICKET_101_Asha.pdf", name)
}
