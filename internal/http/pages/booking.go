package pages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

func (pc *Controller) BookingForm(c *gin.Context) {
	st, err := pc.session(c).Booking(c.Request.Context())
	if err != nil {
		pc.fail(c, "booking", err)
		return
	}
	pc.render(c, http.StatusOK, "booking", bookingView{
		base:         base{Title: "Passenger details"},
		SelectedList: utils.JoinSeatList(models.SeatNumbers(st.Seats)),
		Total:        st.Total,
	})
}

// SubmitBooking creates the booking for the selected seats. Nothing is
// stored in the session unless the backend accepts it.
func (pc *Controller) SubmitBooking(c *gin.Context) {
	ctx := c.Request.Context()
	sess := pc.session(c)
	st, err := sess.Booking(ctx)
	if err != nil {
		pc.fail(c, "booking", err)
		return
	}

	age, _ := strconv.Atoi(formString(c, "age"))
	passenger := models.PassengerDetails{
		Name:  formString(c, "name"),
		Age:   age,
		Email: formString(c, "email"),
		Phone: formString(c, "phone"),
	}
	req := models.BookingRequest{
		RouteID:     st.Bus.ID,
		SeatNumbers: models.SeatNumbers(st.Seats),
		Passenger:   passenger,
	}

	rec, err := pc.backend.CreateBooking(ctx, req)
	if err != nil {
		reqID := middleware.GetRequestID(c)
		view := bookingView{
			base:         base{Title: "Passenger details"},
			SelectedList: utils.JoinSeatList(req.SeatNumbers),
			Total:        st.Total,
			Passenger:    passenger,
		}
		status := http.StatusBadGateway
		if msg, ok := apiMessage(err); ok {
			utils.LogEvent(reqID, "pages", "create_booking", "rejected: "+msg)
			view.Alert = "Booking failed: " + msg
			status = http.StatusUnprocessableEntity
		} else {
			utils.LogError(reqID, "pages", "create_booking", err)
			view.Alert = msgBookingFailed
		}
		pc.render(c, status, "booking", view)
		return
	}

	if err := sess.SaveBooking(ctx, rec, passenger); err != nil {
		pc.fail(c, "booking", err)
		return
	}
	c.Redirect(http.StatusSeeOther, session.RoutePayment)
}
