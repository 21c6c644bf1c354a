package pages

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/services"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

func paymentPage(st session.PaymentState, method string) paymentView {
	if !models.ValidPaymentMethod(method) {
		method = ""
	}
	return paymentView{
		base:      base{Title: "Payment"},
		Passenger: st.Passenger,
		Total:     st.Total,
		Methods:   models.PaymentMethods,
		Method:    method,
		ShowCard:  method == "card",
	}
}

// PaymentForm renders the payment form; ?method= preselects a method and
// card details are shown only for "card".
func (pc *Controller) PaymentForm(c *gin.Context) {
	st, err := pc.session(c).Payment(c.Request.Context())
	if err != nil {
		pc.fail(c, "payment", err)
		return
	}
	method := strings.ToLower(strings.TrimSpace(c.Query("method")))
	pc.render(c, http.StatusOK, "payment", paymentPage(st, method))
}

// SubmitPayment settles the bookings with the backend and keeps its
// confirmation for the receipt page.
func (pc *Controller) SubmitPayment(c *gin.Context) {
	ctx := c.Request.Context()
	sess := pc.session(c)
	st, err := sess.Payment(ctx)
	if err != nil {
		pc.fail(c, "payment", err)
		return
	}

	method := strings.ToLower(formString(c, "payment_method"))
	if !models.ValidPaymentMethod(method) {
		view := paymentPage(st, "")
		view.Alert = "Please choose a payment method."
		pc.render(c, http.StatusBadRequest, "payment", view)
		return
	}

	conf, err := pc.backend.ProcessPayment(ctx, models.PaymentRequest{BookingIDs: st.BookingIDs, PaymentMethod: method})
	if err != nil {
		reqID := middleware.GetRequestID(c)
		view := paymentPage(st, method)
		status := http.StatusBadGateway
		if msg, ok := apiMessage(err); ok {
			utils.LogEvent(reqID, "pages", "process_payment", "rejected: "+msg)
			view.Alert = "Payment failed: " + msg
			status = http.StatusUnprocessableEntity
		} else {
			utils.LogError(reqID, "pages", "process_payment", err)
			view.Alert = msgPaymentFailed
		}
		pc.render(c, status, "payment", view)
		return
	}

	if err := sess.SaveConfirmation(ctx, conf); err != nil {
		pc.fail(c, "payment", err)
		return
	}
	c.Redirect(http.StatusSeeOther, session.RouteConfirmation)
}

// Confirmation shows the stored receipt with the payment status re-read
// from the backend. A failed lookup keeps the stored status.
func (pc *Controller) Confirmation(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := pc.session(c).Confirmation(ctx)
	if err != nil {
		pc.fail(c, "confirmation", err)
		return
	}

	conf := st.Confirmation
	if len(conf.BookingIDs) > 0 {
		b, err := pc.backend.GetBooking(ctx, conf.BookingIDs[0])
		switch {
		case err != nil:
			utils.LogError(middleware.GetRequestID(c), "pages", "booking_status", err)
		case b.PaymentStatus != "":
			conf.PaymentStatus = b.PaymentStatus
		}
	}
	pc.render(c, http.StatusOK, "confirmation", confirmationView{
		base:         base{Title: "Confirmation"},
		Confirmation: conf,
	})
}

// DownloadTicket serves the receipt as a plain-text attachment.
func (pc *Controller) DownloadTicket(c *gin.Context) {
	st, err := pc.session(c).Confirmation(c.Request.Context())
	if err != nil {
		pc.fail(c, "download", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.TicketFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.BuildTicketText(st.Confirmation)))
}

func (pc *Controller) DownloadTicketPDF(c *gin.Context) {
	st, err := pc.session(c).Confirmation(c.Request.Context())
	if err != nil {
		pc.fail(c, "download_pdf", err)
		return
	}
	pdf, filename, err := services.BuildETicketPDF(st.Confirmation)
	if err != nil {
		pc.fail(c, "download_pdf", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
