// Package pages serves the server-rendered booking flow. Every page reads
// what earlier steps stored in the visitor's session and talks to the
// backend only through the Backend interface.
package pages

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/gateway"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

// Backend is the part of the backend API the pages use.
// *gateway.Client satisfies it.
type Backend interface {
	InitDB(ctx context.Context) error
	SearchBuses(ctx context.Context, q models.SearchQuery) ([]models.BusOption, error)
	ListSeats(ctx context.Context, busID int64) (models.SeatList, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingRecord, error)
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (models.ConfirmationRecord, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
}

const (
	msgNoBuses       = "No buses found for this route and date."
	msgBusesFailed   = "Failed to load buses. Please try again."
	msgSeatsFailed   = "Failed to load seats. Please try again."
	msgBookingFailed = "Failed to create booking. Please try again."
	msgPaymentFailed = "Failed to process payment. Please try again."
	msgUnexpected    = "Something went wrong. Please try again."
)

var stepNames = map[string]string{
	session.RouteHome:    "the search page",
	session.RouteResults: "the search results",
	session.RouteSeats:   "seat selection",
	session.RouteBooking: "passenger details",
	session.RoutePayment: "payment",
}

type Controller struct {
	backend Backend
	tmpl    *template.Template
}

func New(backend Backend) (*Controller, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Controller{backend: backend, tmpl: tmpl}, nil
}

// Register mounts every page route. The routes expect middleware.Session to
// run first.
func (pc *Controller) Register(r gin.IRoutes) {
	r.GET("/", pc.Home)
	r.GET("/index", pc.Home)
	r.POST("/search", pc.SubmitSearch)
	r.GET("/search", pc.Results)
	r.POST("/search/select", pc.SelectBus)
	r.GET("/seats", pc.Seats)
	r.POST("/seats/toggle", pc.ToggleSeat)
	r.POST("/seats/proceed", pc.ProceedToBooking)
	r.GET("/booking", pc.BookingForm)
	r.POST("/booking", pc.SubmitBooking)
	r.GET("/payment", pc.PaymentForm)
	r.POST("/payment", pc.SubmitPayment)
	r.GET("/confirmation", pc.Confirmation)
	r.GET("/confirmation/download", pc.DownloadTicket)
	r.GET("/confirmation/ticket.pdf", pc.DownloadTicketPDF)
}

func (pc *Controller) render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: pc.tmpl, Name: name, Data: data})
}

func (pc *Controller) session(c *gin.Context) *session.Session {
	return middleware.GetSession(c)
}

// fail renders a missing-step page for precondition errors and a generic
// error page for anything else.
func (pc *Controller) fail(c *gin.Context, action string, err error) {
	if pe, ok := domain.AsPrecondition(err); ok {
		utils.LogEvent(middleware.GetRequestID(c), "pages", action, pe.Error())
		pc.render(c, http.StatusPreconditionFailed, "precondition", preconditionView{
			base:  base{Title: "Step missing"},
			Key:   pe.Key,
			Route: pe.Route,
			Step:  utils.Fallback(stepNames[pe.Route], pe.Route),
		})
		return
	}
	_ = c.Error(err)
	utils.LogError(middleware.GetRequestID(c), "pages", action, err)
	pc.render(c, http.StatusInternalServerError, "error", errorView{
		base: base{Title: "Error", Alert: msgUnexpected},
		Back: session.RouteHome,
	})
}

func (pc *Controller) badRequest(c *gin.Context, msg, back string) {
	pc.render(c, http.StatusBadRequest, "error", errorView{
		base: base{Title: "Error", Alert: msg},
		Back: back,
	})
}

// apiMessage returns the server-provided message of a non-2xx response.
func apiMessage(err error) (string, bool) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}

func formString(c *gin.Context, key string) string {
	return strings.TrimSpace(c.PostForm(key))
}
