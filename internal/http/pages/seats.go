package pages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/seats"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

// Seats renders the seat map of the selected bus. The fetched price and
// catalog are stored so later toggles are priced and validated.
func (pc *Controller) Seats(c *gin.Context) {
	ctx := c.Request.Context()
	sess := pc.session(c)
	st, err := sess.Seats(ctx)
	if err != nil {
		pc.fail(c, "seats", err)
		return
	}

	view := seatsView{base: base{Title: "Seats"}, Bus: st.Bus}
	list, err := pc.backend.ListSeats(ctx, st.Bus.ID)
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "pages", "list_seats", err)
		view.LoadError = msgSeatsFailed
	} else {
		if err := sess.SaveSeatPrice(ctx, list.Price); err != nil {
			pc.fail(c, "seats", err)
			return
		}
		if err := sess.SaveSeatCatalog(ctx, list.Seats); err != nil {
			pc.fail(c, "seats", err)
			return
		}
	}

	tr, err := seats.Load(ctx, sess)
	if err != nil {
		pc.fail(c, "seats", err)
		return
	}
	if view.LoadError == "" {
		// The refetched map and price are authoritative for the stored selection.
		if dropped := tr.Prune(); len(dropped) > 0 {
			view.Alert = "No longer available and removed from your selection: " +
				utils.JoinSeatList(models.SeatNumbers(dropped))
		}
		if err := seats.Flush(ctx, sess, tr); err != nil {
			pc.fail(c, "seats", err)
			return
		}
	}
	for _, s := range list.Seats {
		view.Seats = append(view.Seats, seatItem{
			ID:        s.ID,
			Number:    s.SeatNumber.String(),
			Available: s.IsAvailable,
			Selected:  tr.IsSelected(s.ID),
		})
	}
	fillSelection(&view, tr)
	pc.render(c, http.StatusOK, "seats", view)
}

func fillSelection(view *seatsView, tr *seats.Tracker) {
	view.SelectedList = utils.JoinSeatList(models.SeatNumbers(tr.Selected()))
	view.UnitPrice = tr.UnitPrice()
	view.Total = tr.Total()
	view.CanProceed = tr.CanProceed()
}

type toggleResponse struct {
	SeatID       int64    `json:"seat_id"`
	Selected     bool     `json:"selected"`
	SeatNumbers  []string `json:"seat_numbers"`
	SelectedList string   `json:"selected_list"`
	TotalPrice   float64  `json:"total_price"`
	CanProceed   bool     `json:"can_proceed"`
}

// ToggleSeat flips one seat. JSON clients get the new selection; browsers
// are sent back to the seat map.
func (pc *Controller) ToggleSeat(c *gin.Context) {
	ctx := c.Request.Context()
	sess := pc.session(c)
	if _, err := sess.Seats(ctx); err != nil {
		pc.fail(c, "toggle_seat", err)
		return
	}

	id, err := strconv.ParseInt(formString(c, "seat_id"), 10, 64)
	if err != nil || id <= 0 {
		pc.rejectToggle(c, "Please choose a seat from the seat map.")
		return
	}

	tr, err := seats.Load(ctx, sess)
	if err != nil {
		pc.fail(c, "toggle_seat", err)
		return
	}
	selected, err := tr.Toggle(id, c.PostForm("seat_number"))
	if err != nil {
		if domain.IsValidation(err) {
			pc.rejectToggle(c, err.Error())
			return
		}
		pc.fail(c, "toggle_seat", err)
		return
	}
	if err := seats.Flush(ctx, sess, tr); err != nil {
		pc.fail(c, "toggle_seat", err)
		return
	}

	if wantsJSON(c) {
		numbers := models.SeatNumbers(tr.Selected())
		c.JSON(http.StatusOK, toggleResponse{
			SeatID:       id,
			Selected:     selected,
			SeatNumbers:  numbers,
			SelectedList: utils.JoinSeatList(numbers),
			TotalPrice:   tr.Total(),
			CanProceed:   tr.CanProceed(),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, session.RouteSeats)
}

func (pc *Controller) rejectToggle(c *gin.Context, msg string) {
	if wantsJSON(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	pc.badRequest(c, msg, session.RouteSeats)
}

// ProceedToBooking continues only with at least one seat selected.
func (pc *Controller) ProceedToBooking(c *gin.Context) {
	if _, err := pc.session(c).Booking(c.Request.Context()); err != nil {
		pc.fail(c, "proceed", err)
		return
	}
	c.Redirect(http.StatusSeeOther, session.RouteBooking)
}
