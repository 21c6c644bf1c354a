package pages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/seats"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

// Home renders the search form. Each visit asks the backend to reseed its
// demo data; the outcome is only logged.
func (pc *Controller) Home(c *gin.Context) {
	ctx := c.Request.Context()
	reqID := middleware.GetRequestID(c)
	if err := pc.backend.InitDB(ctx); err != nil {
		utils.LogError(reqID, "pages", "init_db", err)
	} else {
		utils.LogEvent(reqID, "pages", "init_db", "database initialized")
	}

	q, _ := pc.session(c).SearchQuery(ctx)
	pc.render(c, http.StatusOK, "home", homeView{base: base{Title: "Search"}, Query: q})
}

func (pc *Controller) SubmitSearch(c *gin.Context) {
	q := models.SearchQuery{
		Origin:      utils.NormalizeSpace(c.PostForm("from")),
		Destination: utils.NormalizeSpace(c.PostForm("to")),
		Date:        formString(c, "date"),
	}
	if q.Origin == "" || q.Destination == "" || q.Date == "" {
		pc.render(c, http.StatusBadRequest, "home", homeView{
			base:  base{Title: "Search", Alert: "Please enter where from, where to and the travel date."},
			Query: q,
		})
		return
	}
	if err := pc.session(c).SaveSearchQuery(c.Request.Context(), q); err != nil {
		pc.fail(c, "search", err)
		return
	}
	c.Redirect(http.StatusSeeOther, session.RouteResults)
}

// Results lists the buses for the stored query. Any backend failure shows
// the load error; an empty list shows the no-buses message.
func (pc *Controller) Results(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := pc.session(c).Results(ctx)
	if err != nil {
		pc.fail(c, "results", err)
		return
	}

	view := resultsView{base: base{Title: "Results"}, Query: st.Query}
	buses, err := pc.backend.SearchBuses(ctx, st.Query)
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "pages", "search_buses", err)
		view.LoadError = msgBusesFailed
	} else {
		view.Buses = buses
	}
	pc.render(c, http.StatusOK, "results", view)
}

// SelectBus stores the chosen option and starts a fresh seat selection.
func (pc *Controller) SelectBus(c *gin.Context) {
	ctx := c.Request.Context()
	sess := pc.session(c)
	if _, err := sess.Results(ctx); err != nil {
		pc.fail(c, "select_bus", err)
		return
	}

	id, err := strconv.ParseInt(formString(c, "id"), 10, 64)
	if err != nil || id <= 0 {
		pc.badRequest(c, "Please choose a bus from the list.", session.RouteResults)
		return
	}
	price, err := utils.ParseAmount(c.PostForm("price"))
	if err != nil || price < 0 {
		price = 0
	}
	bus := models.SelectedBus{ID: id, Name: formString(c, "name"), Price: price}

	if err := sess.SaveSelectedBus(ctx, bus); err != nil {
		pc.fail(c, "select_bus", err)
		return
	}
	if err := seats.Reset(ctx, sess); err != nil {
		pc.fail(c, "select_bus", err)
		return
	}
	// no toggles until the seat map of this bus has been fetched
	if err := sess.SaveSeatCatalog(ctx, []models.Seat{}); err != nil {
		pc.fail(c, "select_bus", err)
		return
	}
	c.Redirect(http.StatusSeeOther, session.RouteSeats)
}
