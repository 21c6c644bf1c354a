package pages

import (
	"embed"
	"html/template"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"rupee":    utils.FormatRupee,
	"amount":   utils.FormatAmount,
	"seatList": utils.JoinSeatList,
}

func parseTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// base is embedded in every view.
type base struct {
	Title string
	Alert string
}

type homeView struct {
	base
	Query models.SearchQuery
}

type resultsView struct {
	base
	Query     models.SearchQuery
	Buses     []models.BusOption
	LoadError string
}

type seatItem struct {
	ID        int64
	Number    string
	Available bool
	Selected  bool
}

type seatsView struct {
	base
	Bus          models.SelectedBus
	Seats        []seatItem
	LoadError    string
	SelectedList string
	UnitPrice    float64
	Total        float64
	CanProceed   bool
}

type bookingView struct {
	base
	SelectedList string
	Total        float64
	Passenger    models.PassengerDetails
}

type paymentView struct {
	base
	Passenger models.PassengerDetails
	Total     float64
	Methods   []string
	Method    string
	ShowCard  bool
}

type confirmationView struct {
	base
	Confirmation models.ConfirmationRecord
}

type preconditionView struct {
	base
	Key   string
	Route string
	Step  string
}

type errorView struct {
	base
	Back string
}
