package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

type SearchService struct {
	DB        *sql.DB
	RequestID string
}

// Search lists one option per bus and departure time between two places.
// Routes are matched regardless of date; the searched date is echoed back.
func (s SearchService) Search(ctx context.Context, q models.SearchQuery) ([]models.BusOption, error) {
	from := strings.TrimSpace(q.Origin)
	to := strings.TrimSpace(q.Destination)
	date := strings.TrimSpace(q.Date)
	if from == "" || to == "" || date == "" {
		return nil, domain.ValidationError{Msg: "Missing required parameters"}
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Msg: "Invalid date format. Use YYYY-MM-DD", Err: err}
	}

	routes, err := repositories.RouteRepository{DB: dbOr(s.DB)}.Search(ctx, from, to)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to search buses", Err: err}
	}

	seen := make(map[string]struct{}, len(routes))
	out := make([]models.BusOption, 0, len(routes))
	for _, rt := range routes {
		key := fmt.Sprintf("%d_%s", rt.BusID, rt.DepartureTime)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, models.BusOption{
			ID:    rt.ID,
			Name:  rt.BusName,
			Time:  rt.DepartureTime,
			Price: rt.Price,
			From:  rt.FromLocation,
			To:    rt.ToLocation,
			Date:  utils.FormatDate(day),
		})
	}

	utils.LogEvent(s.RequestID, "search", "buses", fmt.Sprintf("%s-%s %s found=%d", from, to, date, len(out)))
	return out, nil
}
