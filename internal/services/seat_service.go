package services

import (
	"context"
	"database/sql"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
)

type SeatService struct {
	DB *sql.DB
}

// ListSeats returns the seat map of a route. A seat is available when no
// booking on that route holds it.
func (s SeatService) ListSeats(ctx context.Context, routeID int64) (models.SeatList, error) {
	db := dbOr(s.DB)
	rt, err := repositories.RouteRepository{DB: db}.GetByID(ctx, routeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.SeatList{}, err
		}
		return models.SeatList{}, domain.InternalError{Msg: "Failed to get seats", Err: err}
	}
	seats, err := repositories.SeatRepository{DB: db}.ListForRoute(ctx, rt.ID, rt.BusID)
	if err != nil {
		return models.SeatList{}, domain.InternalError{Msg: "Failed to get seats", Err: err}
	}
	return models.SeatList{
		RouteID: rt.ID,
		BusName: rt.BusName,
		Price:   rt.Price,
		Seats:   seats,
	}, nil
}
