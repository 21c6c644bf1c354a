package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/utils"
)

type Route struct {
	ID            int64
	FromLocation  string
	ToLocation    string
	DepartureTime string
	Price         float64
	Date          time.Time
	BusID         int64
	BusName       string
}

type RouteRepository struct {
	DB intdb.DBTX
}

func (r RouteRepository) Insert(ctx context.Context, rt Route) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes (from_location, to_location, departure_time, price, date, bus_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rt.FromLocation, rt.ToLocation, rt.DepartureTime, rt.Price, utils.FormatDate(rt.Date), rt.BusID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const routeColumns = `r.id, r.from_location, r.to_location, r.departure_time, r.price, r.date, r.bus_id, b.name`

func scanRoute(s interface{ Scan(...any) error }) (Route, error) {
	var rt Route
	err := s.Scan(&rt.ID, &rt.FromLocation, &rt.ToLocation, &rt.DepartureTime, &rt.Price, &rt.Date, &rt.BusID, &rt.BusName)
	return rt, err
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (Route, error) {
	rt, err := scanRoute(r.DB.QueryRowContext(ctx, `SELECT `+routeColumns+`
		FROM routes r JOIN buses b ON b.id = r.bus_id
		WHERE r.id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return rt, domain.NotFoundError{Resource: "route", Err: err}
	}
	return rt, err
}

// Search lists every route between two places regardless of date, oldest
// first.
func (r RouteRepository) Search(ctx context.Context, from, to string) ([]Route, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+routeColumns+`
		FROM routes r JOIN buses b ON b.id = r.bus_id
		WHERE r.from_location=? AND r.to_location=?
		ORDER BY r.id ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
