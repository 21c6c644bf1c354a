package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

var seedBuses = []string{"Orange Travels", "Red Bus Express", "Green Line"}

const (
	seedCapacity = 40
	seedDays     = 7
	seatsPerRow  = 4
)

type routeTemplate struct {
	From, To, Time string
	Price          float64
	Bus            int // index into seedBuses
}

var seedRoutes = []routeTemplate{
	{"Delhi", "Mumbai", "08:00", 500, 0},
	{"Delhi", "Mumbai", "10:00", 650, 1},
	{"Delhi", "Mumbai", "14:00", 700, 2},
	{"Mumbai", "Bangalore", "09:00", 600, 0},
	{"Mumbai", "Bangalore", "11:00", 750, 1},
	{"Bangalore", "Chennai", "08:30", 450, 2},
	{"Bangalore", "Chennai", "12:30", 550, 0},
	{"Chennai", "Hyderabad", "07:00", 550, 1},
	{"Chennai", "Hyderabad", "15:00", 650, 2},
	{"Hyderabad", "Delhi", "19:00", 800, 0},
	{"Hyderabad", "Delhi", "21:00", 950, 1},
}

type SeedResult struct {
	Buses  int `json:"buses"`
	Routes int `json:"routes"`
	Seats  int `json:"seats"`
}

// SeedService wipes the catalogue and loads the demo buses, routes and seats.
type SeedService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s SeedService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SeatLabels returns n labels in rows of four: A1..A4, B1..B4, ...
func SeatLabels(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		row := rune('A' + i/seatsPerRow)
		out = append(out, fmt.Sprintf("%c%d", row, i%seatsPerRow+1))
	}
	return out
}

func (s SeedService) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	db := dbOr(s.DB)
	if db == nil {
		return res, fmt.Errorf("database not connected")
	}
	if err := repositories.EnsureSchema(ctx, db); err != nil {
		return res, err
	}

	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	labels := SeatLabels(seedCapacity)

	err := intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repositories.ClearAll(ctx, tx); err != nil {
			return err
		}

		busRepo := repositories.BusRepository{DB: tx}
		busIDs := make([]int64, 0, len(seedBuses))
		for _, name := range seedBuses {
			id, err := busRepo.Insert(ctx, name, seedCapacity)
			if err != nil {
				return fmt.Errorf("insert bus %s: %w", name, err)
			}
			busIDs = append(busIDs, id)
		}

		routeRepo := repositories.RouteRepository{DB: tx}
		for day := 0; day < seedDays; day++ {
			date := today.AddDate(0, 0, day)
			for _, t := range seedRoutes {
				_, err := routeRepo.Insert(ctx, repositories.Route{
					FromLocation:  t.From,
					ToLocation:    t.To,
					DepartureTime: t.Time,
					Price:         t.Price,
					Date:          date,
					BusID:         busIDs[t.Bus],
				})
				if err != nil {
					return fmt.Errorf("insert route %s-%s: %w", t.From, t.To, err)
				}
				res.Routes++
			}
		}

		seatRepo := repositories.SeatRepository{DB: tx}
		for _, id := range busIDs {
			if err := seatRepo.InsertSeats(ctx, id, labels); err != nil {
				return fmt.Errorf("insert seats for bus %d: %w", id, err)
			}
			res.Seats += len(labels)
		}
		res.Buses = len(busIDs)
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "seed", "init_db", err)
		return SeedResult{}, err
	}

	utils.LogEvent(s.RequestID, "seed", "init_db", fmt.Sprintf("buses=%d routes=%d seats=%d", res.Buses, res.Routes, res.Seats))
	return res, nil
}
