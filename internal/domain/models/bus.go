package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SearchQuery is what the user typed on the home page.
type SearchQuery struct {
	Origin      string `json:"from"`
	Destination string `json:"to"`
	Date        string `json:"date"`
}

// BusOption is one result row of a bus search. ID is the route id.
type BusOption struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Time  string  `json:"time"`
	Price float64 `json:"price"`
	From  string  `json:"from,omitempty"`
	To    string  `json:"to,omitempty"`
	Date  string  `json:"date,omitempty"`
}

// SelectedBus is the bus option the user picked on the results page.
type SelectedBus struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SeatNumber accepts both JSON strings and numbers.
type SeatNumber string

func (n *SeatNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = SeatNumber(strings.TrimSpace(s))
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("seat_number: %w", err)
	}
	if i, err := f.Int64(); err == nil {
		*n = SeatNumber(strconv.FormatInt(i, 10))
		return nil
	}
	*n = SeatNumber(f.String())
	return nil
}

func (n SeatNumber) String() string { return string(n) }

// Seat is one cell of a bus seat map.
type Seat struct {
	ID          int64      `json:"id"`
	SeatNumber  SeatNumber `json:"seat_number"`
	IsAvailable bool       `json:"is_available"`
}

// SeatList is the seats payload for one route.
type SeatList struct {
	RouteID int64   `json:"route_id,omitempty"`
	BusName string  `json:"bus_name,omitempty"`
	Price   float64 `json:"price"`
	Seats   []Seat  `json:"seats"`
}

// SelectedSeat is one entry of the ordered seat selection.
type SelectedSeat struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

// SeatNumbers returns the numbers of seats in selection order.
func SeatNumbers(seats []SelectedSeat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Number)
	}
	return out
}
