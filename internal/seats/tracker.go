// Package seats tracks the seats a user has toggled on the seat map.
package seats

import (
	"context"
	"fmt"
	"strings"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/session"
)

// Tracker holds the ordered seat selection of one session and its total.
// The total is always len(selected) * unitPrice.
type Tracker struct {
	selected  []models.SelectedSeat
	unitPrice float64
	catalog   map[int64]models.Seat
}

// New starts a tracker with an existing selection. Duplicate ids are dropped.
func New(unitPrice float64, selected []models.SelectedSeat) *Tracker {
	t := &Tracker{unitPrice: unitPrice}
	for _, s := range selected {
		if !t.IsSelected(s.ID) {
			t.selected = append(t.selected, s)
		}
	}
	return t
}

// WithCatalog restricts toggles to the given seats; unavailable seats are
// inert. A nil catalog disables the check.
func (t *Tracker) WithCatalog(seats []models.Seat) *Tracker {
	if seats == nil {
		t.catalog = nil
		return t
	}
	t.catalog = make(map[int64]models.Seat, len(seats))
	for _, s := range seats {
		t.catalog[s.ID] = s
	}
	return t
}

// Toggle selects seatID if absent and deselects it if present. It reports
// whether the seat is selected afterwards. Deselecting is always allowed;
// the catalog only gates additions.
func (t *Tracker) Toggle(seatID int64, seatNumber string) (bool, error) {
	if i := t.index(seatID); i >= 0 {
		t.selected = append(t.selected[:i], t.selected[i+1:]...)
		return false, nil
	}

	seatNumber = strings.TrimSpace(seatNumber)
	if t.catalog != nil {
		seat, ok := t.catalog[seatID]
		if !ok {
			return false, domain.ValidationError{Field: "seat_id", Msg: fmt.Sprintf("seat %d is not on this bus", seatID)}
		}
		if !seat.IsAvailable {
			return false, domain.ValidationError{Field: "seat_id", Msg: fmt.Sprintf("seat %s is already booked", seat.SeatNumber)}
		}
		seatNumber = seat.SeatNumber.String()
	}
	t.selected = append(t.selected, models.SelectedSeat{ID: seatID, Number: seatNumber})
	return true, nil
}

// Prune drops selected seats the catalog no longer offers and returns them.
// Without a catalog it is a no-op.
func (t *Tracker) Prune() []models.SelectedSeat {
	if t.catalog == nil {
		return nil
	}
	var kept, dropped []models.SelectedSeat
	for _, s := range t.selected {
		if seat, ok := t.catalog[s.ID]; ok && seat.IsAvailable {
			kept = append(kept, s)
			continue
		}
		dropped = append(dropped, s)
	}
	t.selected = kept
	return dropped
}

func (t *Tracker) index(seatID int64) int {
	for i, s := range t.selected {
		if s.ID == seatID {
			return i
		}
	}
	return -1
}

func (t *Tracker) IsSelected(seatID int64) bool { return t.index(seatID) >= 0 }

// Selected returns a copy of the selection in selection order.
func (t *Tracker) Selected() []models.SelectedSeat {
	out := make([]models.SelectedSeat, len(t.selected))
	copy(out, t.selected)
	return out
}

func (t *Tracker) Count() int { return len(t.selected) }

func (t *Tracker) UnitPrice() float64 { return t.unitPrice }

func (t *Tracker) Total() float64 { return float64(len(t.selected)) * t.unitPrice }

// CanProceed reports whether the booking step may start.
func (t *Tracker) CanProceed() bool { return len(t.selected) > 0 }

// Load rebuilds the tracker of sess. A missing seat price counts as 0.
func Load(ctx context.Context, sess *session.Session) (*Tracker, error) {
	price, _, err := sess.SeatPrice(ctx)
	if err != nil {
		return nil, err
	}
	selected, _, err := sess.Selection(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := sess.SeatCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return New(price, selected).WithCatalog(catalog), nil
}

// Flush writes the selection and total back to sess.
func Flush(ctx context.Context, sess *session.Session, t *Tracker) error {
	return sess.SaveSelection(ctx, t.Selected(), t.Total())
}

// Reset clears the selection of sess.
func Reset(ctx context.Context, sess *session.Session) error {
	return sess.SaveSelection(ctx, nil, 0)
}
