package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/utils"
)

// TicketFilename is the name of the plain-text receipt download.
const TicketFilename = "Bus_Ticket.txt"

type ticketLine struct {
	Label, Value string
}

func ticketLines(c models.ConfirmationRecord) []ticketLine {
	return []ticketLine{
		{"Name", c.Passenger.Name},
		{"Email", c.Passenger.Email},
		{"Phone", c.Passenger.Phone},
		{"Bus", c.Route.BusName},
		{"Route", fmt.Sprintf("%s to %s", c.Route.FromLocation, c.Route.ToLocation)},
		{"Date", c.Route.Date},
		{"Time", c.Route.DepartureTime},
		{"Seats", utils.JoinSeatList(c.SeatNumbers)},
		{"Total Amount Paid", utils.FormatRupee(c.TotalPrice)},
		{"Payment Method", c.PaymentMethod},
		{"Payment Status", c.PaymentStatus},
		{"Booking Date", c.BookingDate},
	}
}

// BuildTicketText renders the receipt as "Label: value" lines.
func BuildTicketText(c models.ConfirmationRecord) string {
	var b strings.Builder
	for _, l := range ticketLines(c) {
		fmt.Fprintf(&b, "%s: %s\n", l.Label, utils.Fallback(l.Value, "-"))
	}
	return b.String()
}

// BuildETicketPDF renders the receipt as a one-page A4 PDF.
func BuildETicketPDF(c models.ConfirmationRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "HOPONHUB E-TICKET")
	pdf.Ln(12)

	// core fonts are cp1252; the rupee sign is not representable.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range ticketLines(c) {
		v := utils.Fallback(l.Value, "-")
		if l.Label == "Total Amount Paid" {
			v = "Rs. " + utils.FormatAmount(c.TotalPrice)
		}
		pdf.Cell(0, 7, tr(fmt.Sprintf("%-18s: %s", l.Label, v)))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry this ticket and a valid photo ID when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	first := int64(0)
	if len(c.BookingIDs) > 0 {
		first = c.BookingIDs[0]
	}
	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", first, utils.SafeFilenamePart(c.Passenger.Name))
	return buf.Bytes(), filename, nil
}
