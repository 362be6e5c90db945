// Package confirmation renders committed bookings as PDF confirmations.
package confirmation

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// GeneratePDFBytes renders a booking confirmation and returns raw bytes
// (no filesystem needed).
func GeneratePDFBytes(record *models.BookingRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "EasyHoliday", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Booking Confirmation", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Booking ───────────────────────────────────────────────
	sectionHeader("Booking")
	row("Booking ID", record.ID)
	row("Booked at", record.CreatedAt.Format("02 Jan 2006, 15:04 UTC"))
	row("Transaction", record.PaymentToken)
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	route := record.Origin
	for _, city := range record.Cities {
		route += " - " + city
	}
	route += " - " + record.Origin
	row("Route", route)
	row("Country", record.Country)
	row("Start", record.StartDate.Format("02 Jan 2006 (Mon)"))
	row("End", record.EndDate.Format("02 Jan 2006 (Mon)"))
	pdf.Ln(4)

	// ── Flights ───────────────────────────────────────────────
	sectionHeader("Flights")
	for _, pair := range record.Flights {
		if pair.Outbound != nil {
			row(pair.From+" to "+pair.To, flightLine(pair.Outbound))
		}
		if pair.Return != nil {
			row(pair.To+" to "+pair.From, flightLine(pair.Return))
		}
	}
	pdf.Ln(4)

	// ── Accommodation ─────────────────────────────────────────
	sectionHeader("Accommodation")
	for _, stay := range record.Stays {
		nights := fmt.Sprintf("%d night(s)", stay.Nights)
		value := fmt.Sprintf("%s, %s, %s/night", stay.Hotel.Name, nights, FormatIDR(stay.Hotel.PricePerNightIDR))
		if stay.Downgraded {
			value += " (adjusted category)"
		}
		row(stay.City, value)
	}
	pdf.Ln(4)

	// ── Cost Summary ──────────────────────────────────────────
	sectionHeader("Cost Summary")
	row("Flights", FormatIDR(record.Cost.FlightsIDR))
	row("Accommodation", FormatIDR(record.Cost.AccommodationIDR))
	row("Buffer", FormatIDR(record.Cost.BufferIDR))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL CHARGED", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, FormatIDR(record.Cost.GrandTotalIDR), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"EasyHoliday Vacation Planner - keep this confirmation for check-in",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func flightLine(f *models.FlightOffering) string {
	return fmt.Sprintf("%s, %s, %s", f.Carrier, f.Date.Format("02 Jan 2006"), FormatIDR(f.PriceIDR))
}

// FormatIDR renders an integer rupiah amount with dot thousand separators,
// e.g. 3060000 -> "Rp 3.060.000".
func FormatIDR(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
