package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"

	"github.com/phpdave11/gofpdf"
)

// BuildAnalyticsReport renders the analytics page as a downloadable PDF.
// Amounts use an "NGN" prefix because the core PDF fonts have no naira
// glyph.
func BuildAnalyticsReport(summary *models.AnalyticsSummary, rng upstream.DateRange, generatedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("EcoCruise Analytics Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EcoCruise Analytics Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Period: "+rng.Label())
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Platform Overview")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	stats := []string{
		fmt.Sprintf("Customers            : %d", summary.TotalCustomers),
		fmt.Sprintf("Drivers              : %d", summary.TotalDrivers),
		fmt.Sprintf("Admins               : %d", summary.TotalAdmins),
		fmt.Sprintf("Banned users         : %d", summary.TotalBanned),
		fmt.Sprintf("Routes               : %d", summary.TotalRoutes),
		fmt.Sprintf("Rides                : %d", summary.TotalRides),
		fmt.Sprintf("Active drivers       : %d", summary.ActiveDrivers),
		fmt.Sprintf("Total revenue        : %s", formatNGN(summary.TotalRevenue)),
		fmt.Sprintf("Driver withdrawals   : %s", formatNGN(summary.TotalDriverWithdrawals)),
		fmt.Sprintf("Paid to drivers      : %s", formatNGN(summary.TotalPaidToDrivers)),
	}
	for _, line := range stats {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Driver Payout Breakdown")
	pdf.Ln(9)

	if len(summary.DriverPayoutBreakdown) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "No payouts in this period.")
		pdf.Ln(6)
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 7, "Driver", "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, "Email", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, "Total Paid", "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, "Last Paid", "1", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, entry := range summary.DriverPayoutBreakdown {
			lastPaid := "-"
			if !entry.LastPaid.IsZero() {
				lastPaid = entry.LastPaid.Format("2006-01-02")
			}
			pdf.CellFormat(70, 7, clip(entry.Name, 38), "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, clip(entry.Email, 34), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, formatNGN(entry.TotalPaid), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, lastPaid, "1", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ecocruise_analytics_%s.pdf", generatedAt.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func formatNGN(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return "NGN " + sign + b.String() + "." + parts[1]
}

// clip shortens s to at most max runes. Clipping by rune keeps multi-byte
// names from being cut mid-character.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
