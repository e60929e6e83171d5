// Package pdf renders a plan as a one-document PDF export.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"tripplanner/internal/domain"
)

// Render returns the PDF bytes for p. Nothing is written to disk.
func Render(p domain.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("AI Travel Planner - "+p.Request.Destination, true)
	pdf.AddPage()
	// core fonts are cp1252; model output routinely contains non-ASCII punctuation
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// header bar
	pdf.SetFillColor(15, 32, 39)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(120, 10, "AI Travel Planner", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(255, 126, 179)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr("Plan "+p.ID+" - generated "+p.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC")), "", 1, "L", false, 0, "")
	pdf.SetY(36)
	pdf.SetTextColor(0, 0, 0)

	section := func(title string) {
		pdf.SetFillColor(32, 58, 67)
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
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	req, est := p.Request, p.Estimate

	section("Trip")
	row("Destination", fmt.Sprintf("%s (%s)", req.Destination, req.Region))
	row("Interests", req.Interests)
	row("Duration", fmt.Sprintf("%d days", req.Days))
	row("Budget category", string(req.Tier))
	pdf.Ln(4)

	section("Cost Estimate")
	c := est.Components
	row("Lodging / day", domain.FormatAmount(c.Lodging))
	row("Food / day", domain.FormatAmount(c.Food))
	row("Local transport / day", domain.FormatAmount(c.Transport))
	row("Attractions / day", domain.FormatAmount(c.Attractions))
	row("Miscellaneous / day", domain.FormatAmount(c.Misc))
	regionNote := "x" + est.RegionFactor.String()
	if est.RegionFallback {
		regionNote += " (unlisted region)"
	}
	row("Region factor", regionNote)
	row("Season", fmt.Sprintf("%s season (x%s)", est.Season, est.SeasonFactor))
	row("Per day", domain.FormatAmount(est.DailyCost))

	pdf.SetFillColor(255, 126, 179)
	pdf.SetTextColor(15, 32, 39)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, domain.FormatAmount(est.Total), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	section("Itinerary")
	pdf.SetFont("Helvetica", "", 10)
	if p.Failure != nil {
		pdf.SetTextColor(170, 40, 40)
		pdf.MultiCell(170, 5, tr(p.Failure.UserMessage()), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.MultiCell(170, 5, tr(p.Itinerary), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(170, 4, "Estimates use fixed per-day rates with region and season multipliers. "+
		"They are not quotes. Powered by AI | Designed for the Future!", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
