package renderer

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/prometalle/metalsim"
)

// WritePDF renders the simulation report as a one-page PDF document.
func WritePDF(w io.Writer, r *metalsim.SimulationReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Name, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Simulation from %s to %s in %s", r.Window.From, r.Window.To, r.Currency), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Final value", r.Performance.FinalValue.String()},
	}
	if r.Liquidation.IsPositive() {
		summary = append(summary, [2]string{"Sale value after dealer spread", r.Liquidation.String()})
	}
	summary = append(summary,
		[2]string{"Invested", r.Performance.Invested.String()},
		[2]string{"Storage fees paid", r.Performance.FeesPaid.String()},
		[2]string{"Profit/Loss", r.Performance.ProfitLoss.String()},
		[2]string{"ROI", r.Performance.ROI.SignedString()},
		[2]string{"Annualized return", r.Performance.Annualized.SignedString()},
		[2]string{"Inflation-adjusted ROI", r.RealReturn.SignedString()},
	)
	if r.Risk != nil {
		summary = append(summary,
			[2]string{"Volatility", r.Risk.Volatility.String()},
			[2]string{"Max drawdown", r.Risk.MaxDrawdown.String()},
		)
	}
	for _, row := range summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Final Positions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	for _, head := range []string{"Metal", "Quantity", "Value", "Weight"} {
		pdf.CellFormat(45, 6, head, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, pos := range r.Positions {
		pdf.CellFormat(45, 6, pos.Metal.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, pos.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, pos.Value.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, pos.Weight.String(), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
