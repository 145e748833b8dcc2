package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/utils"
)

// The core Arial font is latin-1 only, so amounts are rendered with an ASCII
// currency marker instead of the rupee sign.
const pdfCurrencySymbol = "Rs. "

// PDFRenderer renders settlement receipts with gofpdf.
type PDFRenderer struct {
	HotelName string
}

// NewPDFRenderer creates a receipt renderer. hotelName appears in the header.
func NewPDFRenderer(hotelName string) *PDFRenderer {
	if hotelName == "" {
		hotelName = "Front Desk"
	}
	return &PDFRenderer{HotelName: hotelName}
}

// Render produces the settlement receipt PDF.
func (r *PDFRenderer) Render(summary domain.SettlementSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Settlement Receipt", r.HotelName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", summary.SettlementDate.Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Stay Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Stay Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Guest: %s", summary.GuestName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Room: %s", summary.RoomNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Folio: %s", summary.FolioNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice: %s", summary.InvoiceNumber), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amounts
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Settlement", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 8, "Total Charges", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, utils.FormatCurrency(summary.TotalAmount, pdfCurrencySymbol), "1", 1, "R", false, 0, "")
	pdf.CellFormat(95, 8, "Total Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, utils.FormatCurrency(summary.PaidAmount, pdfCurrencySymbol), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, "Balance", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, utils.FormatCurrency(summary.BalanceAmount, pdfCurrencySymbol), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "This is a system generated receipt.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
