package export

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"labstock/inventory"
)

var pdfColumnWidths = []float64{30, 30, 60, 15, 15, 15, 22, 15, 22, 25}

// WritePDF renders the items as a landscape A4 table and returns the
// created file path.
func WritePDF(dir string, items []inventory.Item) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Stock Items Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Stock Items Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(220, 220, 220)
		for i, h := range inventory.Headers() {
			pdf.CellFormat(pdfColumnWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 8)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for _, item := range items {
		if pdf.GetY() > pageHeight-bottom-10 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 8)
		}
		for i, cell := range item.Row() {
			pdf.CellFormat(pdfColumnWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	path := UniquePath(dir, "pdf_export", "pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	return path, nil
}
