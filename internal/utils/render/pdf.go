package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/kiber-king/foodgram-project-react/domain"
)

type pdfRenderer struct{}

func NewPDFRenderer() ShoppingListRenderer {
	return &pdfRenderer{}
}

func (r *pdfRenderer) Render(firstName string, items []domain.ShoppingListItem) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Hi, %s!", firstName))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Here is your shopping list for today. You need to buy:")
	pdf.Ln(12)

	for _, item := range items {
		pdf.Cell(0, 7, fmt.Sprintf("- %s (%s) - %d", item.Name, item.MeasurementUnit, item.Amount))
		pdf.Ln(7)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Foodgram.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), "application/pdf", "shopping_list.pdf", nil
}
