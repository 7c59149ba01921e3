package render

import (
	"fmt"
	"strings"

	"github.com/kiber-king/foodgram-project-react/domain"
)

// ShoppingListRenderer turns the aggregated shopping list into a
// downloadable document. Implementations return the document bytes,
// its content type and the attachment filename.
type ShoppingListRenderer interface {
	Render(firstName string, items []domain.ShoppingListItem) ([]byte, string, string, error)
}

func NewRenderer(format string) ShoppingListRenderer {
	if format == "pdf" {
		return NewPDFRenderer()
	}
	return NewTextRenderer()
}

type textRenderer struct{}

func NewTextRenderer() ShoppingListRenderer {
	return &textRenderer{}
}

func (r *textRenderer) Render(firstName string, items []domain.ShoppingListItem) ([]byte, string, string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hi, %s!\n\n", firstName))
	b.WriteString("Here is your shopping list for today.\n\nYou need to buy:\n\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf(" - %s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount))
	}
	b.WriteString("\nFoodgram.")
	return []byte(b.String()), "text/plain; charset=utf-8", "shopping_list.txt", nil
}
