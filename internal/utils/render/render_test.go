package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kiber-king/foodgram-project-react/domain"
)

var sampleItems = []domain.ShoppingListItem{
	{Name: "flour", MeasurementUnit: "g", Amount: 200},
	{Name: "milk", MeasurementUnit: "ml", Amount: 300},
}

func TestTextRenderer(t *testing.T) {
	body, contentType, filename, err := NewTextRenderer().Render("Alice", sampleItems)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if contentType != "text/plain; charset=utf-8" || filename != "shopping_list.txt" {
		t.Fatalf("unexpected meta: %s %s", contentType, filename)
	}

	text := string(body)
	if !strings.Contains(text, "Hi, Alice!") {
		t.Fatalf("missing greeting:\n%s", text)
	}
	if !strings.Contains(text, "flour (g) - 200") || !strings.Contains(text, "milk (ml) - 300") {
		t.Fatalf("missing items:\n%s", text)
	}
}

func TestPDFRenderer(t *testing.T) {
	body, contentType, filename, err := NewPDFRenderer().Render("Alice", sampleItems)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if contentType != "application/pdf" || filename != "shopping_list.pdf" {
		t.Fatalf("unexpected meta: %s %s", contentType, filename)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestNewRenderer_FormatSelection(t *testing.T) {
	if _, ok := NewRenderer("pdf").(*pdfRenderer); !ok {
		t.Fatal("expected pdf renderer for format pdf")
	}
	if _, ok := NewRenderer("").(*textRenderer); !ok {
		t.Fatal("expected text renderer by default")
	}
}
