package shoppinglist

import (
	"bytes"
	"fmt"

	"recipebook/internal/config"
	"recipebook/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer turns aggregated ingredient totals into a printable document.
// The cursor is tracked manually so the page break threshold follows the
// configured layout instead of a fixed constant.
type PDFRenderer struct {
	layout config.PDFLayout
}

func NewPDFRenderer(layout config.PDFLayout) *PDFRenderer {
	return &PDFRenderer{layout: layout}
}

func (p *PDFRenderer) Render(items []repository.IngredientTotal) ([]byte, error) {
	l := p.layout

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: l.PageW, Ht: l.PageH},
	})
	pdf.SetMargins(l.LeftMargin, l.TopMargin, l.LeftMargin)
	pdf.SetAutoPageBreak(false, l.BottomMargin)
	pdf.AddPage()

	pdf.SetFont(l.FontFamily, "B", l.TitleSize)
	pdf.SetXY(l.LeftMargin, l.TopMargin)
	pdf.CellFormat(0, l.LineHeight*1.5, l.Title, "", 0, "C", false, 0, "")

	y := l.TopMargin + l.LineHeight*3
	pdf.SetFont(l.FontFamily, "", l.BodySize)

	limit := l.PageH - l.BottomMargin
	for i, item := range items {
		if y+l.LineHeight > limit {
			pdf.AddPage()
			y = l.TopMargin
		}
		line := fmt.Sprintf("%d. %s (%s) - %d", i+1, item.Name, item.MeasurementUnit, item.Total)
		pdf.SetXY(l.LeftMargin, y)
		pdf.CellFormat(0, l.LineHeight, line, "", 0, "L", false, 0, "")
		y += l.LineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping list pdf: %w", err)
	}
	return buf.Bytes(), nil
}
