package report

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Elisha-Seme/assetqr/internal/model"
)

// Label sheet geometry in millimetres on portrait A4.
const (
	LabelColumns  = 4
	LabelWidth    = 45.0
	LabelHeight   = 54.0
	LabelQRSize   = 34.0
	LabelNameMax  = 28
	LabelPlaceMax = 25
	// LabelRows is floor((pageHeight - 2*sheetMargin) / LabelHeight).
	LabelRows = 5

	pageWidth    = 210.0
	pageHeight   = 297.0
	sheetMargin  = 8.0
	labelPadding = 4.0
)

// LabelSlot locates one label on the sheet.
type LabelSlot struct {
	Page int
	X, Y float64
}

// LabelLayout returns the slot of the i-th label. The grid is centred
// horizontally and filled row by row.
func LabelLayout(i int) LabelSlot {
	perPage := LabelColumns * LabelRows
	left := (pageWidth - LabelColumns*LabelWidth) / 2
	n := i % perPage
	return LabelSlot{
		Page: i / perPage,
		X:    left + float64(n%LabelColumns)*LabelWidth,
		Y:    sheetMargin + float64(n/LabelColumns)*LabelHeight,
	}
}

// Labels writes an A4 sheet of cut-out QR labels, one per asset. Each label
// shows the QR code, the name, the identifier and, when set, the location.
func (b *Builder) Labels(ctx context.Context, w io.Writer, assets []model.Asset) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(b.now())
	pdf.SetMargins(sheetMargin, sheetMargin, sheetMargin)
	pdf.SetAutoPageBreak(false, sheetMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	page := 0
	for i, a := range assets {
		slot := LabelLayout(i)
		for page < slot.Page {
			pdf.AddPage()
			page++
		}
		b.drawLabel(ctx, pdf, tr, slot, a)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render labels: %w", err)
	}
	return nil
}

func (b *Builder) drawLabel(ctx context.Context, pdf *fpdf.Fpdf, tr func(string) string, s LabelSlot, a model.Asset) {
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetLineWidth(0.18)
	pdf.Rect(s.X, s.Y, LabelWidth, LabelHeight, "D")

	inner := LabelWidth - 2*labelPadding
	y := s.Y + labelPadding
	if img := b.registerQR(ctx, pdf, a); img != "" {
		pdf.ImageOptions(img, s.X+(LabelWidth-LabelQRSize)/2, y, LabelQRSize, LabelQRSize,
			false, fpdf.ImageOptions{ImageType: "png"}, 0, "")
	} else {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(71, 85, 105)
		pdf.SetXY(s.X+labelPadding, y)
		pdf.CellFormat(inner, LabelQRSize, "QR", "", 0, "C", false, 0, "")
	}
	y += LabelQRSize + 1

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetXY(s.X+labelPadding, y)
	pdf.CellFormat(inner, 3.5, fit(pdf, tr(Truncate(a.Name, LabelNameMax)), inner), "", 0, "C", false, 0, "")
	y += 3.5

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(71, 85, 105)
	pdf.SetXY(s.X+labelPadding, y)
	pdf.CellFormat(inner, 3, fit(pdf, tr(a.Identifier), inner), "", 0, "C", false, 0, "")
	y += 3

	if a.Location != "" {
		pdf.SetXY(s.X+labelPadding, y)
		pdf.CellFormat(inner, 3, fit(pdf, tr(Truncate(a.Location, LabelPlaceMax)), inner), "", 0, "C", false, 0, "")
	}
}
