package report

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Elisha-Seme/assetqr/internal/model"
)

const (
	invMarginX   = 12.0
	invMarginTop = 15.0
	invMarginBot = 10.0
	invHeaderH   = 8.0
	invRowH      = 20.0
	invQRSize    = 18.0
)

type invColumn struct {
	title string
	width float64
	value func(model.Asset) string
}

var inventoryColumns = []invColumn{
	{"QR Code", 22, nil},
	{"Asset ID", 25, func(a model.Asset) string { return a.Identifier }},
	{"Name", 44, func(a model.Asset) string { return a.Name }},
	{"Category", 28, func(a model.Asset) string { return a.Category }},
	{"Location", 30, func(a model.Asset) string { return a.Location }},
	{"Status", 20, func(a model.Asset) string { return TitleCase(a.Status) }},
	{"Serial No.", 30, func(a model.Asset) string { return a.SerialNumber }},
	{"Custodian", 32, func(a model.Asset) string { return a.Custodian }},
	{"Donor / Programme", 42, func(a model.Asset) string { return a.Donor }},
}

// StatusColor is the text color of a status cell in the inventory.
func StatusColor(status string) string {
	switch status {
	case model.StatusActive:
		return "#16a34a"
	case model.StatusMaintenance:
		return "#d97706"
	case model.StatusRetired:
		return "#dc2626"
	default:
		return "#374151"
	}
}

// Inventory writes a landscape A4 table of assets with their QR codes.
// The header row repeats on every page.
func (b *Builder) Inventory(ctx context.Context, w io.Writer, company string, assets []model.Asset) error {
	now := b.now()
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetMargins(invMarginX, invMarginTop, invMarginX)
	pdf.SetAutoPageBreak(false, invMarginBot)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageH := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 8, tr(company+" - Asset QR Registry"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s  |  %d asset(s)", now.Format("02 Jan 2006 15:04"), len(assets)),
		"", 1, "L", false, 0, "")
	pdf.Ln(3)
	drawInventoryHeader(pdf)

	for i, a := range assets {
		if pdf.GetY()+invRowH > pageH-invMarginBot {
			pdf.AddPage()
			drawInventoryHeader(pdf)
		}
		b.drawInventoryRow(ctx, pdf, tr, i, a)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render inventory: %w", err)
	}
	return nil
}

func drawInventoryHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetLineWidth(0.15)
	for _, c := range inventoryColumns {
		pdf.CellFormat(c.width, invHeaderH, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	x, y := pdf.GetXY()
	pdf.SetDrawColor(15, 23, 42)
	pdf.SetLineWidth(0.7)
	pdf.Line(x, y, x+tableWidth(), y)
	pdf.SetLineWidth(0.15)
	pdf.SetDrawColor(226, 232, 240)
}

func tableWidth() float64 {
	var w float64
	for _, c := range inventoryColumns {
		w += c.width
	}
	return w
}

func (b *Builder) drawInventoryRow(ctx context.Context, pdf *fpdf.Fpdf, tr func(string) string, i int, a model.Asset) {
	x0, y0 := pdf.GetXY()
	if i%2 == 1 {
		pdf.SetFillColor(248, 250, 252)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}

	x := x0
	for ci, c := range inventoryColumns {
		pdf.SetXY(x, y0)
		if ci == 0 {
			pdf.CellFormat(c.width, invRowH, "", "1", 0, "C", true, 0, "")
			if img := b.registerQR(ctx, pdf, a); img != "" {
				pdf.ImageOptions(img, x+(c.width-invQRSize)/2, y0+(invRowH-invQRSize)/2,
					invQRSize, invQRSize, false, fpdf.ImageOptions{ImageType: "png"}, 0, "")
			} else {
				pdf.SetFont("Helvetica", "", 8)
				pdf.SetTextColor(100, 116, 139)
				pdf.SetXY(x, y0)
				pdf.CellFormat(c.width, invRowH, "-", "", 0, "C", false, 0, "")
			}
			x += c.width
			continue
		}

		style, size, col := "", 8.0, rgb{55, 65, 81}
		switch c.title {
		case "Name":
			style = "B"
			col = rgb{15, 23, 42}
		case "Status":
			col = hexRGB(StatusColor(a.Status))
		case "Serial No.", "Custodian", "Donor / Programme":
			size = 7
			col = rgb{100, 116, 139}
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(col.r, col.g, col.b)
		pdf.CellFormat(c.width, invRowH, fit(pdf, tr(c.value(a)), c.width-3), "1", 0, "L", true, 0, "")
		x += c.width
	}
	pdf.SetXY(x0, y0+invRowH)
}
