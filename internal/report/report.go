// Package report renders registry exports: a CSV dump, a landscape PDF
// inventory with QR thumbnails and an A4 sheet of printable QR labels.
//
// Builders only read. Rows come from the asset service and images from the
// artifact store; a missing or unreadable artifact yields a placeholder.
package report

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/Elisha-Seme/assetqr/internal/model"
)

// Kinds of export, used for filenames and content types.
const (
	KindInventory = "pdf"
	KindLabels    = "labels"
	KindCSV       = "csv"
)

// ArtifactOpener reads the stored QR image of an identifier.
type ArtifactOpener interface {
	Open(ctx context.Context, identifier string) (io.ReadCloser, error)
}

// Builder renders exports.
type Builder struct {
	artifacts ArtifactOpener
	log       *slog.Logger
	now       func() time.Time
}

// NewBuilder returns a Builder reading images through artifacts.
func NewBuilder(artifacts ArtifactOpener, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{artifacts: artifacts, log: log.With("component", "report"), now: time.Now}
}

// Filename returns the timestamped download name for an export kind.
func Filename(kind string, t time.Time) string {
	stamp := t.Format("20060102_150405")
	switch kind {
	case KindLabels:
		return fmt.Sprintf("qr_labels_%s.pdf", stamp)
	case KindCSV:
		return fmt.Sprintf("assets_%s.csv", stamp)
	default:
		return fmt.Sprintf("assets_%s.pdf", stamp)
	}
}

// ContentType returns the MIME type of an export kind.
func ContentType(kind string) string {
	if kind == KindCSV {
		return "text/csv"
	}
	return "application/pdf"
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// TitleCase upper-cases the first letter of an ASCII status value.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// registerQR loads the artifact of a into pdf and returns the image name,
// or "" when the artifact is absent or not a decodable PNG.
func (b *Builder) registerQR(ctx context.Context, pdf *fpdf.Fpdf, a model.Asset) string {
	if a.ArtifactPath == "" || b.artifacts == nil {
		return ""
	}
	rc, err := b.artifacts.Open(ctx, a.Identifier)
	if err != nil {
		b.log.Debug("report_artifact_missing", "asset_id", a.Identifier, "error", err)
		return ""
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		b.log.Warn("report_artifact_invalid", "asset_id", a.Identifier, "error", err)
		return ""
	}

	name := "qr_" + a.Identifier
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(data))
	if !pdf.Ok() {
		b.log.Warn("report_artifact_invalid", "asset_id", a.Identifier, "error", pdf.Error())
		pdf.ClearError()
		return ""
	}
	return name
}

// fit shortens s with a trailing ellipsis until it renders within w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

type rgb struct{ r, g, b int }

func hexRGB(h string) rgb {
	var c rgb
	_, _ = fmt.Sscanf(strings.TrimPrefix(h, "#"), "%02x%02x%02x", &c.r, &c.g, &c.b)
	return c
}
