// Package qrcode renders the QR artifact for an asset.
//
// The encoded payload is {base_url}/asset/{identifier}. Because base_url and
// qr_color are settings, every artifact is a pure function of the identifier
// and the current settings; regenerating overwrites the previous image.
package qrcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/prometheus/client_golang/prometheus"
	qr "github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Elisha-Seme/assetqr/internal/artifact"
	"github.com/Elisha-Seme/assetqr/internal/model"
)

const (
	// ModulePixels is the edge length of one QR module in the PNG.
	ModulePixels = 10
	// PublicPrefix is the URL path artifacts are served under.
	PublicPrefix = "/qrcodes/"
)

// ErrArtifactWrite wraps any failure to render or store an artifact.
var ErrArtifactWrite = errors.New("qr artifact write failed")

// SettingsReader provides the settings a payload depends on.
type SettingsReader interface {
	BaseURL(ctx context.Context) (string, error)
	QRColor(ctx context.Context) (string, error)
}

// Generator renders and stores QR artifacts. It never touches the registry;
// callers persist the returned path on the asset.
type Generator struct {
	settings SettingsReader
	store    artifact.Store
	log      *slog.Logger
	results  *prometheus.CounterVec
}

// NewGenerator builds a Generator. reg may be nil, in which case the
// artifact counter is kept but not exported.
func NewGenerator(settings SettingsReader, store artifact.Store, reg prometheus.Registerer, log *slog.Logger) (*Generator, error) {
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetqr_qr_artifacts_total",
			Help: "QR artifacts rendered, by result.",
		},
		[]string{"result"},
	)
	if reg != nil {
		if err := reg.Register(results); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
			results = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		settings: settings,
		store:    store,
		log:      log.With("component", "qrcode"),
		results:  results,
	}, nil
}

// Key is the artifact store key for identifier.
func Key(identifier string) string {
	return "qr_" + identifier + ".png"
}

// PublicPath is the URL path the artifact of identifier is served from.
func PublicPath(identifier string) string {
	return PublicPrefix + Key(identifier)
}

// Payload returns the string encoded into the QR code of identifier.
// The identifier is inserted verbatim.
func (g *Generator) Payload(ctx context.Context, identifier string) (string, error) {
	base, err := g.settings.BaseURL(ctx)
	if err != nil {
		return "", err
	}
	return base + "/asset/" + identifier, nil
}

// Generate renders the artifact for identifier, overwrites any previous one
// and returns the stored path.
func (g *Generator) Generate(ctx context.Context, identifier string) (string, error) {
	ctx, span := otel.Tracer("assetqr/qrcode").Start(ctx, "qrcode.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("asset.identifier", identifier))

	path, err := g.generate(ctx, identifier)
	if err != nil {
		g.results.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%w: %s: %w", ErrArtifactWrite, identifier, err)
	}
	g.results.WithLabelValues("success").Inc()
	return path, nil
}

func (g *Generator) generate(ctx context.Context, identifier string) (string, error) {
	payload, err := g.Payload(ctx, identifier)
	if err != nil {
		return "", err
	}
	hex, err := g.settings.QRColor(ctx)
	if err != nil {
		return "", err
	}

	code, err := qr.New(payload, qr.Highest)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	code.ForegroundColor = g.foreground(hex)
	code.BackgroundColor = color.White

	png, err := code.PNG(-ModulePixels)
	if err != nil {
		return "", fmt.Errorf("render png: %w", err)
	}

	info, err := g.store.Put(ctx, Key(identifier), bytes.NewReader(png), artifact.PutOptions{
		Size:        int64(len(png)),
		ContentType: "image/png",
		Metadata:    map[string]string{"asset-id": identifier},
	})
	if err != nil {
		return "", fmt.Errorf("store: %w", err)
	}
	return info.Path, nil
}

// foreground parses a #rrggbb setting, falling back to the default color.
func (g *Generator) foreground(hex string) color.Color {
	c, err := ParseColor(hex)
	if err != nil {
		g.log.Warn("invalid qr_color, using default", "qr_color", hex, "error", err)
		c, _ = ParseColor(model.DefaultQRColor)
	}
	return c
}

// ParseColor converts a #rrggbb (or #rgb) string into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Open returns the stored artifact of identifier.
func (g *Generator) Open(ctx context.Context, identifier string) (io.ReadCloser, error) {
	rc, _, err := g.store.Get(ctx, Key(identifier))
	return rc, err
}

// Remove deletes the artifact of identifier. A missing artifact is not an error.
func (g *Generator) Remove(ctx context.Context, identifier string) error {
	return g.store.Delete(ctx, Key(identifier))
}
