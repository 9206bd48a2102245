package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/qrcode"
	"github.com/Elisha-Seme/assetqr/internal/report"
	"github.com/Elisha-Seme/assetqr/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type field struct {
	Label string
	Value string
}

type detailPage struct {
	Company string
	Asset   *model.Asset
	Status  string
	Payload string
	QRImage string
	Fields  []field
}

func renderPage(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// AssetDetail renders the public page a scanned QR code points to.
//
// @Summary  Asset detail page
// @Tags     pages
// @Produce  html
// @Param    identifier path string true "asset identifier"
// @Success  200
// @Failure  404
// @Router   /asset/{identifier} [get]
func AssetDetail(assets service.AssetService, settings service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := c.Params("identifier")
		a, err := assets.GetByIdentifier(c.UserContext(), ident)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return renderPage(c, fiber.StatusNotFound, "not_found.html",
					fiber.Map{"Message": fmt.Sprintf("Asset %q not found", ident)})
			}
			return err
		}

		all, err := settings.All(c.UserContext())
		if err != nil {
			return err
		}
		company := all[model.SettingCompanyName]
		if company == "" {
			company = "Asset Registry"
		}
		base := all[model.SettingBaseURL]
		if base == "" {
			base = model.DefaultBaseURL
		}

		page := detailPage{
			Company: company,
			Asset:   a,
			Status:  report.TitleCase(a.Status),
			Payload: base + "/asset/" + a.Identifier,
			Fields: []field{
				{"Category", a.Category},
				{"Location", a.Location},
				{"Description", a.Description},
				{"Serial number", a.SerialNumber},
				{"Purchase date", a.PurchaseDate},
				{"Custodian", a.Custodian},
				{"Donor / Programme", a.Donor},
				{"Value (KSh)", a.Value},
				{"Notes", a.Notes},
			},
		}
		if a.ArtifactPath != "" {
			page.QRImage = qrcode.PublicPath(a.Identifier)
		}
		return renderPage(c, fiber.StatusOK, "asset_detail.html", page)
	}
}
