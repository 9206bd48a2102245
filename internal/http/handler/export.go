package handler

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/report"
	"github.com/Elisha-Seme/assetqr/internal/service"
)

// Export renders the assets selected by the query filters as a download.
// kind is one of report.KindInventory, report.KindLabels or report.KindCSV.
//
// @Summary  Export assets
// @Tags     exports
// @Produce  application/pdf,text/csv
// @Param    ids    query string false "comma separated row ids"
// @Param    q      query string false "search term"
// @Param    cat    query string false "exact category"
// @Param    status query string false "exact status"
// @Success  200
// @Router   /export/pdf [get]
// @Router   /export/labels [get]
// @Router   /export/csv [get]
func Export(kind string, assets service.AssetService, settings service.SettingsService, b *report.Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var items []model.Asset
		if f, ok := assetFilter(c); ok {
			var err error
			if items, err = assets.List(ctx, f); err != nil {
				return writeServiceError(c, err)
			}
		}

		var buf bytes.Buffer
		var err error
		switch kind {
		case report.KindCSV:
			err = b.CSV(&buf, items)
		case report.KindLabels:
			err = b.Labels(ctx, &buf, items)
		default:
			company := "Asset Registry"
			all, serr := settings.All(ctx)
			if serr != nil {
				return writeServiceError(c, serr)
			}
			if v := all[model.SettingCompanyName]; v != "" {
				company = v
			}
			err = b.Inventory(ctx, &buf, company, items)
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "EXPORT_FAILED", "export could not be generated")
		}

		c.Set(fiber.HeaderContentType, report.ContentType(kind))
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, report.Filename(kind, timeNow())))
		return c.Send(buf.Bytes())
	}
}
