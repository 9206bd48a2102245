package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Elisha-Seme/assetqr/internal/service"
)

// GetSettings returns every setting.
//
// @Summary  Read settings
// @Tags     settings
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /api/settings [get]
func GetSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := svc.All(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(all)
	}
}

// UpdateSettings upserts the supplied keys. Changing base_url or qr_color
// regenerates every QR artifact before the response is sent.
//
// @Summary  Update settings
// @Tags     settings
// @Accept   json
// @Produce  json
// @Param    settings body     map[string]string true "key/value pairs"
// @Success  200      {object} service.SettingsUpdateResult
// @Failure  400      {object} errorPayload
// @Router   /api/settings [post]
func UpdateSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var values map[string]string
		if err := c.BodyParser(&values); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "settings must be a JSON object of strings")
		}
		res, err := svc.Update(c.UserContext(), values)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
