package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Elisha-Seme/assetqr/internal/artifact"
)

// ServeArtifact streams a stored QR image, e.g. /qrcodes/qr_desk-0001.png.
//
// @Summary  QR image
// @Tags     pages
// @Produce  png
// @Param    file path string true "artifact file name"
// @Success  200
// @Failure  404 {object} errorPayload
// @Router   /qrcodes/{file} [get]
func ServeArtifact(store artifact.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("file")
		if !strings.HasPrefix(key, "qr_") || !strings.HasSuffix(key, ".png") || strings.ContainsAny(key, `/\`) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "artifact not found")
		}
		rc, _, err := store.Get(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, artifact.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "artifact not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(data)
	}
}
