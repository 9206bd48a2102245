package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/service"
)

// bulkRequest is the body of POST /api/assets/bulk.
type bulkRequest struct {
	Items []model.AssetInput `json:"items"`
}

// regenResponse is returned by the single-asset regenerate endpoint.
type regenResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// parseAssetID reads the numeric :id route parameter.
func parseAssetID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// assetFilter builds a filter from the ids, q, cat and status query
// parameters. ids wins over the other predicates; ok is false when ids was
// given but held no usable id, which selects nothing.
func assetFilter(c *fiber.Ctx) (f model.AssetFilter, ok bool) {
	if raw := strings.TrimSpace(c.Query("ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err == nil && id > 0 {
				f.IDs = append(f.IDs, id)
			}
		}
		return f, len(f.IDs) > 0
	}
	f.Query = strings.TrimSpace(c.Query("q"))
	f.Category = strings.TrimSpace(c.Query("cat"))
	f.Status = strings.TrimSpace(c.Query("status"))
	return f, true
}

// ListAssets returns assets matching the query filters, ordered by name.
//
// @Summary  List assets
// @Tags     assets
// @Produce  json
// @Param    q      query string false "search in name, identifier, location, description and serial number"
// @Param    cat    query string false "exact category"
// @Param    status query string false "exact status"
// @Param    ids    query string false "comma separated row ids"
// @Success  200 {array}  model.Asset
// @Failure  500 {object} errorPayload
// @Router   /api/assets [get]
func ListAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, ok := assetFilter(c)
		if !ok {
			return c.JSON([]model.Asset{})
		}
		items, err := svc.List(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.Asset{}
		}
		return c.JSON(items)
	}
}

// CreateAsset registers one asset and renders its QR code.
//
// @Summary  Create asset
// @Tags     assets
// @Accept   json
// @Produce  json
// @Param    asset body     model.AssetInput true "asset"
// @Success  201   {object} model.Asset
// @Failure  400   {object} errorPayload
// @Failure  409   {object} errorPayload
// @Router   /api/assets [post]
func CreateAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AssetInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		a, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// BulkImportAssets imports a batch; individual failures are reported, not fatal.
//
// @Summary  Bulk import assets
// @Tags     assets
// @Accept   json
// @Produce  json
// @Param    body body     bulkRequest true "items"
// @Success  200  {object} service.BulkResult
// @Failure  400  {object} errorPayload
// @Router   /api/assets/bulk [post]
func BulkImportAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		return c.JSON(svc.BulkImport(c.UserContext(), req.Items))
	}
}

// GetAsset returns one asset by row id.
//
// @Summary  Get asset
// @Tags     assets
// @Produce  json
// @Param    id  path     int true "row id"
// @Success  200 {object} model.Asset
// @Failure  404 {object} errorPayload
// @Router   /api/assets/{id} [get]
func GetAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseAssetID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

// UpdateAsset applies a partial update; omitted fields keep their values.
//
// @Summary  Update asset
// @Tags     assets
// @Accept   json
// @Produce  json
// @Param    id    path     int              true "row id"
// @Param    patch body     model.AssetPatch true "fields to change"
// @Success  200   {object} model.Asset
// @Failure  400   {object} errorPayload
// @Failure  404   {object} errorPayload
// @Router   /api/assets/{id} [put]
func UpdateAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseAssetID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p model.AssetPatch
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		a, err := svc.Update(c.UserContext(), id, p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

// DeleteAsset removes an asset and its QR artifact.
//
// @Summary  Delete asset
// @Tags     assets
// @Param    id  path int true "row id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/assets/{id} [delete]
func DeleteAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseAssetID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RegenerateQR re-renders the QR artifact of one asset.
//
// @Summary  Regenerate QR code
// @Tags     assets
// @Produce  json
// @Param    id  path     int true "row id"
// @Success  200 {object} regenResponse
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/assets/{id}/regen-qr [post]
func RegenerateQR(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseAssetID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		path, err := svc.RegenerateQR(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(regenResponse{Success: true, Path: path})
	}
}

// Stats returns the dashboard summary.
//
// @Summary  Registry statistics
// @Tags     assets
// @Produce  json
// @Success  200 {object} service.Dashboard
// @Router   /api/stats [get]
func Stats(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(d)
	}
}

// Categories returns the distinct non-empty categories.
//
// @Summary  List categories
// @Tags     assets
// @Produce  json
// @Success  200 {array} string
// @Router   /api/categories [get]
func Categories(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := svc.Categories(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if cats == nil {
			cats = []string{}
		}
		return c.JSON(cats)
	}
}
