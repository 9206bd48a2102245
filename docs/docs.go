// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/assets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "List assets",
                "parameters": [
                    {"type": "string", "description": "search in name, identifier, location, description and serial number", "name": "q", "in": "query"},
                    {"type": "string", "description": "exact category", "name": "cat", "in": "query"},
                    {"type": "string", "description": "exact status", "name": "status", "in": "query"},
                    {"type": "string", "description": "comma separated row ids", "name": "ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Asset"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Create asset",
                "parameters": [
                    {"description": "asset", "name": "asset", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AssetInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Asset"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/assets/bulk": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Bulk import assets",
                "parameters": [
                    {"description": "items", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bulkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.BulkResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/assets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Get asset",
                "parameters": [{"type": "integer", "description": "row id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Asset"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Update asset",
                "parameters": [
                    {"type": "integer", "description": "row id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AssetPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Asset"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["assets"],
                "summary": "Delete asset",
                "parameters": [{"type": "integer", "description": "row id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/assets/{id}/regen-qr": {
            "post": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Regenerate QR code",
                "parameters": [{"type": "integer", "description": "row id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.regenResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Registry statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Dashboard"}}}
            }
        },
        "/api/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/api/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Read settings",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update settings",
                "parameters": [
                    {"description": "key/value pairs", "name": "settings", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SettingsUpdateResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/asset/{identifier}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Asset detail page",
                "parameters": [{"type": "string", "description": "asset identifier", "name": "identifier", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/qrcodes/{file}": {
            "get": {
                "produces": ["image/png"],
                "tags": ["pages"],
                "summary": "QR image",
                "parameters": [{"type": "string", "description": "artifact file name", "name": "file", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/export/pdf": {
            "get": {"produces": ["application/pdf"], "tags": ["exports"], "summary": "Export PDF inventory", "responses": {"200": {"description": "OK"}}}
        },
        "/export/labels": {
            "get": {"produces": ["application/pdf"], "tags": ["exports"], "summary": "Export QR label sheet", "responses": {"200": {"description": "OK"}}}
        },
        "/export/csv": {
            "get": {"produces": ["text/csv"], "tags": ["exports"], "summary": "Export CSV", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handler.errorEnvelope"}, "request_id": {"type": "string"}}
        },
        "handler.bulkRequest": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/model.AssetInput"}}}
        },
        "handler.regenResponse": {
            "type": "object",
            "properties": {"path": {"type": "string"}, "success": {"type": "boolean"}}
        },
        "model.Asset": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "asset_id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "serial_number": {"type": "string"},
                "purchase_date": {"type": "string"},
                "custodian": {"type": "string"},
                "donor": {"type": "string"},
                "value_ksh": {"type": "string"},
                "notes": {"type": "string"},
                "qr_code_path": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.AssetInput": {
            "type": "object",
            "properties": {
                "asset_id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "serial_number": {"type": "string"},
                "purchase_date": {"type": "string"},
                "custodian": {"type": "string"},
                "donor": {"type": "string"},
                "value_ksh": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "model.AssetPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "serial_number": {"type": "string"},
                "purchase_date": {"type": "string"},
                "custodian": {"type": "string"},
                "donor": {"type": "string"},
                "value_ksh": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "model.CategoryCount": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "count": {"type": "integer"}}
        },
        "model.Stats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "active": {"type": "integer"},
                "maintenance": {"type": "integer"},
                "retired": {"type": "integer"},
                "categories": {"type": "integer"},
                "by_category": {"type": "array", "items": {"$ref": "#/definitions/model.CategoryCount"}}
            }
        },
        "service.BulkResult": {
            "type": "object",
            "properties": {
                "success": {"type": "integer"},
                "failed": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.RegenResult": {
            "type": "object",
            "properties": {
                "regenerated": {"type": "integer"},
                "failed": {"type": "integer"},
                "failed_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.Dashboard": {
            "type": "object",
            "properties": {
                "stats": {"$ref": "#/definitions/model.Stats"},
                "recent": {"type": "array", "items": {"$ref": "#/definitions/model.Asset"}}
            }
        },
        "service.SettingsUpdateResult": {
            "type": "object",
            "properties": {
                "updated": {"type": "array", "items": {"type": "string"}},
                "regenerated": {"$ref": "#/definitions/service.RegenResult"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Asset QR Registry API",
	Description:      "Asset registry with QR code labels, exports and settings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
