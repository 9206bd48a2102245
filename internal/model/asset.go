package model

import "time"

// Asset statuses.
const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Statuses lists the lifecycle values callers are expected to use.
var Statuses = []string{StatusActive, StatusMaintenance, StatusRetired}

// Asset represents one physical item in the registry.
// Like the rest of this package it carries no persistence concerns; the SQL
// column names live in the repository implementation.
type Asset struct {
	ID           int64     `json:"id"`
	Identifier   string    `json:"asset_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	SerialNumber string    `json:"serial_number"`
	PurchaseDate string    `json:"purchase_date"`
	Custodian    string    `json:"custodian"`
	Donor        string    `json:"donor"`
	Value        string    `json:"value_ksh"`
	Notes        string    `json:"notes"`
	ArtifactPath string    `json:"qr_code_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssetInput is a candidate record supplied by a handler, importer or CLI.
// Identifier is optional; an empty value asks the minter for one.
type AssetInput struct {
	Identifier   string `json:"asset_id" yaml:"asset_id"`
	Name         string `json:"name" yaml:"name"`
	Category     string `json:"category" yaml:"category"`
	Description  string `json:"description" yaml:"description"`
	Location     string `json:"location" yaml:"location"`
	Status       string `json:"status" yaml:"status"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	PurchaseDate string `json:"purchase_date" yaml:"purchase_date"`
	Custodian    string `json:"custodian" yaml:"custodian"`
	Donor        string `json:"donor" yaml:"donor"`
	Value        string `json:"value_ksh" yaml:"value_ksh"`
	Notes        string `json:"notes" yaml:"notes"`
}

// AssetPatch holds a partial update. Nil fields keep their stored value.
// The identifier and artifact path are deliberately absent.
type AssetPatch struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	SerialNumber *string `json:"serial_number"`
	PurchaseDate *string `json:"purchase_date"`
	Custodian    *string `json:"custodian"`
	Donor        *string `json:"donor"`
	Value        *string `json:"value_ksh"`
	Notes        *string `json:"notes"`
}

// Apply copies every non-nil field of p onto a.
func (p AssetPatch) Apply(a *Asset) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.Name, p.Name)
	set(&a.Category, p.Category)
	set(&a.Description, p.Description)
	set(&a.Location, p.Location)
	set(&a.Status, p.Status)
	set(&a.SerialNumber, p.SerialNumber)
	set(&a.PurchaseDate, p.PurchaseDate)
	set(&a.Custodian, p.Custodian)
	set(&a.Donor, p.Donor)
	set(&a.Value, p.Value)
	set(&a.Notes, p.Notes)
}

// AssetFilter selects assets for listing and exports.
// When IDs is non-empty the remaining predicates are ignored.
type AssetFilter struct {
	Query    string
	Category string
	Status   string
	IDs      []int64
}

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats summarises the registry for the dashboard.
type Stats struct {
	Total       int             `json:"total"`
	Active      int             `json:"active"`
	Maintenance int             `json:"maintenance"`
	Retired     int             `json:"retired"`
	Categories  int             `json:"categories"`
	ByCategory  []CategoryCount `json:"by_category"`
}
