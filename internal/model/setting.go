package model

// Setting keys understood by the registry.
const (
	SettingBaseURL     = "base_url"
	SettingCompanyName = "company_name"
	SettingQRColor     = "qr_color"
)

// Default setting values, seeded on first migration.
const (
	DefaultBaseURL     = "http://localhost:5001"
	DefaultCompanyName = "My Organization"
	DefaultQRColor     = "#000000"
)

// Setting is a single key/value configuration entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
