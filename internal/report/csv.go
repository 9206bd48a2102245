package report

import (
	"encoding/csv"
	"io"

	"github.com/Elisha-Seme/assetqr/internal/model"
)

// CSVHeader is the fixed column order of the CSV export.
var CSVHeader = []string{
	"asset_id", "name", "category", "location", "status", "serial_number",
	"description", "custodian", "donor", "value_ksh", "purchase_date", "notes", "created_at",
}

// CSV writes assets as CSV with CSVHeader as the first row.
func (b *Builder) CSV(w io.Writer, assets []model.Asset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range assets {
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.UTC().Format("2006-01-02 15:04:05")
		}
		if err := cw.Write([]string{
			a.Identifier, a.Name, a.Category, a.Location, a.Status, a.SerialNumber,
			a.Description, a.Custodian, a.Donor, a.Value, a.PurchaseDate, a.Notes, created,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
