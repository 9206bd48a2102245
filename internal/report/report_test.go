package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elisha-Seme/assetqr/internal/logger"
	"github.com/Elisha-Seme/assetqr/internal/model"
)

type mapOpener struct {
	files  map[string][]byte
	opened []string
}

func (m *mapOpener) Open(_ context.Context, id string) (io.ReadCloser, error) {
	m.opened = append(m.opened, id)
	b, ok := m.files[id]
	if !ok {
		return nil, errors.New("artifact not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 21, 21))
	for i := 0; i < 21; i++ {
		img.SetGray(i, i, color.Gray{Y: 0})
		img.SetGray(20-i, i, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fixedBuilder(o ArtifactOpener) *Builder {
	b := NewBuilder(o, logger.Discard())
	b.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return b
}

func sampleAssets(n int) []model.Asset {
	out := make([]model.Asset, 0, n)
	statuses := []string{model.StatusActive, model.StatusMaintenance, model.StatusRetired}
	for i := 0; i < n; i++ {
		out = append(out, model.Asset{
			ID:           int64(i + 1),
			Identifier:   "desk-" + string(rune('a'+i%26)),
			Name:         "Office Desk with an unusually long descriptive name",
			Category:     "Furniture",
			Location:     "Nairobi HQ, second floor, east wing",
			Status:       statuses[i%3],
			Custodian:    "Prisca",
			ArtifactPath: "static/qrcodes/qr_desk.png",
		})
	}
	return out
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "assets_20240501_093005.pdf", Filename(KindInventory, ts))
	assert.Equal(t, "qr_labels_20240501_093005.pdf", Filename(KindLabels, ts))
	assert.Equal(t, "assets_20240501_093005.csv", Filename(KindCSV, ts))
	assert.Equal(t, "text/csv", ContentType(KindCSV))
	assert.Equal(t, "application/pdf", ContentType(KindLabels))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Desk", Truncate("Desk", 28))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "Café", Truncate("Café au lait", 4))
	assert.Len(t, []rune(Truncate(strings.Repeat("x", 40), LabelNameMax)), 28)
}

func TestTitleCaseAndStatusColor(t *testing.T) {
	assert.Equal(t, "Maintenance", TitleCase("maintenance"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "#16a34a", StatusColor(model.StatusActive))
	assert.Equal(t, "#d97706", StatusColor(model.StatusMaintenance))
	assert.Equal(t, "#dc2626", StatusColor(model.StatusRetired))
	assert.Equal(t, "#374151", StatusColor("lost"))
	assert.Equal(t, rgb{22, 163, 74}, hexRGB("#16a34a"))
}

func TestCSV(t *testing.T) {
	b := fixedBuilder(nil)
	var buf bytes.Buffer
	err := b.CSV(&buf, []model.Asset{{
		Identifier: "desk-0001", Name: "Desk, oak", Category: "Furniture", Status: "active",
		Value: "12,500", Notes: "line1\nline2",
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, "asset_id,name,category,location,status,serial_number,description,custodian,donor,value_ksh,purchase_date,notes,created_at",
		strings.Join(records[0], ","))
	row := records[1]
	assert.Equal(t, "desk-0001", row[0])
	assert.Equal(t, "Desk, oak", row[1])
	assert.Equal(t, "12,500", row[9])
	assert.Equal(t, "line1\nline2", row[11])
	assert.Equal(t, "2024-05-01 09:30:00", row[12])
}

func TestCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixedBuilder(nil).CSV(&buf, nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestLabelLayout(t *testing.T) {
	require.Equal(t, 5, LabelRows)
	usable := pageHeight - 2*sheetMargin
	assert.LessOrEqual(t, float64(LabelRows)*LabelHeight, usable)
	assert.Greater(t, float64(LabelRows+1)*LabelHeight, usable)

	first := LabelLayout(0)
	assert.Equal(t, LabelSlot{Page: 0, X: 15, Y: 8}, first)

	assert.Equal(t, LabelSlot{Page: 0, X: 150, Y: 8}, LabelLayout(3))
	assert.Equal(t, LabelSlot{Page: 0, X: 15, Y: 62}, LabelLayout(4))
	assert.Equal(t, LabelSlot{Page: 0, X: 150, Y: 224}, LabelLayout(19))
	assert.Equal(t, LabelSlot{Page: 1, X: 15, Y: 8}, LabelLayout(20))

	for i := 0; i < 40; i++ {
		s := LabelLayout(i)
		assert.LessOrEqual(t, s.X+LabelWidth, pageWidth)
		assert.LessOrEqual(t, s.Y+LabelHeight, pageHeight-sheetMargin)
	}
}

func TestInventory(t *testing.T) {
	qr := tinyPNG(t)
	assets := sampleAssets(12)
	files := map[string][]byte{}
	for i, a := range assets {
		if i%2 == 0 {
			files[a.Identifier] = qr
		}
	}
	files[assets[1].Identifier] = []byte("not a png")
	op := &mapOpener{files: files}

	var buf bytes.Buffer
	require.NoError(t, fixedBuilder(op).Inventory(context.Background(), &buf, "AFOSI Kenya", assets))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Len(t, op.opened, len(assets))
}

func TestInventory_SkipsAssetsWithoutArtifact(t *testing.T) {
	op := &mapOpener{files: map[string][]byte{}}
	assets := []model.Asset{{Identifier: "desk-0001", Name: "Desk", Status: "active"}}

	var buf bytes.Buffer
	require.NoError(t, fixedBuilder(op).Inventory(context.Background(), &buf, "Org", assets))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Empty(t, op.opened)
}

func TestLabels(t *testing.T) {
	qr := tinyPNG(t)
	assets := sampleAssets(23)
	files := map[string][]byte{}
	for _, a := range assets {
		files[a.Identifier] = qr
	}

	var buf bytes.Buffer
	require.NoError(t, fixedBuilder(&mapOpener{files: files}).Labels(context.Background(), &buf, assets))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestLabels_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixedBuilder(nil).Labels(context.Background(), &buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
