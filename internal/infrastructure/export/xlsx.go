// Package export renders search results as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/estatehub/listing-api/internal/core/domain"
)

const sheetName = "Properties"

// ContentTypeXLSX is the media type of WriteXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []any{
	"ID", "Title", "Status", "Type", "Price", "Location", "State", "Area",
	"Bedrooms", "Bathrooms", "Floor Area", "Amenities", "Featured", "Listed",
}

// WriteXLSX writes one header row and one row per property, in the given order.
func WriteXLSX(w io.Writer, props []domain.Property) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	for i, p := range props {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			p.ID, p.Title, string(p.Status), string(p.PropertyType), p.Price,
			p.Location, p.State, p.Area, p.Bedrooms, p.Bathrooms, p.FloorArea,
			joinAmenities(p.Amenities), p.IsFeatured, p.CreatedAt.UTC().Format(time.DateOnly),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 40); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func joinAmenities(in []domain.Amenity) string {
	tags := make([]string, len(in))
	for i, a := range in {
		tags[i] = string(a)
	}
	return strings.Join(tags, ", ")
}
