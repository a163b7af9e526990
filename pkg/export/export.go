package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format
type Format string

// Supported formats
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Industries"

var headers = []string{
	"ID", "Name", "Sector", "Country", "State", "City", "Description",
	"Products", "Certifications", "Export Markets", "Contact Person",
	"Email", "Phone", "Website", "Status", "Latitude", "Longitude",
}

// ParseFormat validates a requested format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download file name for the format
func (f Format) FileName() string {
	return "industries." + string(f)
}

// Write encodes industries to w in the given format
func Write(w io.Writer, format Format, industries []models.Industry) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, industries)
	case FormatXLSX:
		return writeExcel(w, industries)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func row(ind models.Industry) []string {
	lat, lng := "", ""
	if ind.Location != nil {
		lat = strconv.FormatFloat(ind.Location.Lat, 'f', 6, 64)
		lng = strconv.FormatFloat(ind.Location.Lng, 'f', 6, 64)
	}
	return []string{
		ind.ID,
		ind.Name,
		ind.Sector,
		ind.Country,
		ind.State,
		ind.City,
		ind.Description,
		strings.Join(ind.Products, "; "),
		strings.Join(ind.Certifications, "; "),
		strings.Join(ind.ExportMarkets, "; "),
		ind.ContactPerson,
		ind.Email,
		ind.Phone,
		ind.Website,
		ind.Status,
		lat,
		lng,
	}
}

// writeCSV writes a header line followed by one line per industry
func writeCSV(w io.Writer, industries []models.Industry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ind := range industries {
		if err := writer.Write(row(ind)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeExcel writes a single-sheet workbook with a styled header row
func writeExcel(w io.Writer, industries []models.Industry) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than leaving an empty one behind
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, ind := range industries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // row 1 is the header
		values := row(ind)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		if ind.Location != nil {
			cells[len(cells)-2] = ind.Location.Lat
			cells[len(cells)-1] = ind.Location.Lng
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
