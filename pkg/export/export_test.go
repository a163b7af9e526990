package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/jordanlanch/industrycatalog/pkg/dataset"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{" XLSX ", FormatXLSX, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "industries.csv", FormatCSV.FileName())
	assert.Equal(t, "industries.xlsx", FormatXLSX.FileName())
	assert.Contains(t, FormatCSV.ContentType(), "text/csv")
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	industries := dataset.Industries()

	require.NoError(t, Write(&buf, FormatCSV, industries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(industries)+1)

	assert.Equal(t, headers, records[0])
	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "Metalúrgica Global S.A.", first[1])
	assert.Contains(t, first[7], "; ")
	assert.Equal(t, "-23.550500", first[15])
}

func TestWrite_CSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	industries := []models.Industry{
		{ID: "a", Name: "Alpha", Sector: "Têxtil", Products: []string{"x", "y"}, Location: &models.Location{Lat: 1.5, Lng: -2}},
		{ID: "b", Name: "Beta", Sector: "Químico"},
	}

	require.NoError(t, Write(&buf, FormatXLSX, industries))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "Alpha", rows[1][1])
	assert.Equal(t, "x; y", rows[1][7])
	assert.Equal(t, "1.5", rows[1][15])
	assert.Equal(t, "Beta", rows[2][1])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("pdf"), nil))
}
