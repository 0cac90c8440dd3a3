package excel_test

import (
	"bytes"
	"testing"
	"time"

	"firehose-dashboard/internal/dashboard/adapters/excel"
	"firehose-dashboard/internal/dashboard/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openSheet(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestGenerateDailyGrid(t *testing.T) {
	now := time.Date(2024, time.January, 30, 10, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Date: now.Add(-time.Hour), Reason: `{"Clients_Device":{"count":150},"Tag_Device":{"count":20}}`},
		{Date: now.Add(-2 * time.Hour), Reason: `{"Clients_Device":{"count":50}}`},
		{Date: now.Add(-49 * time.Hour), Reason: `nope`},
	}
	d := domain.BuildDashboard(domain.NewWindow(30, now), records, time.UTC)

	data, err := excel.GenerateDailyGrid(d)
	require.NoError(t, err)

	f := openSheet(t, data)
	assert.Equal(t, []string{excel.SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(excel.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Firehose Data Pipeline (30 days)", title)

	header, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(header), 6)
	assert.Equal(t, []string{"Date", "Clients_Device", "Tag_Device", "BLE_Tags"}, header[3])

	assert.Equal(t, "2024-01-30", header[4][0])
	assert.Equal(t, "100", header[4][1])
	assert.Equal(t, "20", header[4][2])
	assert.Equal(t, "N/A", header[4][3])

	assert.Equal(t, "2024-01-28", header[5][0])
	assert.Equal(t, "N/A", header[5][1])

	legend, err := f.GetCellValue(excel.SheetName, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Legend:", legend)
}

func TestGenerateDailyGrid_Empty(t *testing.T) {
	now := time.Date(2024, time.January, 30, 10, 0, 0, 0, time.UTC)
	d := domain.BuildDashboard(domain.NewWindow(30, now), nil, time.UTC)

	data, err := excel.GenerateDailyGrid(d)
	require.NoError(t, err)

	f := openSheet(t, data)
	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Clients_Device", "Tag_Device", "BLE_Tags"}, rows[3])

	legend, err := f.GetCellValue(excel.SheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Legend:", legend)
}
