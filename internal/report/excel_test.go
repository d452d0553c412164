package report_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/report"
)

func writeInputWorkbook(t *testing.T, path string, headers []string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeInputWorkbook(t, path,
		[]string{"id", "alias"},
		[][]string{
			{"1", "AliasA"},
			{"2", "  AliasB  "},
			{"3", ""},
			{"4", "AliasC"},
		})

	aliases, err := report.ReadAliases(path, "alias")
	require.NoError(t, err)
	assert.Equal(t, []string{"AliasA", "AliasB", "AliasC"}, aliases)
}

func TestReadAliasesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeInputWorkbook(t, path, []string{"name"}, [][]string{{"x"}})

	_, err := report.ReadAliases(path, "alias")
	assert.Error(t, err)
}

func TestWriteReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	results := []domain.ChannelResult{
		{Alias: "AliasA", ChannelURL: "https://www.youtube.com/@AliasA", Status: domain.StatusFound},
		{Alias: "AliasB", Status: domain.StatusNotFound},
	}
	links := []domain.ChannelLinks{
		{
			ChannelURL: "https://www.youtube.com/@AliasA",
			Links: map[domain.Platform]string{
				domain.PlatformInstagram: "https://instagram.com/aliasa",
				domain.PlatformDiscord:   "https://discord.gg/aliasa",
			},
		},
	}
	engagement := []domain.EngagementRecord{
		{ChannelURL: "https://www.youtube.com/@AliasA", SampleVideoCount: 10, AverageViews: 42000, Category: "25k-50k"},
	}

	require.NoError(t, report.WriteReport(path, results, links, engagement))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Channels", "Social Links", "Engagement"}, f.GetSheetList())

	rows, err := f.GetRows("Channels")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "alias", rows[0][0])
	assert.Equal(t, "AliasA", rows[1][0])
	assert.Equal(t, "found", rows[1][2])
	assert.Equal(t, "not_found", rows[2][2])

	rows, err = f.GetRows("Social Links")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "channel_url", rows[0][0])
	assert.Equal(t, "Instagram", rows[0][1])
	assert.Equal(t, "https://instagram.com/aliasa", rows[1][1])

	rows, err = f.GetRows("Engagement")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "25k-50k", rows[1][3])
}

// A written report doubles as a valid alias input for a targeted re-run.
func TestWriteReportReadableAsInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	results := []domain.ChannelResult{{Alias: "AliasA", Status: domain.StatusFailed, FailReason: "timeout"}}
	require.NoError(t, report.WriteReport(path, results, nil, nil))

	aliases, err := report.ReadAliases(path, "alias")
	require.NoError(t, err)
	assert.Equal(t, []string{"AliasA"}, aliases)
}
