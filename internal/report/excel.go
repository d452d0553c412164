// Package report reads alias workbooks and writes the result workbook:
// one sheet of resolution results, one pivoted social-links sheet and one
// engagement sheet.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/user/channel-scraper/internal/domain"
)

const (
	sheetChannels    = "Channels"
	sheetSocialLinks = "Social Links"
	sheetEngagement  = "Engagement"
)

// ReadAliases extracts the named column from the first sheet of an Excel
// workbook. The header row is row 1; blank cells are skipped.
func ReadAliases(path, column string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s: sheet %s is empty", path, sheet)
	}

	colIdx := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), column) {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("workbook %s: column %q not found", path, column)
	}

	var aliases []string
	for _, row := range rows[1:] {
		if colIdx >= len(row) {
			continue
		}
		if alias := strings.TrimSpace(row[colIdx]); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return aliases, nil
}

// WriteReport writes the three result sheets to path.
func WriteReport(path string, results []domain.ChannelResult, links []domain.ChannelLinks, engagement []domain.EngagementRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeChannelsSheet(f, results); err != nil {
		return err
	}
	if err := writeLinksSheet(f, links); err != nil {
		return err
	}
	if err := writeEngagementSheet(f, engagement); err != nil {
		return err
	}

	// The workbook starts with a default sheet; drop it once the real
	// sheets exist.
	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeChannelsSheet(f *excelize.File, results []domain.ChannelResult) error {
	if _, err := f.NewSheet(sheetChannels); err != nil {
		return err
	}
	if err := writeRow(f, sheetChannels, 1, []any{"alias", "channel_url", "status", "fail_reason"}); err != nil {
		return err
	}
	for i, r := range results {
		row := []any{r.Alias, r.ChannelURL, string(r.Status), r.FailReason}
		if err := writeRow(f, sheetChannels, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeLinksSheet(f *excelize.File, links []domain.ChannelLinks) error {
	if _, err := f.NewSheet(sheetSocialLinks); err != nil {
		return err
	}
	header := []any{"channel_url"}
	for _, p := range domain.Platforms {
		header = append(header, string(p))
	}
	if err := writeRow(f, sheetSocialLinks, 1, header); err != nil {
		return err
	}
	for i, cl := range links {
		row := []any{cl.ChannelURL}
		for _, p := range domain.Platforms {
			row = append(row, cl.Links[p])
		}
		if err := writeRow(f, sheetSocialLinks, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeEngagementSheet(f *excelize.File, records []domain.EngagementRecord) error {
	if _, err := f.NewSheet(sheetEngagement); err != nil {
		return err
	}
	if err := writeRow(f, sheetEngagement, 1, []any{"channel_url", "sample_video_count", "average_views", "category"}); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.ChannelURL, r.SampleVideoCount, r.AverageViews, r.Category}
		if err := writeRow(f, sheetEngagement, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
