package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XlsxExtractor extracts text from a .xlsx workbook, one unit per sheet.
// The sheet index (0-based) is used as the unit's page.
type XlsxExtractor struct{}

// Extract renders each sheet as lines of " | "-joined cell values.
func (e *XlsxExtractor) Extract(data []byte) ([]Unit, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not an xlsx workbook: %v", ErrExtraction, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var units []Unit
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrExtraction, sheet, err)
		}

		var b strings.Builder
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " | "))
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if b.Len() == 0 {
			continue
		}

		units = append(units, Unit{Text: b.String(), Page: i})
	}

	return units, nil
}
