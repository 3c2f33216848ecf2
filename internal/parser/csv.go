// Package parser provides delimited-text parsing for CSV and TSV files.
package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// parseDelimited converts delimited text into one heading section for the
// header record followed by one table section per data row. A row with the
// same field count as the header is rendered as "header: value" pairs;
// otherwise its fields are joined as-is. Rows may have varying field counts.
func parseDelimited(text string, delimiter rune) ([]document.Section, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	sections := []document.Section{{
		Content: strings.Join(headers, " | "),
		Type:    document.SectionHeading,
	}}

	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}

		cells := row
		if len(row) == len(headers) {
			cells = make([]string, len(row))
			for i, value := range row {
				cells[i] = headers[i] + ": " + value
			}
		}

		sections = append(sections, document.Section{
			Content: strings.Join(cells, " | "),
			Type:    document.SectionTable,
		})
	}

	return sections, nil
}
