package guestimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a header-keyed CSV file into an ordered list of raw rows.
// Headers are trimmed and a UTF-8 BOM on the first header is stripped. Rows
// shorter than the header are padded with empty values, extra cells are
// dropped.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header -> %w", err)
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d -> %w", len(rows)+1, err)
		}

		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = record[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
