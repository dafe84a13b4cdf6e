package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"guestboard/models"
)

// CSVRow is one parsed CSV record keyed by its header names
type CSVRow map[string]string

// ParseGuestCSV reads a headered CSV stream into rows keyed by column name,
// returning the header in file order. Empty lines are skipped and short
// records are tolerated, since exports from ticketing platforms are rarely
// well-formed.
func ParseGuestCSV(r io.Reader) ([]string, []CSVRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("csv file is empty")
		}
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	rows := make([]CSVRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := make(CSVRow, len(header))
		empty := true
		for i, col := range header {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[col] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return header, rows, nil
}

// findColumn returns the trimmed value under the first header, in file order,
// whose lowercased name matches the predicate. Scanning the header slice
// instead of the row map keeps the pick deterministic when several columns
// match.
func findColumn(header []string, row CSVRow, match func(lower string) bool) string {
	for _, key := range header {
		if match(strings.ToLower(key)) {
			return strings.TrimSpace(row[key])
		}
	}
	return ""
}

// NormalizeGuestRow maps arbitrary CSV headers onto the canonical guest shape.
// Header matching is case-insensitive, exact or substring, per column family.
// A field is left empty when no header matches; the full row is kept as
// passthrough raw data.
func NormalizeGuestRow(header []string, row CSVRow) models.Guest {
	apiID := findColumn(header, row, func(k string) bool {
		return k == "api_id" || strings.Contains(k, "api id")
	})
	name := findColumn(header, row, func(k string) bool {
		return k == "name" && !strings.Contains(k, "first") && !strings.Contains(k, "last")
	})
	firstName := findColumn(header, row, func(k string) bool {
		return k == "first_name" || strings.Contains(k, "first name")
	})
	lastName := findColumn(header, row, func(k string) bool {
		return k == "last_name" || strings.Contains(k, "last name")
	})
	email := findColumn(header, row, func(k string) bool {
		return strings.Contains(k, "email")
	})
	phone := findColumn(header, row, func(k string) bool {
		return strings.Contains(k, "phone") || strings.Contains(k, "mobile")
	})
	ticket := findColumn(header, row, func(k string) bool {
		return strings.Contains(k, "ticket") || strings.Contains(k, "type")
	})

	rawData := make(map[string]string, len(row))
	for key, value := range row {
		rawData[key] = value
	}

	return models.Guest{
		APIID:       apiID,
		Name:        name,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phone,
		TicketType:  ticket,
		RawData:     rawData,
	}
}
