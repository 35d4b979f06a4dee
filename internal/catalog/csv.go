package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"core/internal/model"
)

// Expected column headers in the property CSV. The raw export carries
// currency symbols and thousands separators; parsing strips them.
const (
	colID           = "unique_id"
	colAddress      = "Property Address"
	colFloor        = "Floor"
	colSuite        = "Suite"
	colSize         = "Size (SF)"
	colRent         = "Rent/SF/Year"
	colContactName  = "Associate 1"
	colContactEmail = "BROKER Email ID"
	colAnnualRent   = "Annual Rent"
	colMonthlyRent  = "Monthly Rent"
	colGCI          = "GCI On 3 Years"
)

var floorDigits = regexp.MustCompile(`\d+`)

// CSVSource loads the property catalog from a CSV file
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSV catalog source for the given file path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Name identifies the source in load results and logs
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Load reads and cleans the CSV file. Rows missing address, size, or rent
// are dropped; missing monthly/annual rent is derived from size and rate.
func (s *CSVSource) Load(ctx context.Context) ([]model.PropertyRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open properties csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colAddress, colSize, colRent} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", required)
		}
	}

	var records []model.PropertyRecord
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		address := field(colAddress)
		size := parseMoney(field(colSize))
		rent := parseMoney(field(colRent))

		// Critical columns per the cleaning rules: drop incomplete rows.
		if address == "" || size <= 0 || rent <= 0 {
			continue
		}

		rec := model.PropertyRecord{
			ID:              field(colID),
			Address:         address,
			Floor:           parseFloor(field(colFloor)),
			Suite:           field(colSuite),
			SizeSqFt:        size,
			RentPerSqFtYear: rent,
			MonthlyRent:     parseMoney(field(colMonthlyRent)),
			AnnualRent:      parseMoney(field(colAnnualRent)),
			GCIOn3Years:     parseMoney(field(colGCI)),
			ContactName:     field(colContactName),
			ContactEmail:    field(colContactEmail),
		}

		// Keep the denormalized rent fields consistent with size and rate.
		if rec.AnnualRent <= 0 {
			rec.AnnualRent = rec.SizeSqFt * rec.RentPerSqFtYear
		}
		if rec.MonthlyRent <= 0 {
			rec.MonthlyRent = rec.AnnualRent / 12
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("PROP%03d", len(records)+1)
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseMoney strips currency symbols and thousands separators before
// parsing. Returns 0 for blank or unparseable values.
func parseMoney(v string) float64 {
	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseFloor extracts the numeric part of a floor label ("5th" -> 5).
func parseFloor(v string) int {
	m := floorDigits.FindString(v)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
