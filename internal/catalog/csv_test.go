package catalog

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const messyCSV = `unique_id,Property Address,Floor,Suite,Size (SF),Rent/SF/Year,Monthly Rent,Annual Rent,GCI On 3 Years,Associate 1,BROKER Email ID
PROP001,123 Innovation Drive Downtown,5th,A,"2,500",$28.00,,,," John Smith ",john@broker.com
,456 Tech Plaza Midtown,8,B,3200,$32.00,"$8,533.33","$102,400.00","$307,200.00",Lisa Brown,lisa@broker.com
PROP003,,3,C,1800,$25.00,,,,David Miller,david@broker.com
PROP004,321 Creative Commons,2,E,,$26.00,,,,Michael Clark,michael@broker.com
PROP005,654 Executive Tower,15,F,5000,,,,,Susan Young,susan@broker.com
`

func TestCSVLoadCleansData(t *testing.T) {
	src := NewCSVSource(writeTempCSV(t, messyCSV))

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// rows missing address, size, or rent are dropped
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.ID != "PROP001" {
		t.Errorf("id = %q, want PROP001", first.ID)
	}
	if first.SizeSqFt != 2500 {
		t.Errorf("size = %v, want 2500 (comma stripped)", first.SizeSqFt)
	}
	if first.RentPerSqFtYear != 28 {
		t.Errorf("rent = %v, want 28 (dollar sign stripped)", first.RentPerSqFtYear)
	}
	if first.Floor != 5 {
		t.Errorf("floor = %d, want 5 (digits extracted from 5th)", first.Floor)
	}
	if first.ContactName != "John Smith" {
		t.Errorf("contact = %q, want trimmed John Smith", first.ContactName)
	}
	// derived rents: annual = size * rate, monthly = annual / 12
	if first.AnnualRent != 70000 {
		t.Errorf("annual rent = %v, want derived 70000", first.AnnualRent)
	}
	if math.Abs(first.MonthlyRent-70000.0/12) > 0.01 {
		t.Errorf("monthly rent = %v, want derived %v", first.MonthlyRent, 70000.0/12)
	}

	second := records[1]
	if second.ID != "PROP002" {
		t.Errorf("blank id not generated: got %q, want PROP002", second.ID)
	}
	// provided rent figures are kept, not re-derived
	if math.Abs(second.MonthlyRent-8533.33) > 0.01 {
		t.Errorf("monthly rent = %v, want 8533.33 from file", second.MonthlyRent)
	}
	if second.AnnualRent != 102400 {
		t.Errorf("annual rent = %v, want 102400 from file", second.AnnualRent)
	}
	if second.GCIOn3Years != 307200 {
		t.Errorf("gci = %v, want 307200", second.GCIOn3Years)
	}
}

func TestCSVLoadMissingRequiredColumn(t *testing.T) {
	src := NewCSVSource(writeTempCSV(t, "unique_id,Property Address,Floor\nPROP001,123 Main St,5\n"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for missing required columns")
	}
}

func TestCSVLoadMalformedRowFails(t *testing.T) {
	// A bare quote mid-file is a parse error, not EOF; a truncated
	// catalog must not be reported as a successful load.
	malformed := `unique_id,Property Address,Floor,Suite,Size (SF),Rent/SF/Year,Monthly Rent,Annual Rent,GCI On 3 Years,Associate 1,BROKER Email ID
PROP001,123 Innovation Drive Downtown,5,A,2500,$28.00,,,,John Smith,john@broker.com
PROP002,456 "Bad Quote Plaza,8,B,3200,$32.00,,,,Lisa Brown,lisa@broker.com
`
	src := NewCSVSource(writeTempCSV(t, malformed))

	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected parse error for malformed row")
	}

	// the failed source is substituted with the sample catalog, visibly
	result := Load(context.Background(), src)
	if result.Status != FellBackToDefault {
		t.Errorf("status = %v, want FellBackToDefault", result.Status)
	}
	if result.Reason == "" {
		t.Error("fallback reason must be populated")
	}
}

func TestCSVLoadMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCSVSourceName(t *testing.T) {
	src := NewCSVSource("data/properties.csv")
	if src.Name() != "csv:data/properties.csv" {
		t.Errorf("name = %q", src.Name())
	}
}
