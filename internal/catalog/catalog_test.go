package catalog

import (
	"context"
	"errors"
	"testing"

	"core/internal/model"
)

type stubSource struct {
	name    string
	records []model.PropertyRecord
	err     error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Load(ctx context.Context) ([]model.PropertyRecord, error) {
	return s.records, s.err
}

func TestLoadFromSource(t *testing.T) {
	src := &stubSource{
		name:    "stub",
		records: []model.PropertyRecord{{ID: "PROP001", Address: "123 Main St", SizeSqFt: 1000, RentPerSqFtYear: 20}},
	}

	result := Load(context.Background(), src)
	if result.Status != LoadedFromSource {
		t.Fatalf("status = %v, want LoadedFromSource", result.Status)
	}
	if result.Source != "stub" {
		t.Errorf("source = %q, want stub", result.Source)
	}
	if result.Catalog.Len() != 1 {
		t.Errorf("catalog len = %d, want 1", result.Catalog.Len())
	}
}

func TestLoadFallsBack(t *testing.T) {
	tests := []struct {
		name       string
		src        Source
		wantSource string
	}{
		{"nil source", nil, "sample"},
		{"source error", &stubSource{name: "broken", err: errors.New("connection refused")}, "broken"},
		{"empty source", &stubSource{name: "empty"}, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Load(context.Background(), tt.src)
			if result.Status != FellBackToDefault {
				t.Fatalf("status = %v, want FellBackToDefault", result.Status)
			}
			if result.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", result.Source, tt.wantSource)
			}
			if result.Reason == "" {
				t.Error("fallback reason must be populated")
			}
			if result.Catalog.Len() != len(SampleRecords()) {
				t.Errorf("catalog len = %d, want sample size %d", result.Catalog.Len(), len(SampleRecords()))
			}
		})
	}
}

func TestSampleRecordsConsistency(t *testing.T) {
	for _, rec := range SampleRecords() {
		if rec.ID == "" || rec.Address == "" {
			t.Errorf("sample record missing identity: %+v", rec)
		}
		if rec.SizeSqFt <= 0 || rec.RentPerSqFtYear <= 0 {
			t.Errorf("sample record %s has invalid size or rent", rec.ID)
		}
		wantAnnual := rec.SizeSqFt * rec.RentPerSqFtYear
		if diff := rec.AnnualRent - wantAnnual; diff > 1 || diff < -1 {
			t.Errorf("sample record %s annual rent %v inconsistent with size*rate %v", rec.ID, rec.AnnualRent, wantAnnual)
		}
		if rec.GCIOn3Years != wantAnnual*3 {
			t.Errorf("sample record %s GCI %v, want %v", rec.ID, rec.GCIOn3Years, wantAnnual*3)
		}
	}
}
