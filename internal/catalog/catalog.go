package catalog

import (
	"context"

	"core/internal/model"
)

// Source supplies property records at startup. Implementations read a
// tabular source exactly once; the result becomes the process-wide catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.PropertyRecord, error)
}

// LoadStatus tells callers whether the catalog came from the configured
// source or from the built-in sample data.
type LoadStatus int

const (
	LoadedFromSource LoadStatus = iota
	FellBackToDefault
)

// LoadResult makes a degraded load visible instead of swallowing it:
// a failed source is not an error, but callers and tests can see that
// the fallback catalog was substituted and why.
type LoadResult struct {
	Catalog *Catalog
	Status  LoadStatus
	Source  string
	Reason  string
}

// Catalog is the read-only set of property listings. It is built once at
// startup and never mutated afterwards, so concurrent readers need no
// locking.
type Catalog struct {
	records []model.PropertyRecord
}

// New creates a catalog from the given records
func New(records []model.PropertyRecord) *Catalog {
	return &Catalog{records: records}
}

// Records returns the catalog records. The returned slice must be treated
// as read-only.
func (c *Catalog) Records() []model.PropertyRecord {
	return c.records
}

// Len returns the number of listings in the catalog
func (c *Catalog) Len() int {
	return len(c.records)
}

// Load builds the catalog from src, substituting the fixed sample catalog
// when src is nil, fails, or yields no records.
func Load(ctx context.Context, src Source) LoadResult {
	if src == nil {
		return LoadResult{
			Catalog: New(SampleRecords()),
			Status:  FellBackToDefault,
			Source:  "sample",
			Reason:  "no catalog source configured",
		}
	}

	records, err := src.Load(ctx)
	if err != nil {
		return LoadResult{
			Catalog: New(SampleRecords()),
			Status:  FellBackToDefault,
			Source:  src.Name(),
			Reason:  err.Error(),
		}
	}
	if len(records) == 0 {
		return LoadResult{
			Catalog: New(SampleRecords()),
			Status:  FellBackToDefault,
			Source:  src.Name(),
			Reason:  "source returned no records",
		}
	}

	return LoadResult{
		Catalog: New(records),
		Status:  LoadedFromSource,
		Source:  src.Name(),
	}
}

// SampleRecords returns the fixed fallback catalog used when no real
// source is available. The records mirror the demo dataset.
func SampleRecords() []model.PropertyRecord {
	return []model.PropertyRecord{
		{
			ID:              "PROP001",
			Address:         "123 Innovation Drive Downtown",
			Floor:           5,
			Suite:           "A",
			SizeSqFt:        2500,
			RentPerSqFtYear: 28.00,
			MonthlyRent:     5833.33,
			AnnualRent:      70000,
			GCIOn3Years:     210000,
			ContactName:     "John Smith",
			ContactEmail:    "john@broker.com",
		},
		{
			ID:              "PROP002",
			Address:         "456 Tech Plaza Midtown",
			Floor:           8,
			Suite:           "B",
			SizeSqFt:        3200,
			RentPerSqFtYear: 32.00,
			MonthlyRent:     8533.33,
			AnnualRent:      102400,
			GCIOn3Years:     307200,
			ContactName:     "Lisa Brown",
			ContactEmail:    "lisa@broker.com",
		},
		{
			ID:              "PROP003",
			Address:         "789 Business Center Uptown",
			Floor:           3,
			Suite:           "C",
			SizeSqFt:        1800,
			RentPerSqFtYear: 25.00,
			MonthlyRent:     3750.00,
			AnnualRent:      45000,
			GCIOn3Years:     135000,
			ContactName:     "David Miller",
			ContactEmail:    "david@broker.com",
		},
		{
			ID:              "PROP004",
			Address:         "321 Creative Commons Arts District",
			Floor:           2,
			Suite:           "E",
			SizeSqFt:        2000,
			RentPerSqFtYear: 26.00,
			MonthlyRent:     4333.33,
			AnnualRent:      52000,
			GCIOn3Years:     156000,
			ContactName:     "Michael Clark",
			ContactEmail:    "michael@broker.com",
		},
		{
			ID:              "PROP005",
			Address:         "654 Executive Tower Financial District",
			Floor:           15,
			Suite:           "F",
			SizeSqFt:        5000,
			RentPerSqFtYear: 42.00,
			MonthlyRent:     17500.00,
			AnnualRent:      210000,
			GCIOn3Years:     630000,
			ContactName:     "Susan Young",
			ContactEmail:    "susan@broker.com",
		},
	}
}
