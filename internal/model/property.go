package model

// PropertyRecord represents a single commercial listing in the catalog.
// Records are immutable after load; request-time code only ever reads them.
type PropertyRecord struct {
	ID              string  `json:"id" db:"unique_id"`
	Address         string  `json:"address" db:"address"`
	Floor           int     `json:"floor" db:"floor"`
	Suite           string  `json:"suite" db:"suite"`
	SizeSqFt        float64 `json:"size_sqft" db:"size_sqft"`
	RentPerSqFtYear float64 `json:"rent_per_sqft_year" db:"rent_per_sqft_year"`
	MonthlyRent     float64 `json:"monthly_rent" db:"monthly_rent"`
	AnnualRent      float64 `json:"annual_rent" db:"annual_rent"`
	GCIOn3Years     float64 `json:"gci_on_3_years,omitempty" db:"gci_on_3_years"`
	ContactName     string  `json:"contact_name" db:"contact_name"`
	ContactEmail    string  `json:"contact_email" db:"contact_email"`
}

// PropertyMatch is a catalog record with match metadata attached.
// CultureScore counts how many distinct requested culture keywords appear
// in the listing address.
type PropertyMatch struct {
	PropertyRecord
	CultureScore int `json:"culture_score"`
}
