package model

// RequirementProfile represents structured property requirements extracted
// from free-form conversation text. Nil bounds impose no constraint; set
// bounds are always positive and MinSizeSqFt never exceeds MaxSizeSqFt.
type RequirementProfile struct {
	MinSizeSqFt        *float64 `json:"min_size_sqft,omitempty"`
	MaxSizeSqFt        *float64 `json:"max_size_sqft,omitempty"`
	MaxRentPerSqFt     *float64 `json:"max_rent_per_sqft,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	// CultureKeywords preserves detection order and may contain duplicates;
	// matching counts distinct terms.
	CultureKeywords []string `json:"culture_keywords,omitempty"`
}

// HasSizeBounds reports whether any size constraint was extracted.
func (r *RequirementProfile) HasSizeBounds() bool {
	return r.MinSizeSqFt != nil || r.MaxSizeSqFt != nil
}

// IsEmpty reports whether the profile imposes no constraints at all.
func (r *RequirementProfile) IsEmpty() bool {
	return r.MinSizeSqFt == nil && r.MaxSizeSqFt == nil && r.MaxRentPerSqFt == nil &&
		len(r.PreferredLocations) == 0 && len(r.CultureKeywords) == 0
}
