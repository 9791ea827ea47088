package models

// Search sort keys. Every sort tie-breaks on created_at DESC then id ASC
// so paging over equal keys stays deterministic.
const (
	SortNewest           = "newest"
	SortPriceAsc         = "price_asc"
	SortPriceDesc        = "price_desc"
	SortPricePerSqftAsc  = "pps_asc"
	SortPricePerSqftDesc = "pps_desc"
)

// SearchLimit caps every search response. It is a fixed bound on response
// cost, not a pagination cursor; callers wanting more refine their filters.
const SearchLimit = 100

// SearchFilter holds caller-supplied criteria. The LIVE-only status filter
// is not represented here on purpose: it is hardcoded in the query layer
// and no field of this struct can widen it.
type SearchFilter struct {
	City            string   `query:"city"`
	PropertyType    string   `query:"property_type"`
	Bedrooms        *int     `query:"bedrooms"`
	MinPrice        *float64 `query:"min_price"`
	MaxPrice        *float64 `query:"max_price"`
	MinPricePerSqft *float64 `query:"min_pps"`
	MaxPricePerSqft *float64 `query:"max_pps"`
	Sort            string   `query:"sort"`
}
