package domain

// PriceRange bounds a commercial price filter. Zero values are treated as
// unbounded on that side by the filter code.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntRange bounds an integer criterion such as capacity or group size.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DateRange bounds a temporal criterion.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// TemporalCriteria is the time facet of FilterCriteria.
type TemporalCriteria struct {
	DateRange *DateRange `json:"date_range,omitempty"`
	Season    string     `json:"season,omitempty"`
	DayOfWeek string     `json:"day_of_week,omitempty"`
	TimeOfDay string     `json:"time_of_day,omitempty"`
}

// CommercialCriteria is the price/type facet of FilterCriteria.
type CommercialCriteria struct {
	PriceRange    *PriceRange `json:"price_range,omitempty"`
	ProductTypes  []string    `json:"product_types,omitempty"`
	CapacityRange *IntRange   `json:"capacity_range,omitempty"`
}

// GeographicalCriteria is the location facet of FilterCriteria.
type GeographicalCriteria struct {
	Locations    []string `json:"locations,omitempty"`
	Regions      []string `json:"regions,omitempty"`
	PickupPoints []string `json:"pickup_points,omitempty"`
}

// OperationalCriteria is the availability facet of FilterCriteria.
type OperationalCriteria struct {
	AvailabilityStatus string    `json:"availability_status,omitempty"`
	LeadTime           string    `json:"lead_time,omitempty"`
	GroupSize          *IntRange `json:"group_size,omitempty"`
}

// FilterCriteria is the structured multi-dimensional filter input. All
// facets are optional; an absent facet matches everything.
type FilterCriteria struct {
	Temporal     *TemporalCriteria     `json:"temporal,omitempty"`
	Commercial   *CommercialCriteria   `json:"commercial,omitempty"`
	Geographical *GeographicalCriteria `json:"geographical,omitempty"`
	Operational  *OperationalCriteria  `json:"operational,omitempty"`
}

// ProductFilters are the six independent field filters of the public
// catalog listing. "all" or empty means match-everything per filter.
type ProductFilters struct {
	SearchTerm   string `json:"search_term,omitempty"`
	ProductType  string `json:"product_type,omitempty"`
	PriceRange   string `json:"price_range,omitempty"`
	Availability string `json:"availability,omitempty"`
	Location     string `json:"location,omitempty"`
	Category     string `json:"category,omitempty"`
}
