package domain

// SegmentedProducts groups products into independent marketing views.
// A product may appear in zero, one, or several segments.
type SegmentedProducts struct {
	HighDemand     []Product `json:"high_demand"`
	Seasonal       []Product `json:"seasonal"`
	LocationBased  []Product `json:"location_based"`
	PriceOptimized []Product `json:"price_optimized"`
}

// CustomerSegments groups customers by lifetime spend and recency.
type CustomerSegments struct {
	VIP             []Customer `json:"vip"`
	AtRisk          []Customer `json:"at_risk"`
	GrowthPotential []Customer `json:"growth_potential"`
}

// CustomerDemographics groups customers by booking frequency.
type CustomerDemographics struct {
	Frequent []Customer `json:"frequent"`
	Repeat   []Customer `json:"repeat"`
	OneTime  []Customer `json:"one_time"`
	Prospect []Customer `json:"prospect"`
}

// ProductMetrics holds revenue and popularity tiers computed from bookings.
type ProductMetrics struct {
	TopRevenue       []Product `json:"top_revenue"`
	MidRevenue       []Product `json:"mid_revenue"`
	LowRevenue       []Product `json:"low_revenue"`
	MostPopular      []Product `json:"most_popular"`
	ModeratelyBooked []Product `json:"moderately_booked"`
	RarelyBooked     []Product `json:"rarely_booked"`
}

// BookingClassification groups bookings along three independent axes:
// order status, lead time, and order value.
type BookingClassification struct {
	// Status axis
	Confirmed []Booking `json:"confirmed"`
	Pending   []Booking `json:"pending"`
	Cancelled []Booking `json:"cancelled"`
	Completed []Booking `json:"completed"`
	NoShow    []Booking `json:"no_show"`

	// Timing axis: whole-day lead from creation to first item start
	Advance    []Booking `json:"advance"`     // more than 30 days
	Standard   []Booking `json:"standard"`    // 7 to 30 days
	LastMinute []Booking `json:"last_minute"` // fewer than 7 days

	// Value axis: percentile split of total amount
	HighValue     []Booking `json:"high_value"`
	StandardValue []Booking `json:"standard_value"`
	LowValue      []Booking `json:"low_value"`
}

// CategorizedProducts maps a category tag to the products matching it.
type CategorizedProducts map[string][]Product
