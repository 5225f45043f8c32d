package segmentation

import (
	"time"

	"go.uber.org/zap"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

const (
	vipPercentile         = 90
	growthLowerPercentile = 25
	growthUpperPercentile = 75

	// atRiskMonths is how long a customer can go without booking before
	// they count as at risk
	atRiskMonths = 6
)

// SegmentCustomers groups customers by lifetime spend and booking
// recency. The three segments are independent views: a customer can be
// both VIP and at risk. Customers with no bookings cannot be at risk;
// they surface in the demographics prospect bucket instead.
func (e *Engine) SegmentCustomers(customers []domain.Customer, bookings []domain.Booking) domain.CustomerSegments {
	spend := lifetimeSpend(bookings)
	lastBooked := lastBookingDates(bookings)

	distribution := make([]float64, 0, len(spend))
	for _, v := range spend {
		distribution = append(distribution, v)
	}
	vipThreshold := PercentileThreshold(distribution, vipPercentile)
	growthLower := PercentileThreshold(distribution, growthLowerPercentile)
	growthUpper := PercentileThreshold(distribution, growthUpperPercentile)

	cutoff := e.clock.Now().AddDate(0, -atRiskMonths, 0)

	segments := domain.CustomerSegments{
		VIP:             []domain.Customer{},
		AtRisk:          []domain.Customer{},
		GrowthPotential: []domain.Customer{},
	}

	for i := range customers {
		c := customers[i]
		total := spend[c.Email]

		if total >= vipThreshold {
			segments.VIP = append(segments.VIP, c)
		}
		if last, ok := lastBooked[c.Email]; ok && last.Before(cutoff) {
			segments.AtRisk = append(segments.AtRisk, c)
		}
		if total >= growthLower && total <= growthUpper {
			segments.GrowthPotential = append(segments.GrowthPotential, c)
		}
	}

	e.log.Debug("segmented customers",
		zap.Int("input", len(customers)),
		zap.Float64("vip_threshold", vipThreshold),
		zap.Int("vip", len(segments.VIP)),
		zap.Int("at_risk", len(segments.AtRisk)),
		zap.Int("growth_potential", len(segments.GrowthPotential)))

	return segments
}

// SegmentCustomerDemographics groups customers by how often they book:
// frequent (3+), repeat (2), one-time (1), prospect (0).
func (e *Engine) SegmentCustomerDemographics(customers []domain.Customer, bookings []domain.Booking) domain.CustomerDemographics {
	counts := make(map[string]int)
	for i := range bookings {
		counts[bookings[i].Customer.Email]++
	}

	demo := domain.CustomerDemographics{
		Frequent: []domain.Customer{},
		Repeat:   []domain.Customer{},
		OneTime:  []domain.Customer{},
		Prospect: []domain.Customer{},
	}

	for i := range customers {
		c := customers[i]
		switch n := counts[c.Email]; {
		case n >= 3:
			demo.Frequent = append(demo.Frequent, c)
		case n == 2:
			demo.Repeat = append(demo.Repeat, c)
		case n == 1:
			demo.OneTime = append(demo.OneTime, c)
		default:
			demo.Prospect = append(demo.Prospect, c)
		}
	}

	return demo
}

// lifetimeSpend sums booking totals per customer email.
func lifetimeSpend(bookings []domain.Booking) map[string]float64 {
	spend := make(map[string]float64)
	for i := range bookings {
		spend[bookings[i].Customer.Email] += bookings[i].TotalAmount
	}
	return spend
}

// lastBookingDates returns the most recent booking creation date per
// customer email.
func lastBookingDates(bookings []domain.Booking) map[string]time.Time {
	last := make(map[string]time.Time)
	for i := range bookings {
		b := bookings[i]
		if current, ok := last[b.Customer.Email]; !ok || b.CreatedDate.After(current) {
			last[b.Customer.Email] = b.CreatedDate
		}
	}
	return last
}
