package segmentation

import (
	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

const (
	// Booking timing boundaries in whole days of lead time
	advanceLeadDays    = 30 // more than this is an advance booking
	lastMinuteLeadDays = 7  // fewer than this is last minute

	// Value axis percentile cut
	valuePercentile = 25
)

// ClassifyBookings groups bookings along three independent axes: order
// status, lead time between creation and the first item's start, and
// order value percentile.
func (e *Engine) ClassifyBookings(bookings []domain.Booking) domain.BookingClassification {
	result := domain.BookingClassification{
		Confirmed:     []domain.Booking{},
		Pending:       []domain.Booking{},
		Cancelled:     []domain.Booking{},
		Completed:     []domain.Booking{},
		NoShow:        []domain.Booking{},
		Advance:       []domain.Booking{},
		Standard:      []domain.Booking{},
		LastMinute:    []domain.Booking{},
		HighValue:     []domain.Booking{},
		StandardValue: []domain.Booking{},
		LowValue:      []domain.Booking{},
	}

	for i := range bookings {
		b := bookings[i]

		switch b.Status {
		case domain.BookingStatusConfirmed:
			result.Confirmed = append(result.Confirmed, b)
		case domain.BookingStatusPending:
			result.Pending = append(result.Pending, b)
		case domain.BookingStatusCancelled:
			result.Cancelled = append(result.Cancelled, b)
		case domain.BookingStatusCompleted:
			result.Completed = append(result.Completed, b)
		case domain.BookingStatusNoShow:
			result.NoShow = append(result.NoShow, b)
		}

		if len(b.Items) > 0 {
			lead := wholeDayLead(b)
			switch {
			case lead > advanceLeadDays:
				result.Advance = append(result.Advance, b)
			case lead >= lastMinuteLeadDays:
				result.Standard = append(result.Standard, b)
			default:
				result.LastMinute = append(result.LastMinute, b)
			}
		}
	}

	byAmount := func(b *domain.Booking) float64 { return b.TotalAmount }
	result.HighValue = TopPercentile(bookings, byAmount, valuePercentile)
	result.LowValue = BottomPercentile(bookings, byAmount, valuePercentile)
	result.StandardValue = standardValueBookings(bookings, result.HighValue, result.LowValue)

	return result
}

// wholeDayLead is the whole-day difference between the booking's
// creation and the first item's local start time.
func wholeDayLead(b domain.Booking) int {
	diff := b.Items[0].StartTimeLocal.Sub(b.CreatedDate)
	return int(diff.Hours() / 24)
}

// standardValueBookings returns bookings in neither the high nor low
// value band, keyed by order number.
func standardValueBookings(bookings, high, low []domain.Booking) []domain.Booking {
	excluded := make(map[string]struct{}, len(high)+len(low))
	for i := range high {
		excluded[high[i].OrderNumber] = struct{}{}
	}
	for i := range low {
		excluded[low[i].OrderNumber] = struct{}{}
	}

	out := []domain.Booking{}
	for i := range bookings {
		if _, ok := excluded[bookings[i].OrderNumber]; !ok {
			out = append(out, bookings[i])
		}
	}
	return out
}
