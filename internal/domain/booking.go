package domain

import "time"

// Booking statuses as delivered by the booking feed
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusPending   = "PENDING"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusNoShow    = "NO_SHOW"
)

// Participant is one participant entry on a booking item
type Participant struct {
	Type   string `json:"type"`
	Number int    `json:"number"`
}

// BookingItem is a single product line on a booking
type BookingItem struct {
	ProductCode    string        `json:"product_code"`
	StartTimeLocal time.Time     `json:"start_time_local"`
	Participants   []Participant `json:"participants,omitempty"`
	Amount         float64       `json:"amount"`
}

// Booking is an order placed by a customer
type Booking struct {
	OrderNumber string        `json:"order_number"`
	Customer    Customer      `json:"customer"`
	Items       []BookingItem `json:"items"`
	TotalAmount float64       `json:"total_amount"`
	Status      string        `json:"status"`
	CreatedDate time.Time     `json:"created_date"`
}
