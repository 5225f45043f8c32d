package domain

// Customer is a platform customer. Email is the identity key and is
// compared case-sensitively, matching the booking feed's behavior.
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
}
