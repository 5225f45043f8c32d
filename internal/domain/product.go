package domain

import "strings"

// Product types as delivered by the catalog feed
const (
	ProductTypeTour       = "TOUR"
	ProductTypeExperience = "EXPERIENCE"
	ProductTypeTransfer   = "TRANSFER"
	ProductTypeCustom     = "CUSTOM"
	ProductTypeGiftCard   = "GIFT_CARD"
	ProductTypeActivity   = "ACTIVITY"
	ProductTypeCharter    = "CHARTER"
)

// Image is a product media asset
type Image struct {
	ID           int    `json:"id"`
	ItemURL      string `json:"item_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Caption      string `json:"caption,omitempty"`
}

// Address is a product pickup/departure location. Raw holds the free-form
// string variant of the feed; when Raw is empty the structured fields apply.
type Address struct {
	Raw         string   `json:"raw,omitempty"`
	AddressLine string   `json:"address_line,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	PostCode    string   `json:"post_code,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// IsStructured reports whether the address carries structured fields
// rather than a free-form string.
func (a *Address) IsStructured() bool {
	return a != nil && a.Raw == ""
}

// HasCoordinates reports whether both latitude and longitude are present.
func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}

// Display returns the best-effort string form of the address.
func (a *Address) Display() string {
	if a == nil {
		return ""
	}
	if a.Raw != "" {
		return a.Raw
	}
	if a.City != "" {
		return a.City
	}
	return a.AddressLine
}

// Product is a bookable catalog entry. Code is the sole identity key;
// no two catalog entries share a code.
type Product struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	ShortDescription    string   `json:"short_description,omitempty"`
	Description         string   `json:"description,omitempty"`
	Type                string   `json:"type,omitempty"`
	AdvertisedPrice     *float64 `json:"advertised_price,omitempty"`
	Categories          []string `json:"categories,omitempty"`
	LocationAddress     *Address `json:"location_address,omitempty"`
	Status              string   `json:"status,omitempty"`
	QuantityRequiredMin int      `json:"quantity_required_min,omitempty"`
	QuantityRequiredMax int      `json:"quantity_required_max,omitempty"`
	Images              []Image  `json:"images,omitempty"`
}

// Price returns the advertised price, or 0 when absent.
func (p *Product) Price() float64 {
	if p.AdvertisedPrice == nil {
		return 0
	}
	return *p.AdvertisedPrice
}

// HasPrice reports whether the product has a positive advertised price.
func (p *Product) HasPrice() bool {
	return p.AdvertisedPrice != nil && *p.AdvertisedPrice > 0
}

// SearchText returns the lowercased haystack used by keyword matchers.
func (p *Product) SearchText() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(" ")
	b.WriteString(p.Description)
	b.WriteString(" ")
	b.WriteString(strings.Join(p.Categories, " "))
	return strings.ToLower(b.String())
}
