// Package catalog implements the pure matching, filtering, and resolution
// rules applied to in-memory product snapshots. Nothing here performs I/O
// and no function mutates its inputs.
package catalog

import (
	"strings"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// Price range labels accepted by the listing filter
const (
	PriceRangeAll      = "all"
	PriceRangeUnder99  = "under-99"
	PriceRange99To159  = "99-159"
	PriceRange159To299 = "159-299"
	PriceRangeOver299  = "over-299"
)

// MatchesPriceRange reports whether the product's advertised price falls in
// the named band. Bands are half-open: the lower bound is inclusive, the
// upper bound exclusive, so every positive price lands in exactly one band.
// Products without a positive price match only "all".
func MatchesPriceRange(p *domain.Product, rangeLabel string) bool {
	if rangeLabel == "" || rangeLabel == PriceRangeAll {
		return true
	}
	if !p.HasPrice() {
		return false
	}
	price := p.Price()
	switch rangeLabel {
	case PriceRangeUnder99:
		return price < 99
	case PriceRange99To159:
		return price >= 99 && price < 159
	case PriceRange159To299:
		return price >= 159 && price < 299
	case PriceRangeOver299:
		return price >= 299
	default:
		return false
	}
}

// categoryRule pairs the keywords and product type codes that signal a
// category. A product needs only one signal to match.
type categoryRule struct {
	Keywords     []string
	ProductTypes []string
}

// categoryRules maps category tags to their rule set. Hyphenated and
// underscored spellings are kept as duplicate entries so the matcher
// stays a pure lookup.
var categoryRules = map[string]categoryRule{
	"winery-tours": {
		Keywords:     []string{"winery", "wine", "vineyard", "cellar"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"winery_tours": {
		Keywords:     []string{"winery", "wine", "vineyard", "cellar"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"brewery-tours": {
		Keywords:     []string{"brewery", "beer", "ale", "distillery"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"brewery_tours": {
		Keywords:     []string{"brewery", "beer", "ale", "distillery"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"day-tours": {
		Keywords:     []string{"day tour", "full day", "half day", "sightseeing"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"day_tours": {
		Keywords:     []string{"day tour", "full day", "half day", "sightseeing"},
		ProductTypes: []string{domain.ProductTypeTour},
	},
	"food-wine": {
		Keywords:     []string{"food", "wine", "gourmet", "tasting", "dining"},
		ProductTypes: []string{domain.ProductTypeTour, domain.ProductTypeExperience},
	},
	"food_wine": {
		Keywords:     []string{"food", "wine", "gourmet", "tasting", "dining"},
		ProductTypes: []string{domain.ProductTypeTour, domain.ProductTypeExperience},
	},
	"adventure": {
		Keywords:     []string{"adventure", "hike", "kayak", "rainforest", "waterfall"},
		ProductTypes: []string{domain.ProductTypeActivity, domain.ProductTypeExperience},
	},
	"hop-on-hop-off": {
		Keywords:     []string{"hop-on", "hop on", "shuttle loop"},
		ProductTypes: []string{domain.ProductTypeTransfer},
	},
	"hop_on_hop_off": {
		Keywords:     []string{"hop-on", "hop on", "shuttle loop"},
		ProductTypes: []string{domain.ProductTypeTransfer},
	},
	"transfers": {
		Keywords:     []string{"transfer", "shuttle", "pickup", "airport"},
		ProductTypes: []string{domain.ProductTypeTransfer, domain.ProductTypeCharter},
	},
	"private-tours": {
		Keywords:     []string{"private", "exclusive", "charter"},
		ProductTypes: []string{domain.ProductTypeCustom, domain.ProductTypeCharter},
	},
	"private_tours": {
		Keywords:     []string{"private", "exclusive", "charter"},
		ProductTypes: []string{domain.ProductTypeCustom, domain.ProductTypeCharter},
	},
	"gift-vouchers": {
		Keywords:     []string{"gift", "voucher"},
		ProductTypes: []string{domain.ProductTypeGiftCard},
	},
	"gift_vouchers": {
		Keywords:     []string{"gift", "voucher"},
		ProductTypes: []string{domain.ProductTypeGiftCard},
	},
	"family": {
		Keywords:     []string{"family", "kids", "children"},
		ProductTypes: []string{domain.ProductTypeTour, domain.ProductTypeActivity},
	},
}

// canonicalCategories lists the hyphenated spelling of each category once,
// in display order.
var canonicalCategories = []string{
	"winery-tours",
	"brewery-tours",
	"day-tours",
	"food-wine",
	"adventure",
	"hop-on-hop-off",
	"transfers",
	"private-tours",
	"gift-vouchers",
	"family",
}

// CanonicalCategories returns the category tags, one per category, in
// display order.
func CanonicalCategories() []string {
	tags := make([]string, len(canonicalCategories))
	copy(tags, canonicalCategories)
	return tags
}

// MatchesCategory reports whether the product matches the category tag,
// either by keyword in name/description/categories or by product type code.
func MatchesCategory(p *domain.Product, categoryLabel string) bool {
	if categoryLabel == "" || categoryLabel == "all" {
		return true
	}
	rule, ok := categoryRules[strings.ToLower(categoryLabel)]
	if !ok {
		return false
	}

	text := p.SearchText()
	for _, kw := range rule.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	typeCode := strings.ToLower(p.Type)
	if typeCode != "" {
		for _, tc := range rule.ProductTypes {
			if strings.Contains(typeCode, strings.ToLower(tc)) {
				return true
			}
		}
	}

	return false
}

// MatchesLocation reports whether the location label appears in the
// product's address. Structured addresses compare the city only; richer
// product-to-product comparison lives in ProductsLocationRelated.
func MatchesLocation(p *domain.Product, locationLabel string) bool {
	if locationLabel == "" || locationLabel == "all" {
		return true
	}
	addr := p.LocationAddress
	if addr == nil {
		return false
	}

	needle := strings.ToLower(locationLabel)
	if addr.IsStructured() {
		return strings.Contains(strings.ToLower(addr.City), needle)
	}
	return strings.Contains(strings.ToLower(addr.Raw), needle)
}

// seasonKeywords maps a season to the words that signal it in product copy.
// "fall" is a duplicate entry for autumn.
var seasonKeywords = map[string][]string{
	"spring": {"spring", "bloom", "garden", "flower"},
	"summer": {"summer", "beach", "surf", "island"},
	"autumn": {"autumn", "fall", "harvest", "vintage"},
	"fall":   {"autumn", "fall", "harvest", "vintage"},
	"winter": {"winter", "snow", "fireplace", "whale"},
}

// MatchesSeason reports whether any of the season's keywords appear in the
// product's name or description.
func MatchesSeason(p *domain.Product, season string) bool {
	keywords, ok := seasonKeywords[strings.ToLower(season)]
	if !ok {
		return false
	}
	text := strings.ToLower(p.Name + " " + p.Description)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MatchesSearchTerm reports whether the term appears in the product's
// name, description, or short description.
func MatchesSearchTerm(p *domain.Product, term string) bool {
	if term == "" {
		return true
	}
	text := strings.ToLower(p.Name + " " + p.Description + " " + p.ShortDescription)
	return strings.Contains(text, strings.ToLower(term))
}
