package catalog

import (
	"strings"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// FilterProducts applies the six independent listing filters conjunctively.
// Each filter treats its own "all"/empty value as match-everything.
func FilterProducts(products []domain.Product, filters domain.ProductFilters) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !MatchesSearchTerm(p, filters.SearchTerm) {
			continue
		}
		if !matchesProductType(p, filters.ProductType) {
			continue
		}
		if !MatchesPriceRange(p, filters.PriceRange) {
			continue
		}
		if !matchesAvailability(p, filters.Availability) {
			continue
		}
		if !MatchesLocation(p, filters.Location) {
			continue
		}
		if !MatchesCategory(p, filters.Category) {
			continue
		}
		result = append(result, *p)
	}
	return result
}

func matchesProductType(p *domain.Product, productType string) bool {
	if productType == "" || productType == "all" {
		return true
	}
	return strings.EqualFold(p.Type, productType)
}

// matchesAvailability always passes: the catalog feed carries no live
// availability yet. Kept as an explicit filter so the listing contract
// does not change when availability data arrives.
func matchesAvailability(_ *domain.Product, _ string) bool {
	return true
}

// ApplyMultiDimensionalFilter applies a structured criteria object as a
// single conjunctive predicate: a product survives only when all four
// facets pass.
func ApplyMultiDimensionalFilter(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !matchesTemporalCriteria(p, criteria.Temporal) {
			continue
		}
		if !matchesCommercialCriteria(p, criteria.Commercial) {
			continue
		}
		if !matchesGeographicalCriteria(p, criteria.Geographical) {
			continue
		}
		if !matchesOperationalCriteria(p, criteria.Operational) {
			continue
		}
		result = append(result, *p)
	}
	return result
}

// matchesTemporalCriteria always passes. The caller-visible contract is
// "always true until temporal matching is implemented", so this is an
// explicit no-op rather than an omission.
func matchesTemporalCriteria(_ *domain.Product, _ *domain.TemporalCriteria) bool {
	return true
}

func matchesCommercialCriteria(p *domain.Product, criteria *domain.CommercialCriteria) bool {
	if criteria == nil {
		return true
	}

	if criteria.PriceRange != nil {
		price := p.Price()
		if price < criteria.PriceRange.Min {
			return false
		}
		if criteria.PriceRange.Max > 0 && price > criteria.PriceRange.Max {
			return false
		}
	}

	if len(criteria.ProductTypes) > 0 {
		found := false
		for _, t := range criteria.ProductTypes {
			if strings.EqualFold(p.Type, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func matchesGeographicalCriteria(p *domain.Product, criteria *domain.GeographicalCriteria) bool {
	if criteria == nil || len(criteria.Locations) == 0 {
		return true
	}

	addr := p.LocationAddress
	if addr == nil {
		return false
	}
	haystack := strings.ToLower(addr.Display())
	for _, loc := range criteria.Locations {
		if strings.Contains(haystack, strings.ToLower(loc)) {
			return true
		}
	}
	return false
}

// matchesOperationalCriteria always passes, same rationale as the
// temporal facet: the contract is explicit until operational data exists.
func matchesOperationalCriteria(_ *domain.Product, _ *domain.OperationalCriteria) bool {
	return true
}
