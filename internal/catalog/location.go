package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

const (
	// earthRadiusKm is the mean Earth radius used by the Haversine formula
	earthRadiusKm = 6371

	// relatedDistanceKm is the great-circle cutoff for two products to be
	// considered location-related
	relatedDistanceKm = 50

	// locationTBD marks catalog entries whose pickup point is not yet set
	locationTBD = "Location TBD"

	// canonicalTamborine is the canonical spelling for the Tamborine
	// Mountain area, which appears under several names in the feed
	canonicalTamborine = "Mount Tamborine"
)

// regionKeywords is the gazetteer of operating regions used for
// address-line relatedness.
var regionKeywords = []string{"brisbane", "gold coast", "tamborine", "scenic rim", "springbrook"}

// CityFromAddress extracts the city from an address. String addresses are
// split on commas: the second-to-last part wins when two or more parts
// exist, otherwise the sole part. Returns "" when no city can be derived.
func CityFromAddress(a *domain.Address) string {
	if a == nil {
		return ""
	}
	if a.IsStructured() {
		return a.City
	}

	raw := strings.TrimSpace(a.Raw)
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return parts[0]
}

// NormalizeCity maps known spelling variants to their canonical city name.
func NormalizeCity(city string) string {
	if strings.Contains(strings.ToLower(city), "tamborine") {
		return canonicalTamborine
	}
	return city
}

// UniqueCities collects the distinct cities across the product list,
// skipping blanks and placeholder entries, normalizing spelling variants,
// and returning the result alphabetically sorted.
func UniqueCities(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var cities []string
	for i := range products {
		city := CityFromAddress(products[i].LocationAddress)
		if city == "" || city == locationTBD {
			continue
		}
		city = NormalizeCity(city)
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// ProductsLocationRelated reports whether two products operate from the
// same area. It tries, in order: exact string-address equality, city
// equality, state equality, great-circle distance, shared region keyword,
// and finally best-effort comparison of mixed string/structured forms.
func ProductsLocationRelated(p1, p2 *domain.Product) bool {
	a1, a2 := p1.LocationAddress, p2.LocationAddress
	if a1 == nil || a2 == nil {
		return false
	}

	// Both free-form strings: exact equality after trimming
	if !a1.IsStructured() && !a2.IsStructured() {
		if strings.EqualFold(strings.TrimSpace(a1.Raw), strings.TrimSpace(a2.Raw)) {
			return true
		}
	}

	if a1.IsStructured() && a2.IsStructured() {
		if a1.City != "" && a2.City != "" &&
			strings.EqualFold(NormalizeCity(a1.City), NormalizeCity(a2.City)) {
			return true
		}
		if a1.State != "" && a2.State != "" && strings.EqualFold(a1.State, a2.State) {
			return true
		}
		if a1.HasCoordinates() && a2.HasCoordinates() {
			dist := HaversineKm(*a1.Latitude, *a1.Longitude, *a2.Latitude, *a2.Longitude)
			if dist <= relatedDistanceKm {
				return true
			}
		}
	}

	// Shared operating-region keyword between the two address lines
	line1 := strings.ToLower(addressLine(a1))
	line2 := strings.ToLower(addressLine(a2))
	if line1 != "" && line2 != "" {
		for _, kw := range regionKeywords {
			if strings.Contains(line1, kw) && strings.Contains(line2, kw) {
				return true
			}
		}
	}

	// Mixed string/structured forms: coerce to a best-effort string
	s1 := a1.Display()
	s2 := a2.Display()
	if s1 != "" && s2 != "" &&
		strings.EqualFold(strings.TrimSpace(s1), strings.TrimSpace(s2)) {
		return true
	}

	return false
}

func addressLine(a *domain.Address) string {
	if a == nil {
		return ""
	}
	if a.Raw != "" {
		return a.Raw
	}
	return a.AddressLine
}

// HaversineKm returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
