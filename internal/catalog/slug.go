package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

var hyphenRuns = regexp.MustCompile(`-+`)

// slugify converts a string to a URL-friendly slug
func slugify(s string) string {
	s = strings.ToLower(s)

	var builder strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			builder.WriteRune('-')
		}
	}
	slug := hyphenRuns.ReplaceAllString(builder.String(), "-")
	return strings.Trim(slug, "-")
}

// GenerateProductSlug generates the canonical slug for a product:
// the lowercased product code followed by the slugified name.
func GenerateProductSlug(p *domain.Product) string {
	code := strings.ToLower(strings.TrimSpace(p.Code))
	name := slugify(p.Name)
	if name == "" {
		return code
	}
	return code + "-" + name
}

// ExtractProductCodeFromSlug returns the product code embedded in a slug:
// the first hyphen-delimited token, upper-cased. Returns "" for blank input.
func ExtractProductCodeFromSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	token := strings.SplitN(slug, "-", 2)[0]
	if token == "" {
		return ""
	}
	return strings.ToUpper(token)
}

// SlugResolver resolves catalog slugs to products. Resolution is
// deterministic and side-effect free; the logger is a diagnostic side
// channel only and defaults to a no-op.
type SlugResolver struct {
	log *zap.Logger
}

// NewSlugResolver creates a SlugResolver. A nil logger disables diagnostics.
func NewSlugResolver(log *zap.Logger) *SlugResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &SlugResolver{log: log}
}

// Find resolves a slug against the product list, trying strategies in
// order and returning the first hit:
//
//  1. First token as exact code.
//  2. First two tokens joined as exact code.
//  3. Any alphanumeric token of length >= 6 as a substring of the code,
//     in either direction.
//  4. Fuzzy match of the code-stripped slug against the slugified name.
//
// Returns nil when no strategy matches.
func (r *SlugResolver) Find(products []domain.Product, slug string) *domain.Product {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}

	tokens := strings.Split(slug, "-")

	// Strategy 1: first token as exact code
	if code := ExtractProductCodeFromSlug(slug); code != "" {
		for i := range products {
			if products[i].Code == code {
				r.log.Debug("slug resolved by code token",
					zap.String("slug", slug),
					zap.String("code", code))
				return &products[i]
			}
		}
	}

	// Strategy 2: first two tokens joined as exact code
	if len(tokens) >= 2 {
		code := strings.ToUpper(tokens[0] + "-" + tokens[1])
		for i := range products {
			if products[i].Code == code {
				r.log.Debug("slug resolved by two-token code",
					zap.String("slug", slug),
					zap.String("code", code))
				return &products[i]
			}
		}
	}

	// Strategy 3: long alphanumeric token as code substring, either direction
	for _, token := range tokens {
		if len(token) < 6 || !isAlphanumeric(token) {
			continue
		}
		upper := strings.ToUpper(token)
		for i := range products {
			code := strings.ToUpper(products[i].Code)
			if strings.Contains(code, upper) || strings.Contains(upper, code) {
				r.log.Debug("slug resolved by partial code token",
					zap.String("slug", slug),
					zap.String("token", token),
					zap.String("code", products[i].Code))
				return &products[i]
			}
		}
	}

	// Strategy 4: fuzzy name match on the code-stripped slug
	if len(tokens) >= 2 {
		nameSlug := normalizeSlugFragment(strings.Join(tokens[1:], "-"))
		if nameSlug != "" {
			for i := range products {
				productSlug := normalizeSlugFragment(slugify(products[i].Name))
				if productSlug == "" {
					continue
				}
				if strings.Contains(productSlug, nameSlug) || strings.Contains(nameSlug, productSlug) {
					r.log.Debug("slug resolved by fuzzy name match",
						zap.String("slug", slug),
						zap.String("code", products[i].Code))
					return &products[i]
				}
			}
		}
	}

	r.log.Debug("slug did not resolve", zap.String("slug", slug))
	return nil
}

// normalizeSlugFragment lowercases, replaces non-alphanumerics with
// hyphens, and keeps the first 20 characters for fuzzy comparison.
func normalizeSlugFragment(s string) string {
	s = strings.ToLower(s)
	var builder strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune('-')
		}
	}
	out := builder.String()
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
