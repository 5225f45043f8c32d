package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// PostgresCatalogRepository implements CatalogRepository using PostgreSQL
type PostgresCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalogRepository creates a new PostgresCatalogRepository
func NewPostgresCatalogRepository(pool *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{pool: pool}
}

// productColumns defines the columns to select for products.
// Using COALESCE for nullable string columns to avoid scan errors.
const productColumns = `code, name,
	COALESCE(short_description, '') as short_description,
	COALESCE(description, '') as description,
	COALESCE(type, '') as type,
	advertised_price,
	COALESCE(categories, '[]'::jsonb) as categories,
	COALESCE(address_raw, '') as address_raw,
	COALESCE(address_line, '') as address_line,
	COALESCE(city, '') as city,
	COALESCE(state, '') as state,
	COALESCE(post_code, '') as post_code,
	COALESCE(country_code, '') as country_code,
	latitude, longitude,
	COALESCE(status, '') as status,
	COALESCE(quantity_required_min, 0) as quantity_required_min,
	COALESCE(quantity_required_max, 0) as quantity_required_max,
	COALESCE(images, '[]'::jsonb) as images`

// scanProduct scans a row into a Product struct
func (r *PostgresCatalogRepository) scanProduct(row pgx.Row) (*domain.Product, error) {
	p := &domain.Product{}
	var categoriesJSON, imagesJSON []byte
	var addressRaw, addressLine, city, state, postCode, countryCode string
	var latitude, longitude *float64

	err := row.Scan(
		&p.Code,
		&p.Name,
		&p.ShortDescription,
		&p.Description,
		&p.Type,
		&p.AdvertisedPrice,
		&categoriesJSON,
		&addressRaw,
		&addressLine,
		&city,
		&state,
		&postCode,
		&countryCode,
		&latitude,
		&longitude,
		&p.Status,
		&p.QuantityRequiredMin,
		&p.QuantityRequiredMax,
		&imagesJSON,
	)
	if err != nil {
		return nil, err
	}

	if categoriesJSON != nil {
		if err := json.Unmarshal(categoriesJSON, &p.Categories); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories for product %s: %w", p.Code, err)
		}
	}
	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images for product %s: %w", p.Code, err)
		}
	}

	p.LocationAddress = buildAddress(addressRaw, addressLine, city, state, postCode, countryCode, latitude, longitude)

	return p, nil
}

// buildAddress assembles an Address from the flattened columns, or nil
// when the row carries no location at all.
func buildAddress(raw, line, city, state, postCode, countryCode string, lat, lon *float64) *domain.Address {
	if raw == "" && line == "" && city == "" && state == "" && postCode == "" &&
		countryCode == "" && lat == nil && lon == nil {
		return nil
	}
	return &domain.Address{
		Raw:         raw,
		AddressLine: line,
		City:        city,
		State:       state,
		PostCode:    postCode,
		CountryCode: countryCode,
		Latitude:    lat,
		Longitude:   lon,
	}
}

// ListProducts retrieves all live products
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE deleted_at IS NULL ORDER BY code`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProductByCode retrieves a product by its code
func (r *PostgresCatalogRepository) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE code = $1 AND deleted_at IS NULL`, productColumns)
	p, err := r.scanProduct(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListCustomers retrieves all customers
func (r *PostgresCatalogRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT email,
			COALESCE(first_name, '') as first_name,
			COALESCE(last_name, '') as last_name,
			COALESCE(phone, '') as phone,
			COALESCE(city, '') as city
		FROM customers
		ORDER BY email
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.City); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// ListBookings retrieves all bookings with their items
func (r *PostgresCatalogRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	query := `
		SELECT order_number,
			customer_email,
			COALESCE(customer_first_name, '') as customer_first_name,
			COALESCE(customer_last_name, '') as customer_last_name,
			COALESCE(customer_phone, '') as customer_phone,
			COALESCE(customer_city, '') as customer_city,
			COALESCE(items, '[]'::jsonb) as items,
			total_amount,
			status,
			created_date
		FROM bookings
		ORDER BY created_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var itemsJSON []byte
		err := rows.Scan(
			&b.OrderNumber,
			&b.Customer.Email,
			&b.Customer.FirstName,
			&b.Customer.LastName,
			&b.Customer.Phone,
			&b.Customer.City,
			&itemsJSON,
			&b.TotalAmount,
			&b.Status,
			&b.CreatedDate,
		)
		if err != nil {
			return nil, err
		}
		if itemsJSON != nil {
			if err := json.Unmarshal(itemsJSON, &b.Items); err != nil {
				return nil, fmt.Errorf("failed to unmarshal items for booking %s: %w", b.OrderNumber, err)
			}
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
