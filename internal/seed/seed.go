// Package seed inserts demo catalog data for manual testing. It lives outside
// the engine on purpose: production reads never auto-populate empty storage.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Name     string
	ImageURL string
}

type productSeed struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Rating      float64
	ReviewCount int
	Sizes       []string
	Featured    bool
}

var categories = []categorySeed{
	{Name: "Juices"},
	{Name: "Concentrates"},
	{Name: "Syrups"},
	{Name: "Gift Sets"},
}

var products = []productSeed{
	{
		Name:        "Classic Tamarind Juice",
		Description: "Our signature tamarind juice, sweet and tangy",
		Price:       4.99,
		Category:    "Juices",
		Rating:      4.6,
		ReviewCount: 182,
		Sizes:       []string{"250ml", "500ml", "1L"},
		Featured:    true,
	},
	{
		Name:        "Spiced Tamarind Delight",
		Description: "Tamarind juice with a warming blend of spices",
		Price:       5.49,
		Category:    "Juices",
		Rating:      4.4,
		ReviewCount: 97,
		Sizes:       []string{"250ml", "500ml"},
	},
	{
		Name:        "Mango Tamarind Fusion",
		Description: "Ripe mango balanced against tart tamarind",
		Price:       5.99,
		Category:    "Juices",
		Rating:      4.8,
		ReviewCount: 143,
		Sizes:       []string{"250ml", "500ml"},
		Featured:    true,
	},
	{
		Name:        "Tamarind Lemonade",
		Description: "A tangy twist on classic lemonade",
		Price:       4.99,
		Category:    "Juices",
		Rating:      4.3,
		ReviewCount: 64,
		Sizes:       []string{"330ml", "1L"},
	},
	{
		Name:        "Tamarind Concentrate 500ml",
		Description: "Concentrated tamarind base, dilute to taste",
		Price:       12.99,
		Category:    "Concentrates",
		Rating:      4.7,
		ReviewCount: 58,
		Sizes:       []string{"500ml"},
	},
	{
		Name:        "Tamarind Simple Syrup",
		Description: "Bar-ready tamarind syrup for cocktails and sodas",
		Price:       9.99,
		Category:    "Syrups",
		Rating:      4.5,
		ReviewCount: 41,
		Sizes:       []string{"375ml"},
	},
	{
		Name:        "Tamarind Variety Pack",
		Description: "Six bottles across our core range",
		Price:       29.99,
		Category:    "Gift Sets",
		Rating:      4.9,
		ReviewCount: 27,
		Sizes:       []string{"6x250ml"},
		Featured:    true,
	},
}

// Apply inserts demo data. It is idempotent via ON CONFLICT upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = id
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) (string, error) {
	const q = `
INSERT INTO categories (name, image_url)
VALUES ($1, NULLIF($2, ''))
ON CONFLICT (name) DO UPDATE SET image_url = EXCLUDED.image_url
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Name, c.ImageURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price, category_id, rating, review_count, in_stock, sizes, featured)
VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    price = EXCLUDED.price,
    category_id = EXCLUDED.category_id,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    sizes = EXCLUDED.sizes,
    featured = EXCLUDED.featured
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, categoryID, p.Rating, p.ReviewCount, p.Sizes, p.Featured)
	return err
}
