package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `p.id::text, p.name, COALESCE(p.description, ''), p.price, COALESCE(p.image_url, ''),
p.category_id::text, c.name, p.rating, p.review_count, p.in_stock, p.sizes, p.featured, p.created_at`

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE 1=1
`
	var args []interface{}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		q += ` AND p.category_id = $1`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		switch len(args) {
		case 1:
			q += ` AND (p.name ILIKE $1 OR p.description ILIKE $1)`
		case 2:
			q += ` AND (p.name ILIKE $2 OR p.description ILIKE $2)`
		}
	}
	if filter.Featured {
		q += ` AND p.featured`
	}
	q += ` ORDER BY p.name ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	var p domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, image_url, category_id, rating, review_count, in_stock, sizes, featured)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url,
    category_id = EXCLUDED.category_id,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    in_stock = EXCLUDED.in_stock,
    sizes = EXCLUDED.sizes,
    featured = EXCLUDED.featured
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID,
		p.Rating, p.ReviewCount, p.InStock, p.Sizes, p.Featured,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted name=%q id=%s", res.Name, res.ID)
	return &res, nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.CategoryID,
		&p.CategoryName,
		&p.Rating,
		&p.ReviewCount,
		&p.InStock,
		&p.Sizes,
		&p.Featured,
		&p.CreatedAt,
	)
}
