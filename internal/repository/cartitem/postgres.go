package cartitem

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const itemColumns = `id::text, owner_id, product_id::text, product_name, COALESCE(image_url, ''), unit_price, quantity, COALESCE(size, ''), added_at`

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.CartItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE owner_id = $1
ORDER BY added_at ASC
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CartItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE id = $1
`
	var it domain.CartItem
	if err := scanItem(r.pool.QueryRow(ctx, q, id), &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var existingID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_items
WHERE owner_id = $1 AND product_id = $2 AND COALESCE(size, '') = $3
`, item.OwnerID, item.ProductID, item.Size).Scan(&existingID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var stored domain.CartItem
	if err == nil {
		row := tx.QueryRow(ctx, `
UPDATE cart_items
SET quantity = quantity + $1
WHERE id = $2
RETURNING `+itemColumns+`
`, item.Quantity, existingID)
		if err := scanItem(row, &stored); err != nil {
			return nil, err
		}
	} else {
		row := tx.QueryRow(ctx, `
INSERT INTO cart_items (owner_id, product_id, product_name, image_url, unit_price, quantity, size)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
RETURNING `+itemColumns+`
`, item.OwnerID, item.ProductID, item.ProductName, item.ImageURL, item.UnitPrice, item.Quantity, item.Size)
		if err := scanItem(row, &stored); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, quantity, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, ownerID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE owner_id = $1
`, ownerID)
	return err
}

func (r *postgresRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(quantity), 0)
FROM cart_items
WHERE owner_id = $1
`, ownerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanItem(row pgx.Row, it *domain.CartItem) error {
	return row.Scan(
		&it.ID,
		&it.OwnerID,
		&it.ProductID,
		&it.ProductName,
		&it.ImageURL,
		&it.UnitPrice,
		&it.Quantity,
		&it.Size,
		&it.AddedAt,
	)
}
