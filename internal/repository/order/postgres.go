package order

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

const orderColumns = `id::text, order_number, owner_id, status, subtotal, tax, delivery_fee, discount, total,
payment_method, delivery_method, addr_name, street_address, city, postal_code, country,
COALESCE(tracking_number, ''), created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (id, order_number, owner_id, status, subtotal, tax, delivery_fee, discount, total,
                    payment_method, delivery_method, addr_name, street_address, city, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING ` + orderColumns + `
`
	var stored domain.Order
	row := tx.QueryRow(ctx, insertOrder,
		o.ID, o.OrderNumber, o.OwnerID, string(o.Status),
		o.Subtotal, o.Tax, o.DeliveryFee, o.Discount, o.Total,
		o.PaymentMethod, o.DeliveryMethod,
		o.ShippingAddr.Name, o.ShippingAddr.StreetAddress, o.ShippingAddr.City,
		o.ShippingAddr.PostalCode, o.ShippingAddr.Country,
	)
	if err := scanOrder(row, &stored); err != nil {
		r.logger.Printf("order repo: create owner_id=%s error=%v", o.OwnerID, err)
		return nil, err
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, product_name, image_url, unit_price, quantity, size)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
RETURNING id::text
`
	for _, it := range o.Items {
		var itemID string
		if err := tx.QueryRow(ctx, insertItem,
			stored.ID, it.ProductID, it.ProductName, it.ImageURL, it.UnitPrice, it.Quantity, it.Size,
		).Scan(&itemID); err != nil {
			r.logger.Printf("order repo: create item order_id=%s error=%v", stored.ID, err)
			return nil, err
		}
		it.ID = itemID
		stored.Items = append(stored.Items, it)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s number=%s owner_id=%s items=%d", stored.ID, stored.OrderNumber, stored.OwnerID, len(stored.Items))
	return &stored, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, q, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string, statuses []domain.OrderStatus) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE owner_id = $1
`
	args := []interface{}{ownerID}
	if len(statuses) > 0 {
		q += ` AND status = ANY($2)`
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		args = append(args, values)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list owner_id=%s error=%v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
`, string(status), id)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s -> %s", id, status)
	return nil
}

func (r *postgresRepo) SetTracking(ctx context.Context, id, trackingNumber string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET tracking_number = NULLIF($1, ''), updated_at = now()
WHERE id = $2
`, trackingNumber, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Stats(ctx context.Context) (domain.OrderStats, error) {
	const q = `
SELECT status, COUNT(*)
FROM orders
GROUP BY status
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return domain.OrderStats{}, err
	}
	defer rows.Close()

	var stats domain.OrderStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return domain.OrderStats{}, err
		}
		stats.Total += count
		switch domain.OrderStatus(status) {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusProcessing:
			stats.Processing = count
		case domain.StatusDelivered:
			stats.Delivered = count
		case domain.StatusCancelled:
			stats.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return domain.OrderStats{}, err
	}
	return stats, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT order_id::text, id::text, product_id::text, product_name, COALESCE(image_url, ''), unit_price, quantity, COALESCE(size, '')
FROM order_items
WHERE order_id = ANY($1)
ORDER BY product_name ASC
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var orderID string
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.ImageURL, &it.UnitPrice, &it.Quantity, &it.Size); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	var status string
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.OwnerID,
		&status,
		&o.Subtotal,
		&o.Tax,
		&o.DeliveryFee,
		&o.Discount,
		&o.Total,
		&o.PaymentMethod,
		&o.DeliveryMethod,
		&o.ShippingAddr.Name,
		&o.ShippingAddr.StreetAddress,
		&o.ShippingAddr.City,
		&o.ShippingAddr.PostalCode,
		&o.ShippingAddr.Country,
		&o.TrackingNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	o.Status = domain.OrderStatus(status)
	return nil
}
