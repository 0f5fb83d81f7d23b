package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `INSERT INTO orders (id, customer_name, customer_phone, customer_address, notes, total_amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, customer_name, customer_phone, customer_address, notes, total_amount, status, created_at`

type InsertOrderParams struct {
	ID              uuid.UUID      `json:"id"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	Notes           string         `json:"notes"`
	TotalAmount     pgtype.Numeric `json:"total_amount"`
	Status          string         `json:"status"`
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.ID,
		arg.CustomerName,
		arg.CustomerPhone,
		arg.CustomerAddress,
		arg.Notes,
		arg.TotalAmount,
		arg.Status,
	)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.CustomerName,
		&i.CustomerPhone,
		&i.CustomerAddress,
		&i.Notes,
		&i.TotalAmount,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

type InsertOrderItemParams struct {
	ID          uuid.UUID      `json:"id"`
	OrderID     uuid.UUID      `json:"order_id"`
	ProductID   uuid.UUID      `json:"product_id"`
	ProductName string         `json:"product_name"`
	Quantity    int32          `json:"quantity"`
	Price       pgtype.Numeric `json:"price"`
}

func (q *Queries) InsertOrderItems(c context.Context, arg []InsertOrderItemParams) (int64, error) {
	return q.db.CopyFrom(
		c,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "product_id", "product_name", "quantity", "price"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]interface{}, error) {
			return []interface{}{
				arg[i].ID,
				arg[i].OrderID,
				arg[i].ProductID,
				arg[i].ProductName,
				arg[i].Quantity,
				arg[i].Price,
			}, nil
		}),
	)
}

const findOrders = `SELECT o.id, o.customer_name, o.customer_phone, o.customer_address, o.notes, o.total_amount,
       o.status, o.created_at,
       COALESCE(
           json_agg(json_build_object(
               'id', oi.id,
               'order_id', oi.order_id,
               'product_id', oi.product_id,
               'product_name', oi.product_name,
               'quantity', oi.quantity,
               'price', oi.price
           ) ORDER BY oi.product_name) FILTER (WHERE oi.id IS NOT NULL),
           '[]'
       ) AS order_items
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
GROUP BY o.id
ORDER BY o.created_at DESC`

type FindOrdersRow struct {
	ID              uuid.UUID          `json:"id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Notes           string             `json:"notes"`
	TotalAmount     pgtype.Numeric     `json:"total_amount"`
	Status          string             `json:"status"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	OrderItems      []byte             `json:"order_items"`
}

func (q *Queries) FindOrders(c context.Context) ([]FindOrdersRow, error) {
	rows, err := q.db.Query(c, findOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindOrdersRow{}
	for rows.Next() {
		var i FindOrdersRow
		if err := rows.Scan(
			&i.ID,
			&i.CustomerName,
			&i.CustomerPhone,
			&i.CustomerAddress,
			&i.Notes,
			&i.TotalAmount,
			&i.Status,
			&i.CreatedAt,
			&i.OrderItems,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
