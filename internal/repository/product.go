package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, category, description, price, image_url, in_stock, created_at`

const findProducts = `SELECT ` + productColumns + ` FROM products ORDER BY created_at, name`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := scanProduct(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductById = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, findProductById, id)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const findProductsByCategory = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at, name`

func (q *Queries) FindProductsByCategory(c context.Context, category string) ([]Product, error) {
	rows, err := q.db.Query(c, findProductsByCategory, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := scanProduct(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findCategories = `SELECT DISTINCT category FROM products ORDER BY category`

func (q *Queries) FindCategories(c context.Context) ([]string, error) {
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		items = append(items, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countProducts = `SELECT COUNT(*) FROM products`

func (q *Queries) CountProducts(c context.Context) (int64, error) {
	row := q.db.QueryRow(c, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertProduct = `INSERT INTO products (name, category, description, price, image_url, in_stock)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + productColumns

type InsertProductParams struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	ImageUrl    string         `json:"image_url"`
	InStock     bool           `json:"in_stock"`
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.Name,
		arg.Category,
		arg.Description,
		arg.Price,
		arg.ImageUrl,
		arg.InStock,
	)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner, i *Product) error {
	return row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Description,
		&i.Price,
		&i.ImageUrl,
		&i.InStock,
		&i.CreatedAt,
	)
}
