package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
)

// ProductFilter narrows a product listing. Category filters by exact match
// when non-nil; ActiveOnly keeps only active rows.
type ProductFilter struct {
	Category   *string
	ActiveOnly bool
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpdateProduct(ctx context.Context, product model.Product) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, in_price, price, category, description, in_stock, is_active, created_at, updated_at`

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		conds []string
		args  []any
	)
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r productRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM products WHERE category IS NOT NULL ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// UpdateProduct writes the full recognized-field set of an already merged
// record. created_at is never touched.
func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return fmt.Errorf("convert price: %w", err)
	}

	var inPrice pgtype.Numeric
	if product.InPrice != nil {
		inPrice, err = numericFromFloat(*product.InPrice)
		if err != nil {
			return fmt.Errorf("convert in_price: %w", err)
		}
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, in_price = $3, price = $4, category = $5,
		     description = $6, in_stock = $7, is_active = $8, updated_at = $9
		 WHERE id = $1`,
		product.ID, product.Name, inPrice, price, product.Category,
		product.Description, product.InStock, product.IsActive, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product: %w", pgx.ErrNoRows)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var (
		product model.Product
		inPrice pgtype.Numeric
		price   pgtype.Numeric
		inStock pgtype.Int4
	)

	if err := row.Scan(
		&product.ID,
		&product.Name,
		&inPrice,
		&price,
		&product.Category,
		&product.Description,
		&inStock,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	priceVal, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	product.Price = priceVal.Float64

	if inPrice.Valid {
		inPriceVal, err := inPrice.Float64Value()
		if err != nil {
			return model.Product{}, fmt.Errorf("convert in_price to float64: %w", err)
		}
		product.InPrice = &inPriceVal.Float64
	}

	// in_stock is nullable in the schema; NULL reads back as 0.
	if inStock.Valid {
		product.InStock = int(inStock.Int32)
	}

	return product, nil
}

func numericFromFloat(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", v)); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}
