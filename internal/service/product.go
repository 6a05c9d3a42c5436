package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/repository"
	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
)

// UpdateProductParams is the recognized field set of a partial product
// update. Absent keys leave the stored field untouched; unknown payload keys
// never reach this struct because the decoder drops them.
type UpdateProductParams struct {
	Name        Optional[string] `json:"name"`
	InPrice     NumericInput     `json:"in_price"`
	Price       NumericInput     `json:"price"`
	Category    Optional[string] `json:"category"`
	Description Optional[string] `json:"description"`
	InStock     IntegerInput     `json:"in_stock"`
	IsActive    Optional[bool]   `json:"is_active"`
}

// Empty reports whether no recognized field is present.
func (p UpdateProductParams) Empty() bool {
	return !p.Name.Present &&
		!p.InPrice.Present &&
		!p.Price.Present &&
		!p.Category.Present &&
		!p.Description.Present &&
		!p.InStock.Present &&
		!p.IsActive.Present
}

// apply merges the params into the current record.
//
// Coercion rules: price keeps its stored value when set to null or empty,
// in_price becomes NULL, in_stock becomes 0. Null name or is_active are
// no-ops since those columns cannot hold NULL.
func (p UpdateProductParams) apply(current model.Product) model.Product {
	merged := current

	if p.Name.Present && !p.Name.Null {
		merged.Name = p.Name.Value
	}
	if p.Price.Present && p.Price.Valid {
		merged.Price = p.Price.Value
	}
	if p.InPrice.Present {
		if p.InPrice.Valid {
			value := p.InPrice.Value
			merged.InPrice = &value
		} else {
			merged.InPrice = nil
		}
	}
	if p.InStock.Present {
		if p.InStock.Valid {
			merged.InStock = p.InStock.Value
		} else {
			merged.InStock = 0
		}
	}
	if p.Category.Present {
		if p.Category.Null {
			merged.Category = nil
		} else {
			value := p.Category.Value
			merged.Category = &value
		}
	}
	if p.Description.Present {
		if p.Description.Null {
			merged.Description = nil
		} else {
			value := p.Description.Value
			merged.Description = &value
		}
	}
	if p.IsActive.Present && !p.IsActive.Null {
		merged.IsActive = p.IsActive.Value
	}

	return merged
}

// ListProductsParams filters a product listing. Only the literal "true"
// restricts the listing to active products; any other Active value lists
// everything, inactive rows included.
type ListProductsParams struct {
	Category string
	Active   string
}

type ProductService interface {
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
}

type productService struct {
	db          db.DB
	productRepo repository.ProductRepository
}

func NewProductService(db db.DB, productRepo repository.ProductRepository) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
	}
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	filter := repository.ProductFilter{
		ActiveOnly: params.Active == "true",
	}
	if params.Category != "" {
		filter.Category = &params.Category
	}

	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list categories: %w", err)
	}

	return categories, nil
}

// UpdateProduct applies a whitelisted partial update to one product and
// returns the full resulting record. The read and write share a transaction;
// concurrent updates to the same row are last-write-wins.
func (s *productService) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	var updated model.Product

	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		repo := s.productRepo.WithDB(tx)

		current, err := repo.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.ProductNotFoundErr.WrapParent(err)
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		// An update with no recognized field writes nothing, so
		// updated_at stays as it was.
		if params.Empty() {
			updated = current
			return nil
		}

		merged := params.apply(current)
		merged.UpdatedAt = time.Now().UTC()

		if err := repo.UpdateProduct(ctx, merged); err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		updated = merged
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}
