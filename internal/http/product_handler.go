package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
	"github.com/tuanvumaihuynh/pricelist/internal/service"
	"github.com/tuanvumaihuynh/pricelist/pkg/zerror"
)

type productHandler struct {
	productSvc service.ProductService
}

func newProductHandler(productSvc service.ProductService) *productHandler {
	return &productHandler{
		productSvc: productSvc,
	}
}

func (h *productHandler) listProducts(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	params := service.ListProductsParams{
		Category: query.Get("category"),
		Active:   query.Get("active"),
	}
	if !query.Has("active") {
		params.Active = "true"
	}

	products, err := h.productSvc.ListProducts(r.Context(), params)
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	respondData(w, products)
	return nil
}

func (h *productHandler) listCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.productSvc.ListCategories(r.Context())
	if err != nil {
		return fmt.Errorf("product service list categories: %w", err)
	}

	respondData(w, categories)
	return nil
}

func (h *productHandler) getProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	respondData(w, product)
	return nil
}

func (h *productHandler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r)
	if err != nil {
		return err
	}

	var params service.UpdateProductParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		var zErr zerror.ZError
		if errors.As(err, &zErr) {
			return err
		}
		return apperr.ValidationErr.WrapParent(err)
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
	return nil
}

// productID parses the {id} route parameter. A non-numeric identifier cannot
// match any stored record, so it maps to the not-found error.
func productID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ProductNotFoundErr.WrapParent(err)
	}
	return id, nil
}
