package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
	"github.com/tuanvumaihuynh/pricelist/pkg/zerror"
)

func TestUpdateProductParamsDecode(t *testing.T) {
	t.Run("Should decode numeric string", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"price": "25.50"}`), &params)

		require.NoError(t, err)
		assert.True(t, params.Price.Present)
		assert.True(t, params.Price.Valid)
		assert.Equal(t, 25.5, params.Price.Value)
	})

	t.Run("Should decode JSON number", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"in_price": 19.99}`), &params)

		require.NoError(t, err)
		assert.True(t, params.InPrice.Present)
		assert.True(t, params.InPrice.Valid)
		assert.Equal(t, 19.99, params.InPrice.Value)
	})

	t.Run("Should treat null and empty string as present but unset", func(t *testing.T) {
		for _, payload := range []string{`{"price": null}`, `{"price": ""}`, `{"price": "  "}`} {
			var params UpdateProductParams
			err := json.Unmarshal([]byte(payload), &params)

			require.NoError(t, err, payload)
			assert.True(t, params.Price.Present, payload)
			assert.False(t, params.Price.Valid, payload)
		}
	})

	t.Run("Should reject non-numeric string for numeric field", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"price": "not-a-number"}`), &params)

		require.Error(t, err)

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, apperr.InvalidNumericInputCode, zErr.Code())
	})

	t.Run("Should decode integer input", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"in_stock": "42"}`), &params)

		require.NoError(t, err)
		assert.True(t, params.InStock.Present)
		assert.True(t, params.InStock.Valid)
		assert.Equal(t, 42, params.InStock.Value)
	})

	t.Run("Should reject fractional string for integer field", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"in_stock": "3.5"}`), &params)

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, apperr.InvalidNumericInputCode, zErr.Code())
	})

	t.Run("Should drop unrecognized keys", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"bogus": "x", "also_bogus": 1}`), &params)

		require.NoError(t, err)
		assert.True(t, params.Empty())
	})

	t.Run("Should distinguish absent from null for optional fields", func(t *testing.T) {
		var params UpdateProductParams
		err := json.Unmarshal([]byte(`{"category": null}`), &params)

		require.NoError(t, err)
		assert.True(t, params.Category.Present)
		assert.True(t, params.Category.Null)
		assert.False(t, params.Description.Present)
	})
}
