package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI emulates the product endpoints the table talks to. Updates apply the
// payload to the stored row; failUpdates forces a 500 instead.
type fakeAPI struct {
	products    map[int64]Product
	order       []int64
	failUpdates bool

	updateCalls int
	lastPayload map[string]any
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		products := make([]Product, 0, len(f.order))
		for _, id := range f.order {
			products = append(products, f.products[id])
		}
		writeEnvelope(w, http.StatusOK, products)
	})

	mux.HandleFunc("POST /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.updateCalls++

		if f.failUpdates {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
				"error": "Internal server error",
				"code":  "INTERNAL_SERVER_ERROR",
			})
			return
		}

		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.lastPayload = payload

		p := f.products[id]
		for key, value := range payload {
			switch key {
			case "name":
				p.Name = value.(string)
			case "price":
				p.Price = value.(float64)
			case "in_price":
				v := value.(float64)
				p.InPrice = &v
			case "in_stock":
				p.InStock = int(value.(float64))
			case "category":
				v := value.(string)
				p.Category = &v
			case "description":
				v := value.(string)
				p.Description = &v
			}
		}
		f.products[id] = p
		writeEnvelope(w, http.StatusOK, p)
	})

	return mux
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"success": true,
		"data":    data,
	})
}

func inPrice(v float64) *float64 { return &v }

func newTableFixture(t *testing.T) (*fakeAPI, *Table) {
	t.Helper()

	api := &fakeAPI{
		products: map[int64]Product{
			1: {ID: 1, Name: "Cable", InPrice: inPrice(2.5), Price: 9.99, InStock: 100, IsActive: true},
			2: {ID: 2, Name: "Widget", Price: 19.99, InStock: 5, IsActive: true},
		},
		order: []int64{1, 2},
	}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	table := NewTable(New(srv.URL, WithHTTPClient(srv.Client())))
	require.NoError(t, table.Load(context.Background()))
	return api, table
}

func TestTableLoad(t *testing.T) {
	_, table := newTableFixture(t)

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Cable", rows[0].Name)
	assert.Equal(t, "Widget", rows[1].Name)

	_, _, editing := table.Editing()
	assert.False(t, editing)
}

func TestTableEditing(t *testing.T) {
	t.Run("Should seed the draft from the current cell value", func(t *testing.T) {
		_, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(1, ColumnPrice))
		assert.Equal(t, "9.99", table.Draft())

		require.NoError(t, table.BeginEdit(1, ColumnInPrice))
		assert.Equal(t, "2.5", table.Draft())

		require.NoError(t, table.BeginEdit(2, ColumnInPrice))
		assert.Equal(t, "", table.Draft())
	})

	t.Run("Should discard a previous edit when a new one begins", func(t *testing.T) {
		_, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(1, ColumnName))
		table.SetDraft("Changed")

		require.NoError(t, table.BeginEdit(2, ColumnName))

		id, col, editing := table.Editing()
		require.True(t, editing)
		assert.Equal(t, int64(2), id)
		assert.Equal(t, ColumnName, col)
		assert.Equal(t, "Widget", table.Draft())

		row, _ := table.Row(1)
		assert.Equal(t, "Cable", row.Name)
	})

	t.Run("Should reject an unknown row", func(t *testing.T) {
		_, table := newTableFixture(t)
		assert.Error(t, table.BeginEdit(99, ColumnName))
	})

	t.Run("Should cancel without a network call", func(t *testing.T) {
		api, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(1, ColumnName))
		table.SetDraft("Changed")
		table.Cancel()

		_, _, editing := table.Editing()
		assert.False(t, editing)
		assert.Equal(t, 0, api.updateCalls)

		row, _ := table.Row(1)
		assert.Equal(t, "Cable", row.Name)
	})
}

func TestTableCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should send the edited field and reconcile with the server", func(t *testing.T) {
		api, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(1, ColumnPrice))
		table.SetDraft("25.50")
		require.NoError(t, table.Commit(ctx))

		row, _ := table.Row(1)
		assert.Equal(t, 25.5, row.Price)
		assert.Equal(t, map[string]any{"price": 25.5}, api.lastPayload)
		assert.False(t, table.IsUpdating(1))
		assert.Empty(t, table.Banner())
	})

	t.Run("Should coerce an unparsable numeric draft to zero", func(t *testing.T) {
		api, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(1, ColumnInStock))
		table.SetDraft("abc")
		require.NoError(t, table.Commit(ctx))

		row, _ := table.Row(1)
		assert.Equal(t, 0, row.InStock)
		assert.Equal(t, map[string]any{"in_stock": float64(0)}, api.lastPayload)
	})

	t.Run("Should pass text drafts through untouched", func(t *testing.T) {
		api, table := newTableFixture(t)

		require.NoError(t, table.BeginEdit(2, ColumnName))
		table.SetDraft("Gadget")
		require.NoError(t, table.Commit(ctx))

		row, _ := table.Row(2)
		assert.Equal(t, "Gadget", row.Name)
		assert.Equal(t, map[string]any{"name": "Gadget"}, api.lastPayload)
	})

	t.Run("Should roll back and raise the banner on a failed commit", func(t *testing.T) {
		api, table := newTableFixture(t)
		api.failUpdates = true

		require.NoError(t, table.BeginEdit(1, ColumnPrice))
		table.SetDraft("25.50")

		err := table.Commit(ctx)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

		row, _ := table.Row(1)
		assert.Equal(t, 9.99, row.Price)
		assert.Equal(t, "Failed to update product", table.Banner())
		assert.False(t, table.IsUpdating(1))

		table.DismissBanner()
		assert.Empty(t, table.Banner())
	})

	t.Run("Should be a no-op when nothing is being edited", func(t *testing.T) {
		api, table := newTableFixture(t)

		require.NoError(t, table.Commit(ctx))
		assert.Equal(t, 0, api.updateCalls)
	})
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "product not found", Code: "PRODUCT_NOT_FOUND"}
	assert.True(t, strings.Contains(err.Error(), "404"))
	assert.True(t, strings.Contains(err.Error(), "product not found"))
}
