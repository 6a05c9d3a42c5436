package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTermsServer(t *testing.T) *httptest.Server {
	t.Helper()

	content := map[string]map[string]string{
		"en": {
			"terms_text_2": "World",
			"terms_text_1": "Hello",
		},
		"sv": {
			"terms_text_1": "Hej",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/terms", func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = "en"
		}
		sections, ok := content[lang]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
				"error": "invalid language",
				"code":  "INVALID_LANGUAGE",
			})
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]any{
			"language": lang,
			"terms":    sections,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTermsViewLoad(t *testing.T) {
	srv := newTermsServer(t)
	view := NewTermsView(New(srv.URL, WithHTTPClient(srv.Client())))

	require.NoError(t, view.Load(context.Background(), ""))

	assert.Equal(t, "en", view.Language())
	assert.Equal(t, []Section{
		{Key: "terms_text_1", Content: "Hello"},
		{Key: "terms_text_2", Content: "World"},
	}, view.Sections())
}

func TestTermsViewSetLanguage(t *testing.T) {
	srv := newTermsServer(t)
	view := NewTermsView(New(srv.URL, WithHTTPClient(srv.Client())))
	require.NoError(t, view.Load(context.Background(), "en"))

	t.Run("Should switch to another language", func(t *testing.T) {
		require.NoError(t, view.SetLanguage(context.Background(), "sv"))

		assert.Equal(t, "sv", view.Language())
		assert.Equal(t, []Section{{Key: "terms_text_1", Content: "Hej"}}, view.Sections())
	})

	t.Run("Should keep the loaded state on a failed switch", func(t *testing.T) {
		require.NoError(t, view.SetLanguage(context.Background(), "sv"))

		err := view.SetLanguage(context.Background(), "xx")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "INVALID_LANGUAGE", apiErr.Code)

		assert.Equal(t, "sv", view.Language())
	})
}
