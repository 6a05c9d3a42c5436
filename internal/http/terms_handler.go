package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/service"
)

type termsHandler struct {
	termsSvc service.TermsService
}

func newTermsHandler(termsSvc service.TermsService) *termsHandler {
	return &termsHandler{
		termsSvc: termsSvc,
	}
}

type termsResponse struct {
	Language model.Language    `json:"language"`
	Terms    map[string]string `json:"terms"`
}

func (h *termsHandler) getTerms(w http.ResponseWriter, r *http.Request) error {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = string(model.LanguageEN)
	}

	terms, err := h.termsSvc.GetTerms(r.Context(), service.GetTermsParams{
		Language: model.Language(lang),
	})
	if err != nil {
		return fmt.Errorf("terms service get terms: %w", err)
	}

	respondData(w, termsResponse{
		Language: terms.Language,
		Terms:    terms.Sections,
	})
	return nil
}

func (h *termsHandler) listSections(w http.ResponseWriter, r *http.Request) error {
	sections, err := h.termsSvc.ListSections(r.Context())
	if err != nil {
		return fmt.Errorf("terms service list sections: %w", err)
	}

	respondData(w, sections)
	return nil
}
