package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/repository"
	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
	"github.com/tuanvumaihuynh/pricelist/pkg/validator"
	"github.com/tuanvumaihuynh/pricelist/pkg/zerror"
)

type fakeTermsRepo struct {
	texts    []model.TermsText
	sections []string
}

func (r *fakeTermsRepo) WithDB(db.DB) repository.TermsRepository { return r }

func (r *fakeTermsRepo) ListByLanguage(_ context.Context, lang model.Language) ([]model.TermsText, error) {
	texts := make([]model.TermsText, 0)
	for _, t := range r.texts {
		if t.Lang == lang {
			texts = append(texts, t)
		}
	}
	return texts, nil
}

func (r *fakeTermsRepo) ListSections(context.Context) ([]string, error) {
	return r.sections, nil
}

func newTermsFixture(t *testing.T, texts []model.TermsText) TermsService {
	t.Helper()
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)
	return NewTermsService(&fakeTermsRepo{texts: texts}, v)
}

func TestGetTerms(t *testing.T) {
	ctx := context.Background()

	seeded := []model.TermsText{
		{ID: 1, Lang: model.LanguageEN, Section: "terms_text_1", Content: "Hello"},
		{ID: 2, Lang: model.LanguageEN, Section: "terms_text_2", Content: "World"},
		{ID: 3, Lang: model.LanguageSV, Section: "terms_text_1", Content: "Hej"},
	}

	t.Run("Should group sections for the requested language", func(t *testing.T) {
		svc := newTermsFixture(t, seeded)

		terms, err := svc.GetTerms(ctx, GetTermsParams{Language: model.LanguageEN})

		require.NoError(t, err)
		assert.Equal(t, model.LanguageEN, terms.Language)
		assert.Equal(t, map[string]string{
			"terms_text_1": "Hello",
			"terms_text_2": "World",
		}, terms.Sections)
	})

	t.Run("Should reject a language outside the enumeration", func(t *testing.T) {
		svc := newTermsFixture(t, seeded)

		_, err := svc.GetTerms(ctx, GetTermsParams{Language: "xx"})

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, apperr.InvalidLanguageCode, zErr.Code())
		assert.Equal(t, zerror.StatusBadRequest, zErr.Status())
	})

	t.Run("Should report no terms for a valid language with zero rows", func(t *testing.T) {
		svc := newTermsFixture(t, nil)

		_, err := svc.GetTerms(ctx, GetTermsParams{Language: model.LanguageEN})

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, apperr.NoTermsForLanguageCode, zErr.Code())
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
	})
}

func TestListSections(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)
	svc := NewTermsService(&fakeTermsRepo{sections: []string{"terms_text_1", "terms_text_2"}}, v)

	sections, err := svc.ListSections(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"terms_text_1", "terms_text_2"}, sections)
}
