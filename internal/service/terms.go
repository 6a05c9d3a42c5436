package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/repository"
	"github.com/tuanvumaihuynh/pricelist/pkg/validator"
)

type GetTermsParams struct {
	Language model.Language `validate:"required,enum"`
}

// Terms is all text sections of one language, keyed by section.
type Terms struct {
	Language model.Language
	Sections map[string]string
}

type TermsService interface {
	GetTerms(ctx context.Context, params GetTermsParams) (Terms, error)
	ListSections(ctx context.Context) ([]string, error)
}

type termsService struct {
	termsRepo repository.TermsRepository
	validator validator.Validator
}

func NewTermsService(termsRepo repository.TermsRepository, validator validator.Validator) TermsService {
	return &termsService{
		termsRepo: termsRepo,
		validator: validator,
	}
}

func (s *termsService) GetTerms(ctx context.Context, params GetTermsParams) (Terms, error) {
	if err := s.validator.Validate(params); err != nil {
		return Terms{}, apperr.InvalidLanguageErr.WrapParent(err)
	}

	texts, err := s.termsRepo.ListByLanguage(ctx, params.Language)
	if err != nil {
		return Terms{}, fmt.Errorf("terms repository list by language: %w", err)
	}

	if len(texts) == 0 {
		return Terms{}, apperr.NoTermsForLanguageErr
	}

	sections := make(map[string]string, len(texts))
	for _, text := range texts {
		sections[text.Section] = text.Content
	}

	return Terms{
		Language: params.Language,
		Sections: sections,
	}, nil
}

func (s *termsService) ListSections(ctx context.Context) ([]string, error) {
	sections, err := s.termsRepo.ListSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("terms repository list sections: %w", err)
	}

	return sections, nil
}
