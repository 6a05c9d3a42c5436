package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/pricelist/internal/model"
	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
)

type TermsRepository interface {
	WithDB(db db.DB) TermsRepository
	ListByLanguage(ctx context.Context, lang model.Language) ([]model.TermsText, error)
	ListSections(ctx context.Context) ([]string, error)
}

type termsRepository struct {
	db db.DB
}

func NewTermsRepository(db db.DB) TermsRepository {
	return &termsRepository{db: db}
}

func (r termsRepository) WithDB(db db.DB) TermsRepository {
	return &termsRepository{db: db}
}

func (r termsRepository) ListByLanguage(ctx context.Context, lang model.Language) ([]model.TermsText, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, lang, section, content, created_at, updated_at
		 FROM terms_texts WHERE lang = $1 ORDER BY section ASC`, string(lang))
	if err != nil {
		return nil, fmt.Errorf("list terms by language: %w", err)
	}
	defer rows.Close()

	terms := make([]model.TermsText, 0)
	for rows.Next() {
		var t model.TermsText
		if err := rows.Scan(&t.ID, &t.Lang, &t.Section, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan terms text: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms texts: %w", err)
	}

	return terms, nil
}

func (r termsRepository) ListSections(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT section FROM terms_texts ORDER BY section ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	sections := make([]string, 0)
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}

	return sections, nil
}
