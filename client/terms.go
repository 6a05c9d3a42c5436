package client

import (
	"context"
	"fmt"
	"sort"
)

// Section is one named block of terms content.
type Section struct {
	Key     string
	Content string
}

// TermsView holds the terms page state for one selected language.
// Not safe for concurrent use.
type TermsView struct {
	client   *Client
	language string
	sections []Section
}

func NewTermsView(client *Client) *TermsView {
	return &TermsView{client: client}
}

// Load fetches all sections for the given language. Sections are kept in
// ascending lexical order of their keys.
func (v *TermsView) Load(ctx context.Context, lang string) error {
	terms, err := v.client.FetchTerms(ctx, lang)
	if err != nil {
		return fmt.Errorf("fetch terms: %w", err)
	}

	sections := make([]Section, 0, len(terms.Terms))
	for key, content := range terms.Terms {
		sections = append(sections, Section{Key: key, Content: content})
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Key < sections[j].Key
	})

	v.language = terms.Language
	v.sections = sections
	return nil
}

// SetLanguage switches the page language and re-fetches its sections.
func (v *TermsView) SetLanguage(ctx context.Context, lang string) error {
	return v.Load(ctx, lang)
}

// Language returns the currently loaded language, empty before the first
// successful Load.
func (v *TermsView) Language() string {
	return v.language
}

// Sections returns the loaded sections in ascending key order.
func (v *TermsView) Sections() []Section {
	sections := make([]Section, len(v.sections))
	copy(sections, v.sections)
	return sections
}
