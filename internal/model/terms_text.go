package model

import (
	"fmt"
	"time"
)

// Language is a two-letter content language code.
type Language string

const (
	LanguageEN Language = "en"
	LanguageSV Language = "sv"
)

// Validate reports whether the language is part of the supported set.
func (l Language) Validate() error {
	switch l {
	case LanguageEN, LanguageSV:
		return nil
	default:
		return fmt.Errorf("unsupported language: %q", l)
	}
}

func (l Language) String() string {
	return string(l)
}

// TermsText is one section of terms-of-service content for one language.
// Sections are unique per language; content may embed a small markdown-link
// subset.
type TermsText struct {
	ID        int64     `json:"id"`
	Lang      Language  `json:"lang"`
	Section   string    `json:"section"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
