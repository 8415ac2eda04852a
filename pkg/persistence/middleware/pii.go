package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/ports"
)

// Mask replaces every masked value.
const Mask = "***"

// Record fields that can be masked besides answers.
const (
	FieldUserID     = "user_id"
	FieldLastPrompt = "last_prompt"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks, on save, the record fields
// (user_id, last_prompt) and answer keys matching any of the patterns.
// Loaded records come back masked.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, rec *domain.SessionRecord) error {
	// Clone so the caller's record is untouched.
	masked := rec.Clone()

	if masked.UserID != "" && m.matches(FieldUserID) {
		masked.UserID = Mask
	}
	if masked.LastPrompt != "" && m.matches(FieldLastPrompt) {
		masked.LastPrompt = Mask
	}
	for k := range masked.Answers {
		if m.matches(k) {
			masked.Answers[k] = Mask
		}
	}

	return m.next.Save(ctx, sessionID, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
