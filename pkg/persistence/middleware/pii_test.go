package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/decisiontree/pkg/adapters/memory"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	secureStore := middleware.NewPIIMiddleware([]string{"^user_id$", "species"})(underlying)

	ctx := context.Background()
	rec := domain.NewSessionRecord("pii-session")
	rec.UserID = "amzn1.ask.account.XYZ"
	rec.LastPrompt = "Which would you like   animals  or  people?"
	rec.Answers["preferredSpecies"] = "animals"
	rec.Answers["bloodTolerance"] = "low"

	require.NoError(t, secureStore.Save(ctx, "pii-session", rec))

	// The caller's record is not modified.
	assert.Equal(t, "amzn1.ask.account.XYZ", rec.UserID)
	assert.Equal(t, "animals", rec.Answers["preferredSpecies"])

	stored, err := underlying.Load(ctx, "pii-session")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, stored.UserID)
	assert.Equal(t, middleware.Mask, stored.Answers["preferredSpecies"])
	assert.Equal(t, "low", stored.Answers["bloodTolerance"])
	assert.Equal(t, rec.LastPrompt, stored.LastPrompt)
}

func TestPIIMiddleware_EmptyFieldsStayEmpty(t *testing.T) {
	underlying := memory.NewStore()
	secureStore := middleware.NewPIIMiddleware([]string{"user_id", "last_prompt"})(underlying)

	ctx := context.Background()
	require.NoError(t, secureStore.Save(ctx, "s", domain.NewSessionRecord("s")))

	stored, err := secureStore.Load(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, stored.UserID)
	assert.Empty(t, stored.LastPrompt)
}
