package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/decisiontree/pkg/adapters/memory"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/persistence/middleware"
	"github.com/aretw0/decisiontree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunSessionStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlying)

	ctx := context.Background()
	rec := domain.NewSessionRecord("test-session")
	rec.UserID = "amzn1.ask.account.XYZ"
	rec.Answers["personality"] = "introvert"
	rec.Turns = 3
	rec.Status = domain.SessionRecommended

	require.NoError(t, secureStore.Save(ctx, "test-session", rec))

	// Only the envelope is visible to the backend.
	stored, err := underlying.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)
	assert.Empty(t, stored.UserID)
	assert.Empty(t, stored.Answers)
	assert.Equal(t, 3, stored.Turns)
	assert.Equal(t, domain.SessionRecommended, stored.Status)

	loaded, err := secureStore.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, "amzn1.ask.account.XYZ", loaded.UserID)
	assert.Equal(t, "introvert", loaded.Answers["personality"])
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)

	ctx := context.Background()
	rec := domain.NewSessionRecord("rotation-session")
	rec.Answers["bloodTolerance"] = "high"
	require.NoError(t, secureStoreOld.Save(ctx, "rotation-session", rec))

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureStoreNew.Load(ctx, "rotation-session")
	require.NoError(t, err)
	assert.Equal(t, "high", loaded.Answers["bloodTolerance"])

	// Saving again re-seals with the new key; the old key alone no longer works.
	loaded.Answers["bloodTolerance"] = "low"
	require.NoError(t, secureStoreNew.Save(ctx, "rotation-session", loaded))

	_, err = secureStoreOld.Load(ctx, "rotation-session")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainRecords(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", domain.NewSessionRecord("plain")))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secureStore.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestDecodeKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.DecodeKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = middleware.DecodeKey("not base64!")
	assert.Error(t, err)

	_, err = middleware.DecodeKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	underlying := memory.NewStore()
	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"user_id"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)

	ctx := context.Background()
	rec := domain.NewSessionRecord("s")
	rec.UserID = "someone"
	require.NoError(t, store.Save(ctx, "s", rec))

	stored, err := underlying.Load(ctx, "s")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.UserID)
}
