package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gudang/pkg/errors"
)

func TestMemoryFileStoreRoundTrip(t *testing.T) {
	store := NewMemoryFileStore()
	ctx := context.Background()

	url, err := store.UploadFile(ctx, strings.NewReader("payload"), "image/png", "product-images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "memory://product-images/"))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.DeleteFile(ctx, url))
	assert.Equal(t, 0, store.Len())

	err = store.DeleteFile(ctx, url)
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}
