package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront-core/internal/model"
)

func TestStore_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Read(ctx, "cart")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Write(ctx, "cart", `[]`))
	value, err := s.Read(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	require.NoError(t, s.Write(ctx, "cart", `[{"quantity":1}]`))
	value, err = s.Read(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":1}]`, value)

	require.NoError(t, s.Delete(ctx, "cart"))
	_, err = s.Read(ctx, "cart")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_DeleteAbsentKey(t *testing.T) {
	s := New()
	assert.NoError(t, s.Delete(context.Background(), "never-written"))
}
