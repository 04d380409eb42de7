package dedup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetSeen(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet()

	seen, err := set.Seen(ctx, "req-1")
	require.NoError(t, err)
	assert.False(t, seen, "first sighting")

	seen, err = set.Seen(ctx, "req-1")
	require.NoError(t, err)
	assert.True(t, seen, "second sighting is a duplicate")

	seen, err = set.Seen(ctx, "req-2")
	require.NoError(t, err)
	assert.False(t, seen, "distinct id is not a duplicate")
}
