package cuisine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexEmptyCuisine(t *testing.T) {
	idx := NewMemoryIndex()
	id, err := idx.RandomByCuisine(context.Background(), "klingon")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestMemoryIndexNormalizesCuisine(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()
	require.NoError(t, idx.Add(ctx, "Italian", "biz-1"))

	id, err := idx.RandomByCuisine(ctx, "  ITALIAN ")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
}

func TestMemoryIndexAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()
	require.NoError(t, idx.Add(ctx, "italian", "biz-1"))
	require.NoError(t, idx.Add(ctx, "italian", "biz-1"))

	assert.Len(t, idx.entries["italian"], 1)
}

// Selection over a cuisine with N members should be roughly uniform: each
// member drawn close to 1/N of the time over many trials. The bounds are
// loose on purpose; this guards against "always first match", not against
// subtle generator bias.
func TestMemoryIndexSelectionIsRoughlyUniform(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	const members = 4
	for i := 0; i < members; i++ {
		require.NoError(t, idx.Add(ctx, "chinese", fmt.Sprintf("biz-%d", i)))
	}

	const trials = 4000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		id, err := idx.RandomByCuisine(ctx, "chinese")
		require.NoError(t, err)
		counts[id]++
	}

	require.Len(t, counts, members, "every member should be selected at least once")
	expected := trials / members
	for id, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.4,
			"member %s drawn %d times, expected about %d", id, n, expected)
	}
}
