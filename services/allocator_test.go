package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDStartsAtOne(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id, err := NewIDAllocator(env.store).NextID(ctx, TableIDs)
	require.NoError(t, err)
	assert.Equal(t, "TBL001", id)

	id, err = NewIDAllocator(env.store).NextID(ctx, OrderIDs)
	require.NoError(t, err)
	assert.Equal(t, "ORD000001", id)
}

func TestNextIDFillsGaps(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.tables.Add(ctx, "T1", 2)
	require.NoError(t, err)
	second, err := env.tables.Add(ctx, "T2", 2)
	require.NoError(t, err)
	third, err := env.tables.Add(ctx, "T3", 2)
	require.NoError(t, err)
	assert.Equal(t, "TBL001", first)
	assert.Equal(t, "TBL002", second)
	assert.Equal(t, "TBL003", third)

	require.NoError(t, env.tables.Delete(ctx, second))

	reused, err := env.tables.Add(ctx, "T4", 2)
	require.NoError(t, err)
	assert.Equal(t, "TBL002", reused)

	next, err := env.tables.Add(ctx, "T5", 2)
	require.NoError(t, err)
	assert.Equal(t, "TBL004", next)
}

func TestNextIDConcurrentAllocationsDistinct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	const workers = 16
	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = env.tables.Add(ctx, fmt.Sprintf("T%d", i), 2)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "id %s allocated twice", ids[i])
		seen[ids[i]] = true
	}
	assert.Len(t, seen, workers)
}

func TestNextIDIgnoresForeignPrefixes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.store.Insert(ctx, "table", map[string]interface{}{"table_id": "XYZ001"}))
	require.NoError(t, env.store.Insert(ctx, "table", map[string]interface{}{"table_id": "TBLabc"}))

	id, err := NewIDAllocator(env.store).NextID(ctx, TableIDs)
	require.NoError(t, err)
	assert.Equal(t, "TBL001", id)
}
