package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Count int
}

func TestMemoryFindOne(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 1}))
	require.NoError(t, m.Insert(ctx, "records", record{Name: "b", Count: 2}))

	var got record
	require.NoError(t, m.FindOne(ctx, "records", Filter{"name": "b"}, &got))
	assert.Equal(t, 2, got.Count)

	err := m.FindOne(ctx, "records", Filter{"name": "c"}, &got)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestMemoryFilterSurvivesBSONTypes(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// Count goes through bson as int32; an int filter value must still match.
	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 7}))

	var got record
	require.NoError(t, m.FindOne(ctx, "records", Filter{"count": 7}, &got))
	assert.Equal(t, "a", got.Name)
}

func TestMemoryFindAll(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 1}))
	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 2}))
	require.NoError(t, m.Insert(ctx, "records", record{Name: "b", Count: 3}))

	var all []record
	require.NoError(t, m.FindAll(ctx, "records", nil, &all))
	assert.Len(t, all, 3)

	var some []record
	require.NoError(t, m.FindAll(ctx, "records", Filter{"name": "a"}, &some))
	assert.Len(t, some, 2)

	var none []record
	require.NoError(t, m.FindAll(ctx, "empty", nil, &none))
	assert.Len(t, none, 0)
}

func TestMemoryUpdateOne(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 1}))

	matched, err := m.UpdateOne(ctx, "records", Filter{"name": "a"}, Fields{"count": 9})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var got record
	require.NoError(t, m.FindOne(ctx, "records", Filter{"name": "a"}, &got))
	assert.Equal(t, 9, got.Count)

	matched, err = m.UpdateOne(ctx, "records", Filter{"name": "missing"}, Fields{"count": 9})
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)
}

func TestMemoryDeleteOneAndCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "records", record{Name: "a", Count: 1}))
	require.NoError(t, m.Insert(ctx, "records", record{Name: "b", Count: 2}))

	deleted, err := m.DeleteOne(ctx, "records", Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	n, err := m.Count(ctx, "records", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	deleted, err = m.DeleteOne(ctx, "records", Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
