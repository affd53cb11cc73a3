package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTableStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Vacant", TableVacant, false},
		{"vacant", TableVacant, false},
		{"OCCUPIED", TableOccupied, false},
		{"reserved", TableReserved, false},
		{"Closed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeTableStatus(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestAddTableStartsVacant(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tableId, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	table, err := env.tables.Get(ctx, tableId)
	require.NoError(t, err)
	assert.Equal(t, TableVacant, table.Status)
	assert.Equal(t, "A1", *table.Table_number)
	assert.Equal(t, 4, *table.Capacity)
}

func TestAddTableRejectsDuplicateNumber(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	_, err = env.tables.Add(ctx, "A1", 2)
	assert.ErrorIs(t, err, ErrDuplicateTableNumber)
}

func TestAddTableRejectsZeroCapacity(t *testing.T) {
	env := newTestEnv()

	_, err := env.tables.Add(context.Background(), "A1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatusTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tableId, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	for _, status := range []string{TableReserved, TableOccupied, TableVacant, TableOccupied} {
		require.NoError(t, env.tables.SetStatus(ctx, tableId, status))
		got, err := env.tables.Status(ctx, tableId)
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}
}

func TestSetStatusCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tableId, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	require.NoError(t, env.tables.SetStatus(ctx, tableId, "occupied"))
	got, err := env.tables.Status(ctx, tableId)
	require.NoError(t, err)
	assert.Equal(t, TableOccupied, got)
}

func TestSetStatusUnknownTable(t *testing.T) {
	env := newTestEnv()

	err := env.tables.SetStatus(context.Background(), "TBL999", TableOccupied)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatusVacantRefusedWithActiveOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedStaff(t, "STF001", StaffActive)
	tableId := env.seedOccupiedTable(t, "A1")
	_, err := env.orders.Create(ctx, tableId, "STF001")
	require.NoError(t, err)

	err = env.tables.SetStatus(ctx, tableId, TableVacant)
	assert.ErrorIs(t, err, ErrTableHasActiveOrder)
	assert.ErrorIs(t, err, ErrStateConflict)

	// Reserved is still allowed while the order is open.
	require.NoError(t, env.tables.SetStatus(ctx, tableId, TableReserved))
}

func TestCanAcceptOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tableId, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	ok, err := env.tables.CanAcceptOrder(ctx, tableId)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.tables.SetStatus(ctx, tableId, TableReserved))
	ok, err = env.tables.CanAcceptOrder(ctx, tableId)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.tables.CanAcceptOrder(ctx, "TBL999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteTableWithOrderHistoryRefused(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedStaff(t, "STF001", StaffActive)
	tableId := env.seedOccupiedTable(t, "A1")
	orderId, err := env.orders.Create(ctx, tableId, "STF001")
	require.NoError(t, err)
	require.NoError(t, env.orders.Cancel(ctx, orderId))

	// Even a cancelled order keeps the table referenced.
	err = env.tables.Delete(ctx, tableId)
	assert.ErrorIs(t, err, ErrHasReferences)

	table, err := env.tables.Get(ctx, tableId)
	require.NoError(t, err)
	assert.Equal(t, tableId, table.Table_id)
}

func TestUpdateCapacity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tableId, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)

	require.NoError(t, env.tables.UpdateCapacity(ctx, tableId, 6))
	table, err := env.tables.Get(ctx, tableId)
	require.NoError(t, err)
	assert.Equal(t, 6, *table.Capacity)

	assert.ErrorIs(t, env.tables.UpdateCapacity(ctx, tableId, 0), ErrInvalidInput)
}

func TestListByStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.tables.Add(ctx, "A1", 4)
	require.NoError(t, err)
	_, err = env.tables.Add(ctx, "A2", 2)
	require.NoError(t, err)
	require.NoError(t, env.tables.SetStatus(ctx, first, TableOccupied))

	occupied, err := env.tables.ListByStatus(ctx, "occupied")
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, first, occupied[0].Table_id)

	vacant, err := env.tables.ListByStatus(ctx, TableVacant)
	require.NoError(t, err)
	assert.Len(t, vacant, 1)

	_, err = env.tables.ListByStatus(ctx, "closed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
