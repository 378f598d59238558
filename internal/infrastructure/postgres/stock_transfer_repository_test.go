package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

func TestTransferListQuery_SinFiltros(t *testing.T) {
	sql, args, err := transferListQuery(repository.TransferFilter{}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY created_at DESC, id")
	assert.Empty(t, args)
}

func TestTransferListQuery_TodosLosFiltros(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	sql, args, err := transferListQuery(repository.TransferFilter{
		Status:    "completed",
		ProductID: "p-1",
		From:      &from,
		To:        &to,
		Ascending: true,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "status = $1")
	assert.Contains(t, sql, "product_id = $2")
	assert.Contains(t, sql, "created_at >= $3")
	assert.Contains(t, sql, "created_at <= $4")
	assert.Contains(t, sql, "ORDER BY created_at ASC, id")
	assert.Equal(t, []any{"completed", "p-1", from, to}, args)
}
