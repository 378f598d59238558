package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de StockTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestNextTransferStatus_TablaCompleta(t *testing.T) {
	cases := []struct {
		from, event, want string
		ok                bool
	}{
		{entity.TransferStatusPending, entity.TransferEventApprove, entity.TransferStatusProcessing, true},
		{entity.TransferStatusProcessing, entity.TransferEventApprove, "", false},
		{entity.TransferStatusCompleted, entity.TransferEventApprove, "", false},
		{entity.TransferStatusCancelled, entity.TransferEventApprove, "", false},

		{entity.TransferStatusProcessing, entity.TransferEventComplete, entity.TransferStatusCompleted, true},
		{entity.TransferStatusPending, entity.TransferEventComplete, "", false},
		{entity.TransferStatusCompleted, entity.TransferEventComplete, "", false},
		{entity.TransferStatusCancelled, entity.TransferEventComplete, "", false},

		{entity.TransferStatusPending, entity.TransferEventCancel, entity.TransferStatusCancelled, true},
		{entity.TransferStatusProcessing, entity.TransferEventCancel, entity.TransferStatusCancelled, true},
		{entity.TransferStatusCancelled, entity.TransferEventCancel, entity.TransferStatusCancelled, true},
		{entity.TransferStatusCompleted, entity.TransferEventCancel, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_"+tc.event, func(t *testing.T) {
			got, err := entity.NextTransferStatus(tc.from, tc.event)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
		})
	}
}

func TestStockTransfer_ApplyActualizaEstadoYFecha(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tr := &entity.StockTransfer{Status: entity.TransferStatusPending, CreatedAt: created, UpdatedAt: created}

	now := created.Add(time.Hour)
	require.NoError(t, tr.Apply(entity.TransferEventApprove, now))
	assert.Equal(t, entity.TransferStatusProcessing, tr.Status)
	assert.Equal(t, now, tr.UpdatedAt)
	assert.False(t, tr.IsFinal())
}

func TestStockTransfer_CompletadaNoSeCancela(t *testing.T) {
	tr := &entity.StockTransfer{Status: entity.TransferStatusCompleted}
	err := tr.Apply(entity.TransferEventCancel, time.Now())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.TransferStatusCompleted, tr.Status, "el estado no debe cambiar")
	assert.True(t, tr.IsFinal())
}

func TestValidTransferStatus(t *testing.T) {
	assert.True(t, entity.ValidTransferStatus("pending"))
	assert.True(t, entity.ValidTransferStatus("cancelled"))
	assert.False(t, entity.ValidTransferStatus("done"))
	assert.False(t, entity.ValidTransferStatus(""))
}
