package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
)

func TestParseDateRange(t *testing.T) {
	from, to, err := dto.ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	from, to, err = dto.ParseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC), *to, "fecha sin hora cubre el día")

	from, _, err = dto.ParseDateRange("2024-03-01T10:00:00Z", "")
	require.NoError(t, err)
	assert.Equal(t, 10, from.Hour())
}

func TestParseDateRange_Invalidas(t *testing.T) {
	_, _, err := dto.ParseDateRange("ayer", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = dto.ParseDateRange("", "2024-13-01")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = dto.ParseDateRange("2024-03-02", "2024-03-01")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
