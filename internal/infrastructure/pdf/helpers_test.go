package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25,000.50", formatMoney("25000.50"))
	assert.Equal(t, "1,000,000", formatMoney("1000000"))
	assert.Equal(t, "999.00", formatMoney("999.00"))
	assert.Equal(t, "-1,234.00", formatMoney("-1234.00"))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"uno dos", "tres"}, wrap("uno dos tres", 8))
	assert.Equal(t, []string{"abcd", "ef"}, wrap("abcdef", 4))
	assert.Equal(t, []string{"linea", "otra"}, wrap("linea\notra", 20))
	assert.Empty(t, wrap("   ", 10))
}
