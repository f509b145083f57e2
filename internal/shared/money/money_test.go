package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(1999), FromFloat(19.99))
	assert.Equal(t, int64(100), FromFloat(1.0))
	// classic float trap: 0.1+0.2
	assert.Equal(t, int64(30), FromFloat(0.1+0.2))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 19.99, ToFloat(1999))
	assert.Equal(t, 0.0, ToFloat(0))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, int64(1359750), Convert(10500, 129.50))
	assert.Equal(t, int64(919), Convert(999, 0.92))
	assert.Equal(t, int64(10500), Convert(10500, 1.0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$19.99", Format("USD", 1999))
	assert.Equal(t, "€9.20", Format("EUR", 920))
	assert.Equal(t, "KSh 1295.00", Format("KES", 129500))
	assert.Equal(t, "10.00 GBP", Format("GBP", 1000))
}
