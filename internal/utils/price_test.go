package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceRange_BoundedRanges(t *testing.T) {
	pr, ok := ParsePriceRange("100k-500k")
	assert.True(t, ok)
	assert.Equal(t, 100_000.0, pr.Min)
	assert.Equal(t, 500_000.0, pr.Max)

	pr, ok = ParsePriceRange("1M-5M")
	assert.True(t, ok)
	assert.Equal(t, 1_000_000.0, pr.Min)
	assert.Equal(t, 5_000_000.0, pr.Max)

	// Mixed suffixes per bound
	pr, ok = ParsePriceRange("500k-2M")
	assert.True(t, ok)
	assert.Equal(t, 500_000.0, pr.Min)
	assert.Equal(t, 2_000_000.0, pr.Max)

	// Plain numbers, currency sign and commas
	pr, ok = ParsePriceRange("₦1,000-₦5,000")
	assert.True(t, ok)
	assert.Equal(t, 1_000.0, pr.Min)
	assert.Equal(t, 5_000.0, pr.Max)
}

func TestParsePriceRange_OpenEnded(t *testing.T) {
	pr, ok := ParsePriceRange("2M+")
	assert.True(t, ok)
	assert.Equal(t, 2_000_000.0, pr.Min)
	assert.Less(t, pr.Max, 0.0)

	pr, ok = ParsePriceRange("750k+")
	assert.True(t, ok)
	assert.Equal(t, 750_000.0, pr.Min)
	assert.Less(t, pr.Max, 0.0)
}

func TestParsePriceRange_Invalid(t *testing.T) {
	for _, expr := range []string{"", "cheap", "100k-", "-500k", "abc-def", "+"} {
		_, ok := ParsePriceRange(expr)
		assert.False(t, ok, "expected %q to be rejected", expr)
	}
}

func TestParsePriceRange_CaseInsensitiveSuffix(t *testing.T) {
	pr, ok := ParsePriceRange("100K-2m")
	assert.True(t, ok)
	assert.Equal(t, 100_000.0, pr.Min)
	assert.Equal(t, 2_000_000.0, pr.Max)
}
