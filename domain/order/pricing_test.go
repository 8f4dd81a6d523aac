package order

import (
	"testing"

	"ordering/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuate_TruncatesTotalOnce(t *testing.T) {
	products := map[string]CatalogProduct{
		"a": {ID: "a", Price: money(t, "0.333")},
		"b": {ID: "b", Price: money(t, "12.99")},
	}
	items := []LineItem{NewLineItem("a", 3), NewLineItem("b", 1)}

	v, err := Valuate(items, products)

	require.NoError(t, err)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "0.99", v.Lines[0].Subtotal.String())
	// 0.999 + 12.99 = 13.989, truncated once
	assert.Equal(t, "13.98", v.Total.String())
}

func TestValuate_SameProductTwoLinesExample(t *testing.T) {
	products := map[string]CatalogProduct{
		"x": {ID: "x", Price: money(t, "12.99")},
		"y": {ID: "y", Price: money(t, "12.99")},
	}

	v, err := Valuate([]LineItem{NewLineItem("x", 1), NewLineItem("y", 10)}, products)

	require.NoError(t, err)
	assert.Equal(t, "142.89", v.Total.String())
}

func TestValuate_MissingProduct(t *testing.T) {
	_, err := Valuate([]LineItem{NewLineItem("gone", 1)}, map[string]CatalogProduct{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
