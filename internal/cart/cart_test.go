package cart

import (
	"math/rand"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) domain.Product {
	return *domain.NewProduct(id, "Product", decimal.RequireFromString(price), "USD", 4)
}

func TestEmptyCart(t *testing.T) {
	c := New()
	totals := c.Totals()

	assert.Equal(t, 0, totals.Count)
	assert.True(t, totals.Total.IsZero())
	assert.Empty(t, c.Items())
}

func TestAddAccumulates(t *testing.T) {
	c := New()
	p1 := product(1, "20")

	totals := c.Add(p1)
	assert.Equal(t, 1, totals.Count)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(20)))

	formatted, err := money.MustFormatter("en-US").Format(totals.Total, DefaultCurrency)
	require.NoError(t, err)
	assert.Equal(t, "$20.00", formatted)
}

func TestAddSameProductTwiceDoubleCounts(t *testing.T) {
	c := New()
	p := product(7, "9.99")

	c.Add(p)
	c.Add(p)

	totals := c.Totals()
	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, "19.98", totals.Total.String())
	assert.Len(t, c.Items(), 2)
}

func TestTotalsMatchSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := New()
	sum := decimal.Zero

	for i := 0; i < 500; i++ {
		price := decimal.New(rng.Int63n(100000), -2)
		c.Add(domain.Product{ID: int64(i), Price: price, Currency: "USD"})
		sum = sum.Add(price)

		totals := c.Totals()
		require.Equal(t, i+1, totals.Count)
		require.True(t, totals.Total.Equal(sum))
	}

	items := c.Items()
	for i, p := range items {
		assert.Equal(t, int64(i), p.ID)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(product(1, "1"))

	items := c.Items()
	items[0].ID = 99

	assert.Equal(t, int64(1), c.Items()[0].ID)
}
