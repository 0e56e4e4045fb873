package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProducts(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = *domain.NewProduct(int64(i+1), fmt.Sprintf("Product %d", i+1), decimal.NewFromInt(int64(10+i)), "USD", 3)
	}

	return out
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}

	return out
}

func TestNewViewRevealsFirstPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"small catalog fits", 2, 10, 2},
		{"exact page", 10, 10, 10},
		{"larger catalog", 15, 10, 10},
		{"empty catalog", 0, 10, 0},
		{"default page size", 25, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(makeProducts(tt.total), tt.pageSize)
			assert.Equal(t, tt.want, v.Revealed())
			assert.Len(t, v.DerivedView(), tt.want)
		})
	}
}

func TestRevealMoreClampsToCatalog(t *testing.T) {
	v := NewView(makeProducts(15), 10)
	require.Equal(t, 10, v.Revealed())
	require.True(t, v.HasMore())

	assert.True(t, v.RevealMore())
	assert.Equal(t, 15, v.Revealed())
	assert.False(t, v.HasMore())

	assert.False(t, v.RevealMore())
	assert.Equal(t, 15, v.Revealed())
	assert.Equal(t, 2, v.Page())
}

func TestRevealMoreWindowIsMinOfPagesAndTotal(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 37, 100} {
		for _, k := range []int{1, 3, 10} {
			v := NewView(makeProducts(total), k)
			for n := 2; n <= 12; n++ {
				v.RevealMore()
				assert.Equal(t, min(n*k, total), v.Revealed(), "total=%d k=%d n=%d", total, k, n)
			}
		}
	}
}

func TestSearchFiltersRevealedWindowOnly(t *testing.T) {
	products := makeProducts(15)
	products[12].Title = "Special Widget"
	products[3].Title = "special gadget"
	v := NewView(products, 10)

	v.SetSearchTerm("SPECIAL")
	assert.Equal(t, "special", v.SearchTerm())
	assert.Equal(t, []int64{4}, ids(v.DerivedView()))

	v.RevealMore()
	assert.Equal(t, []int64{4, 13}, ids(v.DerivedView()))
}

func TestSearchMatchesSubstringCaseInsensitive(t *testing.T) {
	v := NewView(makeProducts(12), 20)

	v.SetSearchTerm("product 1")
	for _, p := range v.DerivedView() {
		assert.True(t, strings.Contains(strings.ToLower(p.Title), "product 1"))
	}
	assert.Equal(t, []int64{1, 10, 11, 12}, ids(v.DerivedView()))

	v.SetSearchTerm("")
	assert.Len(t, v.DerivedView(), 12)

	v.SetSearchTerm("nothing like this")
	assert.Empty(t, v.DerivedView())
}

func TestSortByPriceIsStableAscending(t *testing.T) {
	prices := []int64{30, 20, 20, 10, 30}
	products := makeProducts(len(prices))
	for i, p := range prices {
		products[i].Price = decimal.NewFromInt(p)
	}
	v := NewView(products, 10)

	v.SetSortKey(SortPriceAsc)
	assert.Equal(t, []int64{4, 2, 3, 1, 5}, ids(v.DerivedView()))
}

func TestSortByRatingIsStableDescending(t *testing.T) {
	ratings := []float64{3.5, 4.5, 3.5, 5, 4.5}
	products := makeProducts(len(ratings))
	for i, r := range ratings {
		products[i].Rating = r
	}
	v := NewView(products, 10)

	v.SetSortKey(SortRatingDesc)
	assert.Equal(t, []int64{4, 2, 5, 1, 3}, ids(v.DerivedView()))
}

func TestSortNoneRestoresCatalogOrder(t *testing.T) {
	products := makeProducts(3)
	products[0].Price = decimal.NewFromInt(30)
	products[1].Price = decimal.NewFromInt(20)
	products[2].Price = decimal.NewFromInt(10)
	v := NewView(products, 10)

	v.SetSortKey(SortPriceAsc)
	require.Equal(t, []int64{3, 2, 1}, ids(v.DerivedView()))

	v.SetSortKey(SortNone)
	assert.Equal(t, []int64{1, 2, 3}, ids(v.DerivedView()))
}

func TestSortKeyChangesKeepWindow(t *testing.T) {
	products := makeProducts(25)
	// Самый дешёвый товар лежит за окном и не должен в него попасть.
	products[24].Price = decimal.NewFromInt(0)
	v := NewView(products, 10)
	v.RevealMore()

	for _, key := range []SortKey{SortPriceAsc, SortRatingDesc, SortNone, SortPriceAsc, SortNone} {
		v.SetSortKey(key)

		assert.Equal(t, 20, v.Revealed(), key.String())
		assert.Equal(t, 2, v.Page(), key.String())
		assert.Len(t, v.DerivedView(), 20, key.String())
		assert.NotContains(t, ids(v.DerivedView()), int64(25), key.String())
	}

	assert.Equal(t, ids(makeProducts(20)), ids(v.DerivedView()))
}

func TestSortNeverRevealsBeyondWindow(t *testing.T) {
	products := makeProducts(15)
	products[14].Price = decimal.NewFromInt(1)
	v := NewView(products, 10)

	v.SetSortKey(SortPriceAsc)
	assert.NotContains(t, ids(v.DerivedView()), int64(15))
}

func TestScenarioTwoProducts(t *testing.T) {
	products := makeProducts(2)
	products[0].Price = decimal.NewFromInt(30)
	products[1].Price = decimal.NewFromInt(20)
	v := NewView(products, 10)

	assert.Len(t, v.DerivedView(), 2)

	v.SetSortKey(SortPriceAsc)
	assert.True(t, v.DerivedView()[0].Price.Equal(decimal.NewFromInt(20)))
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	products := makeProducts(4)
	products[0].Price = decimal.NewFromInt(99)
	before := ids(products)

	_ = Project(products, 4, "", SortPriceAsc)
	assert.Equal(t, before, ids(products))
}

func TestProjectClampsRevealed(t *testing.T) {
	products := makeProducts(3)
	assert.Len(t, Project(products, 10, "", SortNone), 3)
	assert.Empty(t, Project(products, -1, "", SortNone))
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"", SortNone, false},
		{"none", SortNone, false},
		{"price", SortPriceAsc, false},
		{"Price-Ascending", SortPriceAsc, false},
		{"rating", SortRatingDesc, false},
		{"rating-descending", SortRatingDesc, false},
		{"name", SortNone, true},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
