package catalog

import (
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
)

// SortKey задаёт порядок товаров в производном представлении.
type SortKey string

const (
	SortNone       SortKey = ""       // порядок каталога
	SortPriceAsc   SortKey = "price"  // по цене, по возрастанию
	SortRatingDesc SortKey = "rating" // по рейтингу, по убыванию
)

// ParseSortKey принимает короткие имена из селектора сортировки и длинные синонимы.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "price", "price-ascending":
		return SortPriceAsc, nil
	case "rating", "rating-descending":
		return SortRatingDesc, nil
	default:
		return SortNone, e.Wrap(s, e.ErrInvalidSortKey)
	}
}

func (k SortKey) String() string {
	if k == SortNone {
		return "none"
	}

	return string(k)
}
