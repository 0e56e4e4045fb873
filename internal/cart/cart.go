// Package cart накапливает добавленные в корзину товары, их количество и сумму.
package cart

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency — валюта, в которой показывается итог корзины.
const DefaultCurrency = "USD"

// Totals — согласованный снимок итогов корзины.
type Totals struct {
	Count int
	Total decimal.Decimal
}

// Cart — корзина одной сессии. Товары только добавляются: без дедупликации,
// без количества, без удаления. Повторное добавление того же товара даёт вторую
// строку и второй раз учитывает цену.
type Cart struct {
	items []domain.Product
	count int
	total decimal.Decimal
}

func New() *Cart {
	return &Cart{total: decimal.Zero}
}

// Add добавляет товар в конец корзины и обновляет итоги.
func (c *Cart) Add(product domain.Product) Totals {
	c.items = append(c.items, product)
	c.count++
	c.total = c.total.Add(product.Price)

	return c.Totals()
}

// Totals возвращает количество позиций и сумму цен в исходных валютах товаров.
func (c *Cart) Totals() Totals {
	return Totals{Count: c.count, Total: c.total}
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []domain.Product {
	out := make([]domain.Product, len(c.items))
	copy(out, c.items)

	return out
}
