// Package catalog содержит состояние просмотра каталога: окно пагинации,
// поисковый запрос, ключ сортировки и производное представление.
package catalog

import (
	"slices"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// DefaultPageSize — сколько товаров открывает одна страница.
const DefaultPageSize = 10

// View — состояние просмотра каталога одной сессии. Не потокобезопасно:
// владелец сериализует вызовы сам.
type View struct {
	products []domain.Product
	pageSize int
	page     int
	revealed int
	term     string
	sortKey  SortKey
}

// NewView открывает первую страницу каталога.
func NewView(products []domain.Product, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	v := &View{
		products: products,
		pageSize: pageSize,
		page:     1,
	}
	v.restoreWindow()

	return v
}

// RevealMore открывает ещё одну страницу. Если окно уже покрывает весь каталог,
// ничего не меняется и возвращается false.
func (v *View) RevealMore() bool {
	if !v.HasMore() {
		return false
	}

	v.page++
	v.restoreWindow()

	return true
}

// SetSearchTerm сохраняет запрос в нижнем регистре. Пустой запрос совпадает со всем.
func (v *View) SetSearchTerm(text string) {
	v.term = strings.ToLower(text)
}

// SetSortKey меняет сортировку. Окно от ключа не зависит: сортируется только
// открытый префикс, а после SortNone он снова идёт в порядке каталога.
func (v *View) SetSortKey(key SortKey) {
	v.sortKey = key
}

// DerivedView возвращает отфильтрованное и отсортированное открытое окно.
func (v *View) DerivedView() []domain.Product {
	return Project(v.products, v.revealed, v.term, v.sortKey)
}

// Revealed возвращает размер открытого окна.
func (v *View) Revealed() int {
	return v.revealed
}

// Total возвращает размер всего каталога.
func (v *View) Total() int {
	return len(v.products)
}

// HasMore сообщает, есть ли за окном ещё товары (кнопка "Load More").
func (v *View) HasMore() bool {
	return v.revealed < len(v.products)
}

func (v *View) Page() int {
	return v.page
}

func (v *View) PageSize() int {
	return v.pageSize
}

func (v *View) SearchTerm() string {
	return v.term
}

func (v *View) SortKey() SortKey {
	return v.sortKey
}

// Products возвращает весь каталог, включая товары за окном.
func (v *View) Products() []domain.Product {
	return v.products
}

// restoreWindow выставляет окно в min(page*pageSize, len(products)).
func (v *View) restoreWindow() {
	v.revealed = min(v.page*v.pageSize, len(v.products))
}

// Project — чистая проекция: префикс длины revealed, фильтр по подстроке в названии
// (без учёта регистра) и устойчивая сортировка. Исходный срез не меняется.
func Project(products []domain.Product, revealed int, term string, key SortKey) []domain.Product {
	revealed = max(0, min(revealed, len(products)))
	term = strings.ToLower(term)

	out := make([]domain.Product, 0, revealed)
	for _, p := range products[:revealed] {
		if term == "" || strings.Contains(strings.ToLower(p.Title), term) {
			out = append(out, p)
		}
	}

	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortRatingDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			default:
				return 0
			}
		})
	}

	return out
}
