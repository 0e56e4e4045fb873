package domain

import "github.com/shopspring/decimal"

// Product описывает товар витрины. Создаётся источником каталога при загрузке
// и дальше не изменяется: компоненты хранят ссылки, а не изменённые копии.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`    // неотрицательная цена в валюте Currency
	Currency    string          `json:"currency"` // ISO 4217
	Image       string          `json:"image"`    // URI или ключ объекта в хранилище изображений
	Rating      float64         `json:"rating"`   // [0, 5]
}

func NewProduct(id int64, title string, price decimal.Decimal, currency string, rating float64) *Product {
	return &Product{
		ID:       id,
		Title:    title,
		Price:    price,
		Currency: currency,
		Rating:   rating,
	}
}

// FindProduct ищет товар по идентификатору.
func FindProduct(products []Product, id int64) (*Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}

	return nil, false
}
