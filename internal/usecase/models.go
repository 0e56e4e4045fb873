package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// STOREFRONT

// StorefrontSnapshot — всё, что нужно для отрисовки страницы каталога одной сессии.
type StorefrontSnapshot struct {
	SessionID  uuid.UUID
	Products   []ProductCard // производное представление: окно, фильтр, сортировка
	Revealed   int
	Total      int
	HasMore    bool
	SearchTerm string
	SortKey    string
	Cart       CartSummary
	Pulse      bool
}

// ProductCard — товар в том виде, в каком его показывает витрина.
type ProductCard struct {
	ID             int64
	Title          string
	Description    string
	Price          decimal.Decimal
	Currency       string
	PriceFormatted string
	ImageURL       string
	Rating         float64
	Stars          catalog.Stars
}

type CartSummary struct {
	Count     int
	Total     decimal.Decimal
	Currency  string
	Formatted string
}

// CATALOG

type ImportCatalogRes struct {
	Fetched  int
	Upserted int
}

// INFRASTRUCTURE

// CartItemAddedEvent публикуется после каждого добавления в корзину.
type CartItemAddedEvent struct {
	EventID    uuid.UUID
	SessionID  uuid.UUID
	ProductID  int64
	Price      decimal.Decimal
	Currency   string
	CartCount  int
	CartTotal  decimal.Decimal
	OccurredAt time.Time
}

// MAPPERS

func NewImportCatalogRes(fetched, upserted int) *ImportCatalogRes {
	return &ImportCatalogRes{
		Fetched:  fetched,
		Upserted: upserted,
	}
}

func NewCartItemAddedEvent(sessionID uuid.UUID, productID int64, price decimal.Decimal, currency string,
	cartCount int, cartTotal decimal.Decimal, occurredAt time.Time) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		ProductID:  productID,
		Price:      price,
		Currency:   currency,
		CartCount:  cartCount,
		CartTotal:  cartTotal,
		OccurredAt: occurredAt,
	}
}
