package http

import (
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/shopspring/decimal"
)

type SearchRequest struct {
	Term string `json:"term" example:"phone"`
}

type SortRequest struct {
	Key string `json:"key" example:"price" enums:"none,price,rating"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" example:"1"`
}

type StarsResponse struct {
	Full  int  `json:"full"`
	Half  bool `json:"half"`
	Empty int  `json:"empty"`
}

type ProductResponse struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Currency       string          `json:"currency" example:"USD"`
	PriceFormatted string          `json:"price_formatted" example:"$19.99"`
	Image          string          `json:"image"`
	Rating         float64         `json:"rating" example:"4.5"`
	Stars          StarsResponse   `json:"stars"`
}

type CartResponse struct {
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total" swaggertype:"string" example:"20"`
	Currency  string          `json:"currency" example:"USD"`
	Formatted string          `json:"formatted" example:"$20.00"`
}

type StorefrontResponse struct {
	SessionID  string            `json:"session_id"`
	Products   []ProductResponse `json:"products"`
	Revealed   int               `json:"revealed"`
	Total      int               `json:"total"`
	HasMore    bool              `json:"has_more"`
	SearchTerm string            `json:"search_term"`
	SortKey    string            `json:"sort_key"`
	Cart       CartResponse      `json:"cart"`
	Pulse      bool              `json:"pulse"`
}

type ImportResponse struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
}

func NewStorefrontResponse(s *usecase.StorefrontSnapshot) *StorefrontResponse {
	products := make([]ProductResponse, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, ProductResponse{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			Price:          p.Price,
			Currency:       p.Currency,
			PriceFormatted: p.PriceFormatted,
			Image:          p.ImageURL,
			Rating:         p.Rating,
			Stars: StarsResponse{
				Full:  p.Stars.Full,
				Half:  p.Stars.Half,
				Empty: p.Stars.Empty,
			},
		})
	}

	return &StorefrontResponse{
		SessionID:  s.SessionID.String(),
		Products:   products,
		Revealed:   s.Revealed,
		Total:      s.Total,
		HasMore:    s.HasMore,
		SearchTerm: s.SearchTerm,
		SortKey:    s.SortKey,
		Cart: CartResponse{
			Count:     s.Cart.Count,
			Total:     s.Cart.Total,
			Currency:  s.Cart.Currency,
			Formatted: s.Cart.Formatted,
		},
		Pulse: s.Pulse,
	}
}

func NewImportResponse(res *usecase.ImportCatalogRes) *ImportResponse {
	return &ImportResponse{
		Fetched:  res.Fetched,
		Upserted: res.Upserted,
	}
}
