package converter

// CatalogRedisModel — каталог целиком, как он лежит в Redis.
type CatalogRedisModel struct {
	Version  int                 `json:"version"`
	Products []ProductRedisModel `json:"products"`
}

type ProductRedisModel struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       string  `json:"price"` // десятичная строка, без потери точности
	Currency    string  `json:"currency"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
}
