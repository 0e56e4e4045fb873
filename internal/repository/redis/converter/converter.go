package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogVersion меняется при несовместимом изменении формата кэша.
const CatalogVersion = 1

type CatalogConverter interface {
	ToRedisModel(products []domain.Product) *CatalogRedisModel
	ToEntities(model *CatalogRedisModel) ([]domain.Product, error)
}

type catalogConverter struct{}

func NewCatalogConverter() CatalogConverter {
	return catalogConverter{}
}

func (catalogConverter) ToRedisModel(products []domain.Product) *CatalogRedisModel {
	models := make([]ProductRedisModel, 0, len(products))
	for _, p := range products {
		models = append(models, ProductRedisModel{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price.String(),
			Currency:    p.Currency,
			Image:       p.Image,
			Rating:      p.Rating,
		})
	}

	return &CatalogRedisModel{
		Version:  CatalogVersion,
		Products: models,
	}
}

func (catalogConverter) ToEntities(model *CatalogRedisModel) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(model.Products))
	for _, m := range model.Products {
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return nil, err
		}

		products = append(products, domain.Product{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Price:       price,
			Currency:    m.Currency,
			Image:       m.Image,
			Rating:      m.Rating,
		})
	}

	return products, nil
}
