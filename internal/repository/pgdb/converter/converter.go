package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product, position int) *ProductModel
	ToEntity(model *ProductModel) (*domain.Product, error)
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToModel(entity *domain.Product, position int) *ProductModel {
	return &ProductModel{
		ID:          entity.ID,
		Title:       entity.Title,
		Description: entity.Description,
		Price:       entity.Price.String(),
		Currency:    entity.Currency,
		Image:       entity.Image,
		Rating:      entity.Rating,
		Position:    position,
	}
}

func (productConverter) ToEntity(model *ProductModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Price:       price,
		Currency:    model.Currency,
		Image:       model.Image,
		Rating:      model.Rating,
	}, nil
}
