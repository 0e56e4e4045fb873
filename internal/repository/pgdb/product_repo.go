package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует зеркало каталога поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// ListProducts возвращает каталог в порядке, в котором его отдал источник.
func (p *ProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price::text, currency, image, rating
		FROM products
		ORDER BY position, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Description, &model.Price,
			&model.Currency, &model.Image, &model.Rating,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		product, err := p.conv.ToEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// UpsertProducts приводит таблицу к переданному каталогу: вставляет новые товары,
// обновляет изменившиеся и удаляет отсутствующие. Работает только внутри транзакции.
// Возвращает число вставленных и обновлённых строк.
func (p *ProductRepo) UpsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	// VALUES ($1..$8) id, title, description, price, currency, image, rating, position
	query := `
		INSERT INTO products (id, title, description, price, currency, image, rating, position)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			image = EXCLUDED.image,
			rating = EXCLUDED.rating,
			position = EXCLUDED.position,
			updated_at = NOW()
		WHERE
			(products.title, products.description, products.price, products.currency,
			 products.image, products.rating, products.position)
			IS DISTINCT FROM
			(EXCLUDED.title, EXCLUDED.description, EXCLUDED.price, EXCLUDED.currency,
			 EXCLUDED.image, EXCLUDED.rating, EXCLUDED.position)
	`

	batch := &pgx.Batch{}
	ids := make([]int64, 0, len(products))
	for i := range products {
		m := p.conv.ToModel(&products[i], i)
		batch.Queue(query, m.ID, m.Title, m.Description, m.Price, m.Currency, m.Image, m.Rating, m.Position)
		ids = append(ids, m.ID)
	}

	br := tx.SendBatch(ctx, batch)
	changed := 0
	for range products {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
		changed += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE NOT (id = ANY($1))`, ids); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return changed, nil
}

var _ usecase.ProductRepository = (*ProductRepo)(nil)
