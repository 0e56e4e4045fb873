package productsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

const maxBodySize = 16 << 20

// errPermanent помечает ответы, которые не имеет смысла повторять.
var errPermanent = errors.New("permanent failure")

// productModel — товар в формате внешнего API.
type productModel struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
}

// HTTPProductSource загружает каталог из внешнего API с повторными попытками.
type HTTPProductSource struct {
	client     *http.Client
	url        string
	maxRetries int
	backoff    *jitter.Backoff
	logger     logger.Logger
}

func NewHTTPProductSource(client *http.Client, url string, maxRetries int, backoff *jitter.Backoff, logger logger.Logger) *HTTPProductSource {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if backoff == nil {
		backoff = jitter.NewBackoff(200*time.Millisecond, 5*time.Second, jitter.DefaultJitter)
	}

	return &HTTPProductSource{
		client:     client,
		url:        url,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
	}
}

// FetchProducts выполняет загрузку с экспоненциальной задержкой между попытками.
// Ответы 4xx, кроме 429, не повторяются.
func (s *HTTPProductSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "HTTPProductSource.FetchProducts"

	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		products, err := s.fetchOnce(ctx)
		if err == nil {
			return products, nil
		}
		lastErr = err

		if errors.Is(err, errPermanent) || attempt == s.maxRetries-1 {
			break
		}

		sleepTime := s.backoff.Next(attempt)
		s.logger.Warnf("catalog fetch failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, lastErr)
}

func (s *HTTPProductSource) fetchOnce(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Join(errPermanent, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.url)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, errors.Join(errPermanent, err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	models, err := decodeProducts(body)
	if err != nil {
		return nil, errors.Join(errPermanent, err)
	}

	return s.toEntities(models), nil
}

// decodeProducts принимает как голый массив, так и объект {"products": [...]}.
func decodeProducts(body []byte) ([]productModel, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "{") {
		var envelope struct {
			Products []productModel `json:"products"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		return envelope.Products, nil
	}

	var models []productModel
	if err := json.Unmarshal(body, &models); err != nil {
		return nil, err
	}

	return models, nil
}

// toEntities отбрасывает некорректные товары и нормализует остальные.
func (s *HTTPProductSource) toEntities(models []productModel) []domain.Product {
	products := make([]domain.Product, 0, len(models))
	seen := make(map[int64]struct{}, len(models))

	for _, m := range models {
		if _, dup := seen[m.ID]; dup {
			s.logger.Warnf("skipping duplicate product id %d", m.ID)
			continue
		}
		if strings.TrimSpace(m.Title) == "" || m.Price.IsNegative() {
			s.logger.Warnf("skipping invalid product id %d", m.ID)
			continue
		}
		seen[m.ID] = struct{}{}

		currency := strings.ToUpper(strings.TrimSpace(m.Currency))
		if currency == "" {
			currency = "USD"
		}

		products = append(products, domain.Product{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Price:       m.Price,
			Currency:    currency,
			Image:       m.Image,
			Rating:      min(max(m.Rating, 0), 5),
		})
	}

	return products
}

var _ usecase.ProductSourceInfra = (*HTTPProductSource)(nil)
