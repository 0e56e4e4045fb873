package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CatalogSourceHTTP     = "http"
	CatalogSourcePostgres = "postgres"

	descriptionLimit = 100
)

// Options — параметры витрины, не зависящие от внешних систем.
type Options struct {
	PageSize      int
	PulseDuration time.Duration
	IdleTTL       time.Duration
	SweepInterval time.Duration
	CartCurrency  string
	CatalogSource string // http | postgres
}

// StorefrontUseCase управляет сессиями витрины: загрузкой каталога, пагинацией,
// поиском, сортировкой и корзиной.
type StorefrontUseCase struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	source      ProductSourceInfra
	productRepo ProductRepository // nil, если зеркало в PostgreSQL не настроено
	txManager   TxManager
	cacheRepo   CatalogCacheRepository
	images      ImagesInfra
	events      EventsInfra
	metrics     MetricsInfra
	formatter   *money.Formatter
	opts        Options
	logger      logger.Logger
	now         func() time.Time
}

func NewStorefrontUC(
	source ProductSourceInfra,
	productRepo ProductRepository,
	txManager TxManager,
	cacheRepo CatalogCacheRepository,
	images ImagesInfra,
	events EventsInfra,
	metrics MetricsInfra,
	formatter *money.Formatter,
	opts Options,
	logger logger.Logger,
) *StorefrontUseCase {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.CartCurrency == "" {
		opts.CartCurrency = "USD"
	}
	if opts.CatalogSource == "" {
		opts.CatalogSource = CatalogSourceHTTP
	}

	return &StorefrontUseCase{
		sessions:    make(map[uuid.UUID]*Session),
		source:      source,
		productRepo: productRepo,
		txManager:   txManager,
		cacheRepo:   cacheRepo,
		images:      images,
		events:      events,
		metrics:     metrics,
		formatter:   formatter,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

// StartSession загружает каталог и открывает новую сессию с первой страницей.
func (s *StorefrontUseCase) StartSession(ctx context.Context) (*StorefrontSnapshot, error) {
	const op = "StorefrontUseCase.StartSession"

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	session := newSession(
		catalog.NewView(products, s.opts.PageSize),
		catalog.NewPulse(s.opts.PulseDuration),
		s.now(),
	)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.metrics.SessionStarted()
	s.logger.Debugf("session started: %s, products: %d", session.ID, len(products))

	session.mu.Lock()
	defer session.mu.Unlock()

	return s.snapshot(ctx, session), nil
}

func (s *StorefrontUseCase) Snapshot(ctx context.Context, id uuid.UUID) (*StorefrontSnapshot, error) {
	return s.withSession(ctx, id, "StorefrontUseCase.Snapshot", func(*Session) error {
		return nil
	})
}

// RevealMore открывает следующую страницу каталога.
func (s *StorefrontUseCase) RevealMore(ctx context.Context, id uuid.UUID) (*StorefrontSnapshot, error) {
	return s.withSession(ctx, id, "StorefrontUseCase.RevealMore", func(session *Session) error {
		session.view.RevealMore()
		return nil
	})
}

func (s *StorefrontUseCase) Search(ctx context.Context, id uuid.UUID, term string) (*StorefrontSnapshot, error) {
	return s.withSession(ctx, id, "StorefrontUseCase.Search", func(session *Session) error {
		session.view.SetSearchTerm(term)
		return nil
	})
}

// Sort принимает ключ сортировки в текстовом виде: "", "none", "price", "rating".
func (s *StorefrontUseCase) Sort(ctx context.Context, id uuid.UUID, key string) (*StorefrontSnapshot, error) {
	sortKey, err := catalog.ParseSortKey(key)
	if err != nil {
		return nil, e.Wrap("StorefrontUseCase.Sort", err)
	}

	return s.withSession(ctx, id, "StorefrontUseCase.Sort", func(session *Session) error {
		session.view.SetSortKey(sortKey)
		return nil
	})
}

// AddToCart кладёт товар из каталога сессии в корзину, включает индикатор
// добавления и в фоне публикует событие.
func (s *StorefrontUseCase) AddToCart(ctx context.Context, id uuid.UUID, productID int64) (*StorefrontSnapshot, error) {
	const op = "StorefrontUseCase.AddToCart"

	return s.withSession(ctx, id, op, func(session *Session) error {
		product, ok := domain.FindProduct(session.view.Products(), productID)
		if !ok {
			return e.ErrProductNotFound
		}

		totals := session.cart.Add(*product)
		session.pulse.Trigger()
		s.metrics.CartItemAdded(product.Currency)

		event := NewCartItemAddedEvent(session.ID, product.ID, product.Price, product.Currency,
			totals.Count, totals.Total, s.now())
		s.publishInBackground(event)

		return nil
	})
}

// ImportCatalog переносит каталог из внешнего API в PostgreSQL одной транзакцией
// и сбрасывает кэш каталога.
func (s *StorefrontUseCase) ImportCatalog(ctx context.Context) (*ImportCatalogRes, error) {
	const op = "StorefrontUseCase.ImportCatalog"

	if s.productRepo == nil || s.txManager == nil {
		return nil, e.Wrap(op, e.ErrImportUnavailable)
	}

	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, errors.Join(e.ErrCatalogUnavailable, err))
	}

	if len(products) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyCatalog)
	}

	var upserted int
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.productRepo.UpsertProducts(ctx, products)
		if err != nil {
			return err
		}
		upserted = n

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старой версии каталога
	if err := s.cacheRepo.DeleteCatalog(ctx); err != nil {
		s.logger.Warnf("Failed to delete cached catalog: %v", e.Wrap(op, err))
	}

	s.metrics.CatalogImported(upserted)
	s.logger.Infof("catalog imported: fetched %d, upserted %d", len(products), upserted)

	return NewImportCatalogRes(len(products), upserted), nil
}

// Run удаляет простаивающие сессии, пока не отменён ctx.
func (s *StorefrontUseCase) Run(ctx context.Context) {
	if s.opts.IdleTTL <= 0 || s.opts.SweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(s.now()); n > 0 {
				s.logger.Debugf("evicted %d idle sessions", n)
			}
		}
	}
}

// EvictIdle удаляет сессии, простаивающие дольше IdleTTL, и возвращает их число.
func (s *StorefrontUseCase) EvictIdle(now time.Time) int {
	s.mu.Lock()
	var evicted []*Session
	for id, session := range s.sessions {
		if session.idleSince(now) > s.opts.IdleTTL {
			evicted = append(evicted, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range evicted {
		session.close()
	}

	if len(evicted) > 0 {
		s.metrics.SessionsEvicted(len(evicted))
	}

	return len(evicted)
}

// Close закрывает все сессии и учитывает их в метриках как вытесненные.
func (s *StorefrontUseCase) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}

	if len(sessions) > 0 {
		s.metrics.SessionsEvicted(len(sessions))
	}
}

// SessionCount возвращает число активных сессий.
func (s *StorefrontUseCase) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// withSession выполняет fn под блокировкой сессии и возвращает снимок после изменения.
func (s *StorefrontUseCase) withSession(ctx context.Context, id uuid.UUID, op string, fn func(*Session) error) (*StorefrontSnapshot, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, e.Wrap(op, e.ErrSessionNotFound)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.touch(s.now())
	if err := fn(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	return s.snapshot(ctx, session), nil
}

// loadCatalog берёт каталог из кэша, а при промахе из настроенного источника.
func (s *StorefrontUseCase) loadCatalog(ctx context.Context) ([]domain.Product, error) {
	const op = "StorefrontUseCase.loadCatalog"

	products, err := s.cacheRepo.GetCatalog(ctx)
	if err == nil {
		s.metrics.CatalogLoaded("cache")
		return products, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		s.logger.Warnf("Catalog cache lookup failed: %v", e.Wrap(op, err))
	}

	products, err = s.fetchFromSource(ctx)
	if err != nil {
		return nil, errors.Join(e.ErrCatalogUnavailable, e.Wrap(op, err))
	}
	s.metrics.CatalogLoaded(s.opts.CatalogSource)

	// Фоновое добавление каталога в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := s.cacheRepo.SetCatalog(bgCtx, products); err != nil {
			s.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

func (s *StorefrontUseCase) fetchFromSource(ctx context.Context) ([]domain.Product, error) {
	if s.opts.CatalogSource == CatalogSourcePostgres {
		if s.productRepo == nil {
			return nil, e.ErrImportUnavailable
		}
		return s.productRepo.ListProducts(ctx)
	}

	return s.source.FetchProducts(ctx)
}

func (s *StorefrontUseCase) publishInBackground(event *CartItemAddedEvent) {
	const op = "StorefrontUseCase.publishInBackground"

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.events.PublishCartItemAdded(bgCtx, event); err != nil {
			s.logger.Warnf("Failed to publish cart event %s: %v", event.EventID, e.Wrap(op, err))
		}
	}()
}

// snapshot собирает представление сессии. Вызывается под session.mu.
func (s *StorefrontUseCase) snapshot(ctx context.Context, session *Session) *StorefrontSnapshot {
	view := session.view
	derived := view.DerivedView()

	cards := make([]ProductCard, 0, len(derived))
	for i := range derived {
		cards = append(cards, s.productCard(ctx, &derived[i]))
	}

	return &StorefrontSnapshot{
		SessionID:  session.ID,
		Products:   cards,
		Revealed:   view.Revealed(),
		Total:      view.Total(),
		HasMore:    view.HasMore(),
		SearchTerm: view.SearchTerm(),
		SortKey:    view.SortKey().String(),
		Cart:       s.cartSummary(session),
		Pulse:      session.pulse.Active(),
	}
}

func (s *StorefrontUseCase) productCard(ctx context.Context, p *domain.Product) ProductCard {
	imageURL, err := s.images.ResolveImageURL(ctx, p.Image)
	if err != nil {
		s.logger.Warnf("Failed to resolve image for product %d: %v", p.ID, err)
		imageURL = ""
	}

	return ProductCard{
		ID:             p.ID,
		Title:          p.Title,
		Description:    truncateDescription(p.Description, descriptionLimit),
		Price:          p.Price,
		Currency:       p.Currency,
		PriceFormatted: s.formatPrice(p.Price, p.Currency),
		ImageURL:       imageURL,
		Rating:         p.Rating,
		Stars:          catalog.RatingStars(p.Rating),
	}
}

func (s *StorefrontUseCase) cartSummary(session *Session) CartSummary {
	totals := session.cart.Totals()

	return CartSummary{
		Count:     totals.Count,
		Total:     totals.Total,
		Currency:  s.opts.CartCurrency,
		Formatted: s.formatPrice(totals.Total, s.opts.CartCurrency),
	}
}

// formatPrice форматирует сумму; при неизвестной валюте возвращает "сумма КОД".
func (s *StorefrontUseCase) formatPrice(amount decimal.Decimal, currency string) string {
	formatted, err := s.formatter.Format(amount, currency)
	if err != nil {
		s.logger.Debugf("format %s %s: %v", amount, currency, err)
		return strings.TrimSpace(amount.StringFixed(2) + " " + currency)
	}

	return formatted
}

// truncateDescription обрезает описание до limit символов и добавляет "...".
func truncateDescription(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit]) + "..."
}
