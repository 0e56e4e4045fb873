package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

type StorefrontHandler struct {
	storefrontUC usecase.StorefrontUC
	cookieName   string
	cookieTTL    time.Duration
	logger       logger.Logger
}

func NewStorefrontHandler(storefrontUC usecase.StorefrontUC, cookieName string, cookieTTL time.Duration, logger logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontUC: storefrontUC,
		cookieName:   cookieName,
		cookieTTL:    cookieTTL,
		logger:       logger,
	}
}

// getStorefront
//
//	@Summary		Состояние витрины
//	@Description	Возвращает открытое окно каталога с учётом поиска и сортировки, итоги корзины и индикатор добавления. Без действующей сессии создаёт новую и выставляет cookie.
//	@Tags			storefront
//	@Produce		json
//	@Success		200	{object}	StorefrontResponse
//	@Failure		503	{object}	ErrorResponse	"Источник каталога недоступен"
//	@Router			/storefront [get]
func (h *StorefrontHandler) getStorefront(w http.ResponseWriter, r *http.Request) {
	if id, err := h.sessionID(r); err == nil {
		snapshot, err := h.storefrontUC.Snapshot(r.Context(), id)
		if err == nil {
			h.setCookie(w, id)
			WriteSuccess(w, http.StatusOK, NewStorefrontResponse(snapshot))
			return
		}
		if !errors.Is(err, e.ErrSessionNotFound) {
			h.logger.Errorf(err, "storefront snapshot failed")
			WriteError(w, err)
			return
		}
	}

	snapshot, err := h.storefrontUC.StartSession(r.Context())
	if err != nil {
		h.logger.Errorf(err, "start session failed")
		WriteError(w, err)
		return
	}

	h.setCookie(w, snapshot.SessionID)
	WriteSuccess(w, http.StatusOK, NewStorefrontResponse(snapshot))
}

// revealMore
//
//	@Summary	Показать ещё
//	@Tags		storefront
//	@Produce	json
//	@Success	200	{object}	StorefrontResponse
//	@Failure	404	{object}	ErrorResponse	"Сессия не найдена"
//	@Router		/storefront/reveal [post]
func (h *StorefrontHandler) revealMore(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.storefrontUC.RevealMore(r.Context(), id)
	h.respond(w, snapshot, err)
}

// search
//
//	@Summary		Поиск по названию
//	@Description	Фильтрует открытое окно по подстроке в названии без учёта регистра. Пустая строка снимает фильтр.
//	@Tags			storefront
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SearchRequest	true	"Поисковый запрос"
//	@Success		200		{object}	StorefrontResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/storefront/search [put]
func (h *StorefrontHandler) search(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	snapshot, err := h.storefrontUC.Search(r.Context(), id, req.Term)
	h.respond(w, snapshot, err)
}

// sort
//
//	@Summary	Сортировка
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SortRequest	true	"Ключ сортировки: none, price, rating"
//	@Success	200		{object}	StorefrontResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/storefront/sort [put]
func (h *StorefrontHandler) sort(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SortRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	snapshot, err := h.storefrontUC.Sort(r.Context(), id, req.Key)
	h.respond(w, snapshot, err)
}

// addToCart
//
//	@Summary		Добавить в корзину
//	@Description	Добавляет товар в корзину сессии. Повторное добавление учитывается ещё раз.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddToCartRequest	true	"Товар"
//	@Success		200		{object}	StorefrontResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Сессия или товар не найдены"
//	@Router			/storefront/cart [post]
func (h *StorefrontHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	if req.ProductID <= 0 {
		WriteError(w, e.ErrInvalidProductID)
		return
	}

	snapshot, err := h.storefrontUC.AddToCart(r.Context(), id, req.ProductID)
	h.respond(w, snapshot, err)
}

func (h *StorefrontHandler) respond(w http.ResponseWriter, snapshot *usecase.StorefrontSnapshot, err error) {
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewStorefrontResponse(snapshot))
}

// sessionID читает идентификатор сессии из cookie.
func (h *StorefrontHandler) sessionID(r *http.Request) (uuid.UUID, error) {
	c, err := r.Cookie(h.cookieName)
	if err != nil {
		return uuid.Nil, e.ErrSessionNotFound
	}

	id, err := uuid.Parse(c.Value)
	if err != nil {
		return uuid.Nil, e.ErrSessionNotFound
	}

	return id, nil
}

func (h *StorefrontHandler) setCookie(w http.ResponseWriter, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
