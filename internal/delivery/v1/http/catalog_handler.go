package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CatalogHandler struct {
	storefrontUC usecase.StorefrontUC
	logger       logger.Logger
}

func NewCatalogHandler(storefrontUC usecase.StorefrontUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{storefrontUC: storefrontUC, logger: logger}
}

// importCatalog
//
//	@Summary		Импорт каталога
//	@Description	Загружает каталог из внешнего API и переносит его в PostgreSQL одной транзакцией
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	ImportResponse
//	@Failure		501	{object}	ErrorResponse	"PostgreSQL не настроен"
//	@Failure		502	{object}	ErrorResponse	"Источник вернул пустой каталог"
//	@Failure		503	{object}	ErrorResponse	"Источник недоступен"
//	@Router			/catalog/import [post]
func (h *CatalogHandler) importCatalog(w http.ResponseWriter, r *http.Request) {
	res, err := h.storefrontUC.ImportCatalog(r.Context())
	if err != nil {
		h.logger.Errorf(err, "catalog import failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewImportResponse(res))
}
