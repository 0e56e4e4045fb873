package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки каталога
	ErrEmptyCatalog       = fmt.Errorf("catalog is empty")
	ErrCatalogUnavailable = fmt.Errorf("catalog source unavailable")
	ErrImportUnavailable  = fmt.Errorf("catalog import is not configured")
	ErrCacheMiss          = fmt.Errorf("cache miss")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidSortKey   = fmt.Errorf("invalid sort key")
	ErrInvalidCurrency  = fmt.Errorf("invalid currency code")
	ErrInvalidProductID = fmt.Errorf("invalid product id")
	ErrInvalidBody      = fmt.Errorf("invalid request body")

	// 404 Not Found
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
