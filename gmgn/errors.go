// =================================
// File: gmgn/errors.go
// =================================
package gmgn

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedChain возникает при rugcheck запросе для не-Solana сети
	ErrUnsupportedChain = errors.New("rugcheck supports solana tokens only")

	// ErrEmptyAddress возникает при пустом адресе контракта
	ErrEmptyAddress = errors.New("token address is empty")
)

// APIError представляет невосстановимую ошибку HTTP уровня
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError создает новую ошибку API
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// ParsingError возникает только когда payload структурно непригоден;
// мусор в отдельных полях молча заменяется значениями по умолчанию.
type ParsingError struct {
	Reason string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("response parsing failed: %s", e.Reason)
}
