package get_available_slots

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант по slug не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
