package schedule

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден.
	// Единственная ошибка слоя провайдеров: остальные сбои источников
	// поглощаются деградацией до безопасных значений по умолчанию.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrProfileNotFound возвращается, когда профиль пользователя не найден
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
