package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantSlug string           // Slug бизнеса из URL
	ClientID   uuid.UUID        // ID клиента (из аутентификации)
	EmployeeID uuid.UUID        // ID сотрудника
	ServiceID  uuid.UUID        // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID        // ID созданной записи
	TenantID        uuid.UUID        // ID тенанта
	EmployeeID      uuid.UUID        // ID сотрудника
	ServiceID       uuid.UUID        // ID услуги
	ClientID        uuid.UUID        // ID клиента
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги на момент записи
	ServicePrice float64 // Цена услуги на момент записи
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
