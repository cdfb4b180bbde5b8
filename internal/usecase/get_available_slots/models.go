package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantSlug string    // Slug бизнеса из URL
	EmployeeID uuid.UUID // ID сотрудника
	ServiceID  uuid.UUID // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time          // Дата, на которую запрашивались слоты
	EmployeeID uuid.UUID          // ID сотрудника
	ServiceID  uuid.UUID          // ID услуги
	Slots      []types.TimeString // Времена начала доступных слотов, по возрастанию
}
