package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	getAvailableSlots "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/get_available_slots"
)

const (
	msgMissingSlug       = "slug бизнеса обязателен"
	msgMissingEmployeeID = "ID сотрудника обязателен"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingServiceID  = "ID услуги обязателен"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgTenantNotFound    = "бизнес не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{slug}/available-slots
// Query params: employeeId (required), serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем slug из URL
	tenantSlug := vars["slug"]
	if tenantSlug == "" {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Missing tenant slug")
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	// Извлекаем employeeId из query параметров
	employeeIDStr := r.URL.Query().Get("employeeId")
	if employeeIDStr == "" {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Missing employee ID")
		handlers.RespondBadRequest(w, msgMissingEmployeeID)
		return
	}

	employeeID, err := uuid.Parse(employeeIDStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tenantSlug, employeeID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{slug}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /businesses/{slug}/available-slots - Tenant not found: slug=%s", tenantSlug)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{slug}/available-slots - Invalid input: slug=%s, error=%v", tenantSlug, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /businesses/{slug}/available-slots - Failed to get slots: slug=%s, employee_id=%s, service_id=%s, error=%v",
				tenantSlug, employeeID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{slug}/available-slots - Slots retrieved successfully: slug=%s, employee_id=%s, service_id=%s, slots_count=%d",
		tenantSlug, employeeID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
