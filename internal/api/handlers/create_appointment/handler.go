package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	createAppointment "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/create_appointment"
)

const (
	msgMissingSlug         = "slug бизнеса обязателен"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgTenantNotFound      = "бизнес не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgEmployeeNotWorking  = "сотрудник не работает в этот день"
	msgOutsideWorkingHours = "время вне рабочих часов сотрудника"
	msgDateBlocked         = "выбранная дата или время заблокированы"
	msgInvalidDate         = "запись на прошедшую дату невозможна"
	msgDateTooFar          = "дата превышает горизонт бронирования услуги"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{slug}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем slug из URL
	vars := mux.Vars(r)
	tenantSlug := vars["slug"]
	if tenantSlug == "" {
		h.logger.Warn("POST /businesses/{slug}/appointments - Missing tenant slug")
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{slug}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{slug}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(tenantSlug, clientID)
	if err != nil {
		h.logger.Warn("POST /businesses/{slug}/appointments - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Создаем запись
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /businesses/{slug}/appointments - Tenant not found: slug=%s", tenantSlug)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{slug}/appointments - Service not found: slug=%s, service_id=%s",
				tenantSlug, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrEmployeeNotWorking):
			h.logger.Warn("POST /businesses/{slug}/appointments - Employee not working: employee_id=%s, date=%s",
				req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgEmployeeNotWorking)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /businesses/{slug}/appointments - Outside working hours: employee_id=%s, start_time=%s",
				req.EmployeeID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrDateBlocked):
			h.logger.Warn("POST /businesses/{slug}/appointments - Date blocked: slug=%s, date=%s",
				tenantSlug, req.Date)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /businesses/{slug}/appointments - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /businesses/{slug}/appointments - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /businesses/{slug}/appointments - Slot not available: employee_id=%s, date=%s, start_time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{slug}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{slug}/appointments - Failed to create appointment: slug=%s, client_id=%s, error=%v",
				tenantSlug, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /businesses/{slug}/appointments - Appointment created successfully: id=%s, client_id=%s, employee_id=%s",
		result.ID, clientID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
