package get_employee_agenda

import (
	"context"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
)

type AppointmentService interface {
	GetEmployeeAgenda(ctx context.Context, req *models.GetEmployeeAgendaRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
