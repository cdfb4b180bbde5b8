package cancel_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, appointmentID uuid.UUID, req *models.CancelAppointmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
