package create_appointment

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант по slug не найден
	ErrTenantNotFound = errors.New("create_appointment: tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotWorking возвращается, когда у сотрудника нет смены в этот день
	ErrEmployeeNotWorking = errors.New("create_appointment: employee does not work on this day")

	// ErrOutsideWorkingHours возвращается, когда слот не умещается в смену сотрудника
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrDateBlocked возвращается, когда дата или время закрыты блокировкой
	ErrDateBlocked = errors.New("create_appointment: date is blocked")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования услуги
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда лимит одновременных записей исчерпан
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
