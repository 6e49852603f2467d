package clinicservice

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена в каталоге
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrSpecializationNotFound возвращается, когда специализация не найдена
	ErrSpecializationNotFound = errors.New("specialization not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clinicservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("clinicservice client: invalid response")
)
