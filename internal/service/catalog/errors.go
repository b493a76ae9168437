package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrServiceInactive возвращается, когда услуга существует, но недоступна для записи
	ErrServiceInactive = errors.New("catalog: service is inactive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
