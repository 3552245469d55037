package userservice

import "errors"

var (
	// ErrBarberNotFound возвращается, когда пользователь не найден или не является активным барбером
	ErrBarberNotFound = errors.New("barber not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrUnavailable возвращается, когда UserService недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("userservice client: service unavailable")
)
