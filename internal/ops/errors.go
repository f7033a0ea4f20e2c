package ops

import "errors"

// Ошибки реестра операций.
var (
	// ErrOpNotFound — тип операции не найден в реестре.
	ErrOpNotFound = errors.New("operation type not found")

	// ErrInvalidParams — невалидные параметры операции.
	ErrInvalidParams = errors.New("invalid operation params")

	// ErrHTTPStatus — HTTP-ответ с неожиданным статусом.
	ErrHTTPStatus = errors.New("unexpected http status")
)
