package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrNotATask — аргумент не является задачей (nil).
	ErrNotATask = errors.New("not a valid task")

	// ErrClientNotConfigured — запуск без настроенного клиента кластера.
	ErrClientNotConfigured = errors.New("cluster client not configured")

	// ErrLabelCount — количество меток не совпадает с количеством задач.
	ErrLabelCount = errors.New("label count does not match task count")

	// ErrAlreadyRunning — повторный запуск во время выполнения.
	ErrAlreadyRunning = errors.New("batch is already running")
)
