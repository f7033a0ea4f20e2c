package orchestrator

// State — состояние оркестратора.
//
// Жизненный цикл:
//
//	Unconfigured → ClientConfigured → Running → Completed
//	                       ↑______________________|  (повторный Run)
type State int

const (
	// StateUnconfigured — клиент кластера ещё не настроен.
	StateUnconfigured State = iota

	// StateClientConfigured — клиент настроен, можно запускать.
	StateClientConfigured

	// StateRunning — batch выполняется.
	StateRunning

	// StateCompleted — batch завершён, результаты доступны.
	StateCompleted
)

// String возвращает строковое представление состояния.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateClientConfigured:
		return "client_configured"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CanRun возвращает true, если из этого состояния допустим запуск.
func (s State) CanRun() bool {
	return s == StateClientConfigured || s == StateCompleted
}
