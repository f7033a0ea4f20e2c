package cluster

// Status — состояние кластера.
//
// Жизненный цикл:
//
//	running → closed
type Status string

const (
	// StatusRunning — кластер запущен и принимает работу.
	StatusRunning Status = "running"

	// StatusClosed — кластер закрыт.
	StatusClosed Status = "closed"
)

// IsRunning возвращает true, если кластер принимает работу.
func (s Status) IsRunning() bool {
	return s == StatusRunning
}
