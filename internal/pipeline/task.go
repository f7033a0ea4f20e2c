package pipeline

import "context"

// Task — единица работы для оркестратора.
//
// Контракт единый для всех реализаций: запуск возвращает Outcome,
// ошибки выполнения не покидают Run. Label — произвольный
// идентификатор для отчётов, уникальность не требуется.
type Task interface {
	// Label возвращает метку задачи.
	Label() string

	// SetLabel назначает метку задачи.
	SetLabel(label string)

	// Run выполняет задачу и возвращает результат.
	// Run не возвращает error: любая ошибка выполнения
	// захватывается внутри и отражается в Outcome.
	Run(ctx context.Context) Outcome
}
