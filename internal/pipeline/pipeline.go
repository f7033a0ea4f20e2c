package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/NSafarali/Laserfarm/internal/telemetry"
)

// StepFunc — одна операция внутри Pipeline.
type StepFunc func(ctx context.Context) error

// step — именованная операция.
type step struct {
	name string
	fn   StepFunc
}

// Pipeline — базовая реализация Task.
//
// Операции выполняются последовательно в порядке добавления,
// в одном контексте выполнения. Первая упавшая операция
// останавливает задачу; побочные эффекты уже выполненных
// операций не откатываются.
type Pipeline struct {
	id    uuid.UUID
	label string
	steps []step
}

// Контроль реализации интерфейса.
var _ Task = (*Pipeline)(nil)

// New создаёт пустой Pipeline.
func New() *Pipeline {
	return &Pipeline{id: uuid.New()}
}

// ID возвращает уникальный идентификатор задачи.
func (p *Pipeline) ID() uuid.UUID {
	return p.id
}

// Label возвращает метку задачи.
func (p *Pipeline) Label() string {
	return p.label
}

// SetLabel назначает метку. Уникальность не проверяется:
// метка — чисто информационная, идентичность задаётся позицией
// в списке задач оркестратора.
func (p *Pipeline) SetLabel(label string) {
	p.label = label
}

// Add добавляет операцию в конец списка. Возвращает p для цепочек вызовов.
func (p *Pipeline) Add(name string, fn StepFunc) *Pipeline {
	p.steps = append(p.steps, step{name: name, fn: fn})
	return p
}

// Len возвращает количество операций.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Run выполняет операции по порядку и возвращает Outcome.
//
// Ошибки и паники операций не покидают Run: они классифицируются
// и попадают в Outcome. Пустой Pipeline завершается успешно.
func (p *Pipeline) Run(ctx context.Context) (out Outcome) {
	out = Outcome{Label: p.label, Success: true}
	logger := telemetry.WithPipelineID(telemetry.FromContext(ctx), p.id.String())

	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			out.Success = false
			out.Kind = KindCancelled
			out.Detail = fmt.Sprintf("%s: %v", s.name, err)
			logger.Warn("pipeline cancelled", "step", s.name, "error", err)
			return out
		}

		if err := p.runStep(ctx, s); err != nil {
			out.Success = false
			out.Kind = Classify(err)
			out.Detail = fmt.Sprintf("%s: %v", s.name, err)
			logger.Warn("pipeline step failed",
				"step", s.name,
				"kind", string(out.Kind),
				"error", err,
			)
			return out
		}
	}

	logger.Debug("pipeline completed", "steps", len(p.steps))
	return out
}

// runStep выполняет одну операцию, превращая панику в ошибку.
func (p *Pipeline) runStep(ctx context.Context, s step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = WithKind(KindPanic, fmt.Errorf("panic: %v", r))
		}
	}()
	return s.fn(ctx)
}
