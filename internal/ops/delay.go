package ops

import (
	"context"
	"time"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// DelayOp — операция ожидания.
//
// Параметры:
//   - duration_sec (number) — длительность ожидания в секундах
//
// Операция проверяет ctx.Done() и прерывается при отмене.
type DelayOp struct{}

// NewDelayOp создаёт новую DelayOp.
func NewDelayOp() *DelayOp {
	return &DelayOp{}
}

// Name возвращает имя типа операции.
func (o *DelayOp) Name() string {
	return "delay"
}

// Build строит операцию ожидания с привязанной длительностью.
func (o *DelayOp) Build(params map[string]any) (pipeline.StepFunc, error) {
	duration := time.Duration(ParamFloat(params, "duration_sec") * float64(time.Second))

	return func(ctx context.Context) error {
		return Sleep(ctx, duration)
	}, nil
}

// Sleep ждёт duration или до отмены контекста.
func Sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
