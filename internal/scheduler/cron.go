package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений (стандартные 5 полей).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(cronExpr string) error {
	_, err := cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}

// Next вычисляет следующее время запуска после from.
func Next(cronExpr string, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}
	return schedule.Next(from), nil
}

// Repeater запускает функцию по cron-расписанию.
type Repeater struct {
	expr   string
	fn     func()
	logger *slog.Logger
}

// NewRepeater создаёт Repeater. Выражение валидируется сразу.
func NewRepeater(cronExpr string, logger *slog.Logger, fn func()) (*Repeater, error) {
	if err := ValidateCronExpr(cronExpr); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repeater{expr: cronExpr, fn: fn, logger: logger}, nil
}

// Run выполняет функцию по расписанию до отмены контекста.
// Первый запуск — в ближайшее время по расписанию, не сразу.
func (r *Repeater) Run(ctx context.Context) error {
	c := cron.New(cron.WithParser(cronParser))
	if _, err := c.AddFunc(r.expr, r.fn); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	next, _ := Next(r.expr, time.Now())
	r.logger.Info("schedule started", "cron", r.expr, "next_run", next)

	c.Start()
	<-ctx.Done()

	// Дожидаемся завершения текущего запуска
	stopCtx := c.Stop()
	<-stopCtx.Done()

	r.logger.Info("schedule stopped")
	return ctx.Err()
}
