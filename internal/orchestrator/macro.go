package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NSafarali/Laserfarm/internal/cluster"
	"github.com/NSafarali/Laserfarm/internal/pipeline"
	"github.com/NSafarali/Laserfarm/internal/telemetry"
)

// MacroPipeline — batch независимых задач поверх одного кластера.
//
// Идентичность задачи — её позиция в списке: errors и outcomes
// выровнены по индексу с tasks. Метки задач чисто информационные.
//
// MacroPipeline не рассчитан на конкурентные пересекающиеся Run;
// запросы результатов из других горутин безопасны.
type MacroPipeline struct {
	id uuid.UUID

	mu       sync.RWMutex
	tasks    []pipeline.Task
	client   *cluster.Client
	state    State
	ran      []pipeline.Task
	outcomes []pipeline.Outcome
	errs     []pipeline.ErrorPair

	logger *slog.Logger
}

// New создаёт MacroPipeline с пустым списком задач.
func New(logger *slog.Logger) *MacroPipeline {
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	return &MacroPipeline{
		id:     id,
		tasks:  []pipeline.Task{},
		logger: telemetry.WithBatchID(logger, id.String()),
	}
}

// ID возвращает идентификатор batch'а.
func (mp *MacroPipeline) ID() uuid.UUID {
	return mp.id
}

// State возвращает текущее состояние оркестратора.
func (mp *MacroPipeline) State() State {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.state
}

// Tasks возвращает живой список задач (тот же порядок, те же значения).
func (mp *MacroPipeline) Tasks() []pipeline.Task {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.tasks
}

// SetTasks заменяет список задач целиком.
// nil-элемент нарушает контракт задачи и отклоняется.
func (mp *MacroPipeline) SetTasks(tasks []pipeline.Task) error {
	for i, t := range tasks {
		if t == nil {
			return fmt.Errorf("%w: element %d is nil", ErrNotATask, i)
		}
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()
	if tasks == nil {
		tasks = []pipeline.Task{}
	}
	mp.tasks = tasks
	return nil
}

// AddTask добавляет задачу в конец списка.
func (mp *MacroPipeline) AddTask(t pipeline.Task) error {
	if t == nil {
		return ErrNotATask
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.tasks = append(mp.tasks, t)
	return nil
}

// SetLabels назначает метки задачам позиционно: tasks[i].SetLabel(labels[i]).
func (mp *MacroPipeline) SetLabels(labels []string) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if len(labels) != len(mp.tasks) {
		return fmt.Errorf("%w: %d labels for %d tasks", ErrLabelCount, len(labels), len(mp.tasks))
	}

	for i, label := range labels {
		mp.tasks[i].SetLabel(label)
	}
	return nil
}

// Client возвращает настроенный клиент кластера (nil до SetupClient).
func (mp *MacroPipeline) Client() *cluster.Client {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.client
}

// SetupClient настраивает клиент кластера до запуска.
//
// Ошибка конфигурации (неизвестный режим, сбой создания локального
// кластера) возвращается сразу и фатальна для вызывающего кода.
func (mp *MacroPipeline) SetupClient(cfg cluster.Config) error {
	if cfg.Logger == nil {
		cfg.Logger = mp.logger
	}

	client, err := cluster.Setup(cfg)
	if err != nil {
		return err
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.client = client
	if mp.state == StateUnconfigured {
		mp.state = StateClientConfigured
	}

	mp.logger.Info("cluster client configured", "status", client.Status())
	return nil
}

// Run конкурентно выполняет все задачи и собирает результаты.
//
// Каждая задача отправляется на кластер одной единицей работы;
// вызов блокируется до завершения всех. Результаты выровнены
// по индексу с tasks независимо от порядка завершения на воркерах.
//
// Ошибка возвращается только за неправильное использование
// (клиент не настроен, пересекающийся запуск). Ошибки самих задач
// изолированы: они попадают в Errors и FailedPipelines, но не
// прерывают Run и не влияют на соседние задачи.
//
// Повторный Run заменяет результаты целиком.
func (mp *MacroPipeline) Run(ctx context.Context) error {
	mp.mu.Lock()
	if mp.client == nil {
		mp.mu.Unlock()
		return ErrClientNotConfigured
	}
	if !mp.state.CanRun() {
		mp.mu.Unlock()
		return ErrAlreadyRunning
	}
	mp.state = StateRunning
	tasks := mp.tasks
	client := mp.client
	mp.mu.Unlock()

	mp.logger.Info("batch started", "tasks", len(tasks))
	start := time.Now()

	ctx = telemetry.WithLogger(ctx, mp.logger)

	units := make([]cluster.Unit, len(tasks))
	for i, t := range tasks {
		units[i] = func(ctx context.Context) (any, error) {
			return t.Run(ctx), nil
		}
	}

	results := client.SubmitAndGather(ctx, units)

	outcomes := make([]pipeline.Outcome, len(results))
	errs := make([]pipeline.ErrorPair, len(results))
	failed := 0
	for i, res := range results {
		outcomes[i] = toOutcome(tasks[i], res)
		errs[i] = outcomes[i].ErrorPair()
		if outcomes[i].Success {
			telemetry.PipelinesTotal.WithLabelValues("completed").Inc()
		} else {
			telemetry.PipelinesTotal.WithLabelValues("failed").Inc()
			failed++
		}
	}

	elapsed := time.Since(start)
	telemetry.BatchDuration.Observe(elapsed.Seconds())

	mp.mu.Lock()
	mp.ran = tasks
	mp.outcomes = outcomes
	mp.errs = errs
	mp.state = StateCompleted
	mp.mu.Unlock()

	mp.logger.Info("batch completed",
		"tasks", len(tasks),
		"failed", failed,
		"duration", elapsed,
	)

	return nil
}

// toOutcome приводит результат кластера к Outcome задачи.
// Err в результате означает сбой на уровне кластера (паника единицы
// работы, закрытый кластер) — задача считается упавшей.
func toOutcome(t pipeline.Task, res cluster.Result) pipeline.Outcome {
	if res.Err != nil {
		return pipeline.Outcome{
			Label:   t.Label(),
			Success: false,
			Kind:    pipeline.Classify(res.Err),
			Detail:  res.Err.Error(),
		}
	}

	if out, ok := res.Value.(pipeline.Outcome); ok {
		return out
	}

	// Единица работы вернула не Outcome — считаем успехом без деталей
	return pipeline.Outcome{Label: t.Label(), Success: true}
}

// Errors возвращает пары (вид, детали), выровненные по индексу
// с задачами последнего завершённого запуска. Нулевая пара — успех.
// До первого завершения возвращает nil.
func (mp *MacroPipeline) Errors() []pipeline.ErrorPair {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.errs
}

// Outcomes возвращает результаты последнего завершённого запуска.
// До первого завершения возвращает nil.
func (mp *MacroPipeline) Outcomes() []pipeline.Outcome {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.outcomes
}

// FailedPipelines возвращает подмножество задач последнего
// завершённого запуска (с сохранением порядка), чья пара в Errors
// ненулевая. Результат не зависит от последующих SetTasks/AddTask.
func (mp *MacroPipeline) FailedPipelines() []pipeline.Task {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var failed []pipeline.Task
	for i, pair := range mp.errs {
		if !pair.IsZero() {
			failed = append(failed, mp.ran[i])
		}
	}
	return failed
}
