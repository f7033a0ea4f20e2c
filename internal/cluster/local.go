package cluster

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/NSafarali/Laserfarm/internal/telemetry"
)

// Каталог для рабочих файлов локальных кластеров.
const workerSpaceDir = "laserfarm-worker-space"

// Cluster — вычислительный кластер с пулом воркеров.
type Cluster interface {
	// Status возвращает состояние кластера.
	Status() Status

	// Submit ставит единицу работы в очередь пула.
	// Блокируется, пока не освободится воркер.
	// Возвращает ErrClusterClosed, если кластер закрыт.
	Submit(job func()) error

	// Close останавливает кластер и освобождает его ресурсы.
	Close() error
}

// Options — форма ресурсов локального кластера.
type Options struct {
	// Workers — количество воркеров (default: runtime.NumCPU()).
	Workers int

	// ThreadsPerWorker — слотов выполнения на воркер (default: 1).
	ThreadsPerWorker int

	// Processes — изолировать рабочие каталоги воркеров.
	// При true каждый воркер получает собственный scratch-подкаталог.
	Processes bool
}

// slots возвращает общее количество слотов выполнения.
func (o Options) slots() int {
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	threads := o.ThreadsPerWorker
	if threads <= 0 {
		threads = 1
	}
	return workers * threads
}

// LocalCluster — локальный кластер: пул из Workers×ThreadsPerWorker
// слотов выполнения и scratch-каталог на время жизни кластера.
//
// Scratch-каталог создаётся при создании кластера и удаляется
// в Close. Автоматической очистки нет: за закрытие отвечает
// создавший кластер код.
type LocalCluster struct {
	id      uuid.UUID
	opts    Options
	scratch string

	jobs chan func()
	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.RWMutex
	status Status

	logger *slog.Logger
}

// Контроль реализации интерфейса.
var _ Cluster = (*LocalCluster)(nil)

// NewLocal создаёт и запускает локальный кластер.
// Возвращает кластер уже в состоянии running.
func NewLocal(opts Options, logger *slog.Logger) (*LocalCluster, error) {
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	logger = telemetry.WithClusterID(logger, id.String())

	scratch := filepath.Join(workerSpaceDir, id.String())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("create worker space: %w", err)
	}

	c := &LocalCluster{
		id:      id,
		opts:    opts,
		scratch: scratch,
		jobs:    make(chan func()),
		done:    make(chan struct{}),
		status:  StatusRunning,
		logger:  logger,
	}

	slots := opts.slots()
	for i := 0; i < slots; i++ {
		if opts.Processes {
			workerDir := filepath.Join(scratch, fmt.Sprintf("worker-%d", i))
			if err := os.MkdirAll(workerDir, 0o755); err != nil {
				c.teardown()
				return nil, fmt.Errorf("create worker dir: %w", err)
			}
		}

		c.wg.Add(1)
		go c.runSlot()
	}

	telemetry.ClusterWorkers.Add(float64(slots))

	c.logger.Info("local cluster started",
		"workers", opts.Workers,
		"threads_per_worker", opts.ThreadsPerWorker,
		"slots", slots,
		"scratch", scratch,
	)

	return c, nil
}

// ID возвращает идентификатор кластера.
func (c *LocalCluster) ID() uuid.UUID {
	return c.id
}

// ScratchDir возвращает путь к рабочему каталогу кластера.
func (c *LocalCluster) ScratchDir() string {
	return c.scratch
}

// Status возвращает состояние кластера.
func (c *LocalCluster) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Submit ставит единицу работы в очередь пула.
func (c *LocalCluster) Submit(job func()) error {
	select {
	case <-c.done:
		return ErrClusterClosed
	case c.jobs <- job:
		return nil
	}
}

// Close останавливает воркеров и удаляет scratch-каталог.
// Уже выполняющиеся единицы работы дорабатывают до конца.
// Повторный Close безопасен.
func (c *LocalCluster) Close() error {
	c.mu.Lock()
	if c.status == StatusClosed {
		c.mu.Unlock()
		return nil
	}
	c.status = StatusClosed
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()

	telemetry.ClusterWorkers.Sub(float64(c.opts.slots()))

	c.teardown()
	c.logger.Info("local cluster closed")
	return nil
}

// runSlot — цикл одного слота выполнения.
func (c *LocalCluster) runSlot() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case job := <-c.jobs:
			job()
		}
	}
}

// teardown удаляет scratch-каталог кластера.
func (c *LocalCluster) teardown() {
	if err := os.RemoveAll(c.scratch); err != nil {
		c.logger.Warn("failed to remove worker space", "error", err)
	}
}
