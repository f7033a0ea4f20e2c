package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Unit — независимая единица работы для кластера.
type Unit func(ctx context.Context) (any, error)

// Result — результат выполнения одной единицы работы.
type Result struct {
	// Index — позиция единицы в порядке отправки.
	Index int

	// Value — значение, возвращённое единицей работы.
	Value any

	// Err — ошибка единицы работы (включая захваченную панику).
	Err error
}

// Mode — режим создания клиента.
type Mode string

const (
	// ModeLocal — создать локальный кластер.
	ModeLocal Mode = "local"
)

// Client — клиент кластера с примитивом "submit and gather".
//
// Client не владеет кластером: Close кластера — ответственность
// того, кто его создал.
type Client struct {
	cluster Cluster
	logger  *slog.Logger
}

// Config — конфигурация клиента.
type Config struct {
	// Cluster — уже работающий кластер. Если задан, режим игнорируется.
	Cluster Cluster

	// Mode — режим создания кластера, когда Cluster не задан.
	// Пустое значение трактуется как ModeLocal.
	Mode Mode

	// Local — форма ресурсов локального кластера (для ModeLocal).
	Local Options

	// Logger — логгер. Если nil, используется slog.Default().
	Logger *slog.Logger
}

// Setup создаёт клиент по конфигурации.
//
// Если задан Cluster — подключается к нему. Иначе для ModeLocal
// создаёт локальный кластер. Неизвестный режим — ошибка
// конфигурации, возвращаемая сразу, до какой-либо работы.
func Setup(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Cluster != nil {
		return Attach(cfg.Cluster, logger), nil
	}

	switch cfg.Mode {
	case ModeLocal, "":
		local, err := NewLocal(cfg.Local, logger)
		if err != nil {
			return nil, fmt.Errorf("create local cluster: %w", err)
		}
		return Attach(local, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}
}

// Attach оборачивает уже работающий кластер.
func Attach(c Cluster, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cluster: c, logger: logger}
}

// Cluster возвращает обёрнутый кластер.
func (c *Client) Cluster() Cluster {
	return c.cluster
}

// Status возвращает состояние обёрнутого кластера.
func (c *Client) Status() Status {
	return c.cluster.Status()
}

// SubmitAndGather выполняет N единиц работы на пуле кластера
// и возвращает N результатов в порядке отправки — независимо
// от порядка завершения на воркерах.
//
// Блокируется, пока все единицы не завершатся. Ошибка (или паника)
// одной единицы попадает только в её слот результата и не влияет
// на выполнение остальных.
func (c *Client) SubmitAndGather(ctx context.Context, units []Unit) []Result {
	results := make([]Result, len(units))

	var wg sync.WaitGroup
	for i, unit := range units {
		results[i].Index = i

		wg.Add(1)
		job := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("unit panicked: %v", r)
				}
			}()
			results[i].Value, results[i].Err = unit(ctx)
		}

		if err := c.cluster.Submit(job); err != nil {
			// Кластер закрыт: фиксируем ошибку в слоте и идём дальше
			results[i].Err = err
			wg.Done()
		}
	}

	wg.Wait()
	return results
}
