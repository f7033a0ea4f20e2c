package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// Registry — реестр типов операций.
//
// Позволяет регистрировать и получать Builder по имени типа.
// Потокобезопасен.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// DefaultRegistry создаёт реестр со всеми стандартными операциями.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Регистрируем стандартные операции
	r.Register(NewWriteFileOp())
	r.Register(NewDelayOp())
	r.Register(NewHTTPOp())

	return r
}

// Register регистрирует операцию в реестре.
// Если операция с таким именем уже существует, она будет перезаписана.
func (r *Registry) Register(b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[b.Name()] = b
}

// Get возвращает Builder по имени типа операции.
// Возвращает ErrOpNotFound, если тип не зарегистрирован.
func (r *Registry) Get(name string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.builders[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrOpNotFound, name)
	}

	return b, nil
}

// Has проверяет, зарегистрирован ли тип операции.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.builders[name]
	return exists
}

// Names возвращает список всех зарегистрированных типов операций.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec — описание одной операции в batch-файле.
type Spec struct {
	// Op — имя типа операции.
	Op string `json:"op"`

	// Params — параметры операции.
	Params map[string]any `json:"params,omitempty"`
}

// BuildPipeline собирает Pipeline из упорядоченного списка описаний.
// Порядок операций в specs сохраняется.
func (r *Registry) BuildPipeline(label string, specs []Spec) (*pipeline.Pipeline, error) {
	p := pipeline.New()
	p.SetLabel(label)

	for i, spec := range specs {
		b, err := r.Get(spec.Op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}

		fn, err := b.Build(spec.Params)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, spec.Op, err)
		}

		p.Add(spec.Op, fn)
	}

	return p, nil
}
