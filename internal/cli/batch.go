package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/NSafarali/Laserfarm/internal/ops"
	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// Ошибки загрузки batch-файла.
var (
	// ErrEmptyBatch — batch-файл не содержит пайплайнов.
	ErrEmptyBatch = errors.New("batch contains no pipelines")
)

// PipelineSpec — описание одной задачи в batch-файле.
type PipelineSpec struct {
	// Label — метка задачи для отчёта.
	Label string `json:"label,omitempty"`

	// Operations — упорядоченный список операций.
	Operations []ops.Spec `json:"operations"`
}

// Batch — описание batch'а: список задач в порядке выполнения.
type Batch struct {
	Pipelines []PipelineSpec `json:"pipelines"`
}

// LoadBatch читает и разбирает batch-файл.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}

	if len(batch.Pipelines) == 0 {
		return nil, ErrEmptyBatch
	}

	return &batch, nil
}

// Build собирает задачи из описаний через реестр операций.
// Порядок задач соответствует порядку в batch-файле.
func (b *Batch) Build(registry *ops.Registry) ([]pipeline.Task, error) {
	tasks := make([]pipeline.Task, 0, len(b.Pipelines))
	for i, spec := range b.Pipelines {
		p, err := registry.BuildPipeline(spec.Label, spec.Operations)
		if err != nil {
			return nil, fmt.Errorf("pipeline %d (%s): %w", i, spec.Label, err)
		}
		tasks = append(tasks, p)
	}
	return tasks, nil
}
