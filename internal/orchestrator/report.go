package orchestrator

import (
	"fmt"
	"io"
	"os"
)

// PrintOutcome пишет текстовый отчёт о последнем запуске: одна строка
// на задачу в порядке списка задач. Последний токен строки — статус:
// "Completed" при успехе, иначе вид ошибки.
func (mp *MacroPipeline) PrintOutcome(w io.Writer) error {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	for i, out := range mp.outcomes {
		name := out.Label
		if name == "" {
			name = fmt.Sprintf("pipeline-%d", i)
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n", name, out.StatusToken()); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
	}

	return nil
}

// WriteOutcome пишет отчёт в файл по указанному пути.
// Если путь пуст, отчёт уходит в stdout.
func (mp *MacroPipeline) WriteOutcome(path string) error {
	if path == "" {
		return mp.PrintOutcome(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create outcome file: %w", err)
	}

	if err := mp.PrintOutcome(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
